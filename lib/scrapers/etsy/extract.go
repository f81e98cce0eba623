package etsy

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractor pulls metadata from one source on a listing page, returning
// nil when the source isn't present.
type extractor func(doc *goquery.Document) *Metadata

// extractMetadata runs the cascade over a listing page: structured data,
// then social meta tags, then plain meta tags, then the first CDN-hosted
// image in the DOM. The first source that yields anything wins.
func extractMetadata(doc *goquery.Document, cdnHost string) *Metadata {
	extractors := []extractor{
		extractStructuredData,
		extractSocialMeta,
		extractPlainMeta,
		cdnImageExtractor(cdnHost),
	}
	for _, extract := range extractors {
		if meta := extract(doc); meta != nil {
			return meta
		}
	}
	return nil
}

type productSchema struct {
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       json.RawMessage `json:"image"`
}

func extractStructuredData(doc *goquery.Document) *Metadata {
	var meta *Metadata
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		meta = parseProductSchema(s.Text())
		return meta == nil
	})
	return meta
}

// parseProductSchema accepts a single schema object or an array of them
// and returns the first block typed as a product. Blocks that fail to
// parse are skipped so the cascade can fall through.
func parseProductSchema(text string) *Metadata {
	raw := []byte(strings.TrimSpace(text))

	var blocks []productSchema
	var single productSchema
	if err := json.Unmarshal(raw, &single); err == nil {
		blocks = []productSchema{single}
	} else if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}

	for _, block := range blocks {
		if !strings.EqualFold(block.Type, "Product") {
			continue
		}
		meta := Metadata{
			Title:       block.Name,
			Description: block.Description,
			ImageURL:    firstSchemaImage(block.Image),
		}
		if meta == (Metadata{}) {
			continue
		}
		return &meta
	}
	return nil
}

// schema.org allows image to be a string or a list of strings
func firstSchemaImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).AttrOr("content", ""))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func extractSocialMeta(doc *goquery.Document) *Metadata {
	meta := Metadata{
		Title: firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			metaContent(doc, `meta[name="twitter:title"]`),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[property="og:description"]`),
			metaContent(doc, `meta[name="twitter:description"]`),
		),
		ImageURL: firstNonEmpty(
			metaContent(doc, `meta[property="og:image"]`),
			metaContent(doc, `meta[name="twitter:image"]`),
		),
	}
	if meta == (Metadata{}) {
		return nil
	}
	return &meta
}

func extractPlainMeta(doc *goquery.Document) *Metadata {
	meta := Metadata{
		Title:       metaContent(doc, `meta[name="title"]`),
		Description: metaContent(doc, `meta[name="description"]`),
	}
	if meta == (Metadata{}) {
		return nil
	}
	return &meta
}

// cdnImageExtractor finds the first image element sourced from the
// marketplace's asset CDN. It only ever yields an image, leaving the
// title and description to the defaults.
func cdnImageExtractor(cdnHost string) extractor {
	return func(doc *goquery.Document) *Metadata {
		if cdnHost == "" {
			return nil
		}
		src := ""
		doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			candidate := s.AttrOr("src", "")
			if strings.Contains(candidate, cdnHost) {
				src = candidate
				return false
			}
			return true
		})
		if src == "" {
			return nil
		}
		return &Metadata{ImageURL: src}
	}
}

var imgSrcRegex = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// extractFromFeedItem builds metadata from the RSS fields alone, sniffing
// an image out of the item's encoded body when no media field carried one.
func extractFromFeedItem(item *FeedItem) *Metadata {
	if item == nil {
		return nil
	}

	image := item.ImageURL
	if image == "" {
		image = sniffImgSrc(item.Content)
	}
	if image == "" {
		image = sniffImgSrc(item.Description)
	}

	meta := Metadata{
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    image,
	}
	if meta == (Metadata{}) {
		return nil
	}
	return &meta
}

func sniffImgSrc(encoded string) string {
	groups := imgSrcRegex.FindStringSubmatch(encoded)
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}
