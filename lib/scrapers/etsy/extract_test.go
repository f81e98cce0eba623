package etsy

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

const structuredDataPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description">
<script type="application/ld+json">
[
  {"@type": "BreadcrumbList", "itemListElement": []},
  {
    "@type": "Product",
    "name": "Cardinal Garden Flag",
    "description": "A sweet red cardinal.",
    "image": ["https://i.cdn.example/il/111.jpg", "https://i.cdn.example/il/112.jpg"]
  }
]
</script>
</head><body></body></html>`

const socialMetaPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Winter Flag">
<meta name="twitter:description" content="Snowy cardinal scene">
<meta name="twitter:image" content="https://i.cdn.example/il/222.webp">
</head><body></body></html>`

const plainMetaPage = `<!DOCTYPE html>
<html><head>
<meta name="title" content="Plain Title">
<meta name="description" content="Plain description">
</head><body></body></html>`

const cdnImagePage = `<!DOCTYPE html>
<html><body>
<img src="https://elsewhere.example/banner.png">
<img src="https://i.cdn.example/il/333.jpeg">
<img src="https://i.cdn.example/il/334.jpeg">
</body></html>`

const brokenSchemaPage = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">{not json at all</script>
<meta property="og:title" content="Fallback Title">
</head><body></body></html>`

const bareBonesPage = `<!DOCTYPE html><html><body><p>nothing here</p></body></html>`

func TestExtractMetadataCascade(t *testing.T) {
	testCases := []struct {
		name     string
		page     string
		expected *Metadata
	}{
		{
			name: "structured data wins over social meta",
			page: structuredDataPage,
			expected: &Metadata{
				Title:       "Cardinal Garden Flag",
				Description: "A sweet red cardinal.",
				ImageURL:    "https://i.cdn.example/il/111.jpg",
			},
		},
		{
			name: "social meta merges og and twitter",
			page: socialMetaPage,
			expected: &Metadata{
				Title:       "Winter Flag",
				Description: "Snowy cardinal scene",
				ImageURL:    "https://i.cdn.example/il/222.webp",
			},
		},
		{
			name: "plain meta tags",
			page: plainMetaPage,
			expected: &Metadata{
				Title:       "Plain Title",
				Description: "Plain description",
			},
		},
		{
			name: "first cdn image when no tags match",
			page: cdnImagePage,
			expected: &Metadata{
				ImageURL: "https://i.cdn.example/il/333.jpeg",
			},
		},
		{
			name:     "broken structured data falls through",
			page:     brokenSchemaPage,
			expected: &Metadata{Title: "Fallback Title"},
		},
		{
			name:     "nothing usable",
			page:     bareBonesPage,
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			meta := extractMetadata(parseDoc(t, test.page), "i.cdn.example")
			require.Equal(t, test.expected, meta)
		})
	}
}

func TestParseProductSchema(t *testing.T) {
	testCases := []struct {
		name     string
		block    string
		expected *Metadata
	}{
		{
			name:  "single object with string image",
			block: `{"@type": "Product", "name": "Flag", "description": "desc", "image": "https://i.cdn.example/a.jpg"}`,
			expected: &Metadata{
				Title:       "Flag",
				Description: "desc",
				ImageURL:    "https://i.cdn.example/a.jpg",
			},
		},
		{
			name:     "case-insensitive type",
			block:    `{"@type": "product", "name": "Flag"}`,
			expected: &Metadata{Title: "Flag"},
		},
		{
			name:     "non-product object",
			block:    `{"@type": "WebSite", "name": "shop"}`,
			expected: nil,
		},
		{
			name:     "empty product block",
			block:    `{"@type": "Product"}`,
			expected: nil,
		},
		{
			name:     "invalid json",
			block:    `{"@type": "Product",`,
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, parseProductSchema(test.block))
		})
	}
}

func TestExtractFromFeedItem(t *testing.T) {
	testCases := []struct {
		name     string
		item     *FeedItem
		expected *Metadata
	}{
		{
			name:     "nil item",
			item:     nil,
			expected: nil,
		},
		{
			name: "media field wins",
			item: &FeedItem{
				Title:    "Flag",
				ImageURL: "https://i.cdn.example/media.jpg",
				Content:  `<img src="https://i.cdn.example/content.jpg">`,
			},
			expected: &Metadata{Title: "Flag", ImageURL: "https://i.cdn.example/media.jpg"},
		},
		{
			name: "image sniffed from encoded content",
			item: &FeedItem{
				Title:   "Flag",
				Content: `<p>hello</p><img class="wide" src="https://i.cdn.example/content.jpg">`,
			},
			expected: &Metadata{Title: "Flag", ImageURL: "https://i.cdn.example/content.jpg"},
		},
		{
			name: "image sniffed from description",
			item: &FeedItem{
				Description: `<img src='https://i.cdn.example/desc.png'> a flag`,
			},
			expected: &Metadata{
				Description: `<img src='https://i.cdn.example/desc.png'> a flag`,
				ImageURL:    "https://i.cdn.example/desc.png",
			},
		},
		{
			name:     "empty item",
			item:     &FeedItem{},
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, extractFromFeedItem(test.item))
		})
	}
}
