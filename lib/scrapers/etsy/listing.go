package etsy

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codeman8806/thecharmedcardinal.com/lib/htmlutil"
	"github.com/codeman8806/thecharmedcardinal.com/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultTitle       = "Untitled"
	defaultDescription = "A handmade design from The Charmed Cardinal."
	maxDescriptionLen  = 300
)

// ScrapeListing produces cleaned metadata for a single listing. When
// page fetches are enabled the extraction cascade runs over the fetched
// listing page, falling back on the feed item carried by the ref; when
// disabled the feed item is the only source.
func (c *Client) ScrapeListing(ctx context.Context, ref ListingRef) (Metadata, error) {
	ctx, span := tracer.Start(ctx, "ScrapeListing")
	defer span.End()
	span.SetAttributes(attribute.String("url", ref.URL))

	var meta *Metadata
	if c.opts.FetchListingPages {
		res, err := c.get(ctx, ref.URL)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch listing page")
			return Metadata{}, fmt.Errorf("fetch %s: %w", ref.URL, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse listing page")
			return Metadata{}, fmt.Errorf("parse %s: %w", ref.URL, err)
		}
		meta = extractMetadata(doc, c.opts.CdnHost)
	}
	if meta == nil {
		meta = extractFromFeedItem(ref.Item)
	}
	if meta == nil {
		slog.WarnContext(ctx, "no metadata source matched", "url", ref.URL)
		meta = &Metadata{}
	}

	return c.clean(*meta), nil
}

// clean applies the title/description post-processing: suffix stripping,
// tag stripping with entity decoding, whitespace collapsing, clamping,
// and the defaults for listings where every source came up empty.
func (c *Client) clean(meta Metadata) Metadata {
	title := textutil.CollapseWhitespace(htmlutil.StripTags(meta.Title))
	title = textutil.StripSuffixes(title, c.opts.TitleSuffixes)
	if title == "" {
		title = defaultTitle
	}

	description := textutil.CollapseWhitespace(htmlutil.StripTags(meta.Description))
	description = textutil.Clamp(description, maxDescriptionLen)
	if description == "" {
		description = defaultDescription
	}

	return Metadata{
		Title:       title,
		Description: description,
		ImageURL:    strings.TrimSpace(meta.ImageURL),
	}
}
