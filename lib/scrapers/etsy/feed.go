package etsy

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/codes"
)

// DiscoverFromFeed fetches the shop's RSS feed and returns a listing
// ref per item, deduplicated by id, in feed order. The feed fields ride
// along on each ref for the extraction cascade.
func (c *Client) DiscoverFromFeed(ctx context.Context, feedUrl string) ([]ListingRef, error) {
	ctx, span := tracer.Start(ctx, "DiscoverFromFeed")
	defer span.End()

	res, err := c.get(ctx, feedUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch feed")
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(res.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse feed")
		return nil, err
	}

	seen := map[string]bool{}
	var refs []ListingRef
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		link, err := canonicalURL(nil, item.Link)
		if err != nil {
			slog.WarnContext(ctx, "skipping feed item with malformed link", "link", item.Link, "err", err)
			continue
		}
		id, ok := ListingID(link)
		if !ok {
			id = synthesizeID()
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		refs = append(refs, ListingRef{
			ID:  id,
			URL: link,
			Item: &FeedItem{
				Title:       item.Title,
				Description: item.Description,
				Content:     item.Content,
				ImageURL:    feedImageURL(item),
			},
		})
	}

	slog.InfoContext(ctx, "discovered listings from feed", "count", len(refs))
	return refs, nil
}

// enclosure beats media:content beats the channel-level item image
func feedImageURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" {
			return enc.URL
		}
	}
	for _, content := range item.Extensions["media"]["content"] {
		if u := content.Attrs["url"]; u != "" {
			return u
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}
