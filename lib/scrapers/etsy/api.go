package etsy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

type sectionsResponse struct {
	Sections []struct {
		Title    string `json:"title"`
		Listings []struct {
			ListingID int64  `json:"listing_id"`
			Title     string `json:"title"`
			URL       string `json:"url"`
		} `json:"listings"`
	} `json:"sections"`
}

// DiscoverFromAPI reads the shop's sections endpoint and flattens every
// section's listings into refs, in section order, deduplicated by id.
func (c *Client) DiscoverFromAPI(ctx context.Context, apiUrl string) ([]ListingRef, error) {
	ctx, span := tracer.Start(ctx, "DiscoverFromAPI")
	defer span.End()

	res, err := c.get(ctx, apiUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch sections")
		return nil, err
	}

	var body sectionsResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode sections")
		return nil, fmt.Errorf("decode sections payload: %w", err)
	}

	seen := map[string]bool{}
	var refs []ListingRef
	for _, section := range body.Sections {
		for _, listing := range section.Listings {
			link := listing.URL
			if link == "" && listing.ListingID > 0 {
				link = fmt.Sprintf("%s/listing/%d", strings.TrimRight(c.opts.BaseUrl, "/"), listing.ListingID)
			}
			if link == "" {
				continue
			}
			link, err := canonicalURL(c.baseUrl, link)
			if err != nil {
				slog.WarnContext(ctx, "skipping listing with malformed url", "url", listing.URL, "err", err)
				continue
			}

			id := ""
			if listing.ListingID > 0 {
				id = strconv.FormatInt(listing.ListingID, 10)
			} else if extracted, ok := ListingID(link); ok {
				id = extracted
			} else {
				id = synthesizeID()
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			refs = append(refs, ListingRef{ID: id, URL: link})
		}
	}

	slog.InfoContext(ctx, "discovered listings from sections", "count", len(refs))
	return refs, nil
}
