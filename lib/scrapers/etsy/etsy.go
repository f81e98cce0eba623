// Package etsy scrapes a single shop's listings off the marketplace:
// discovery of listing URLs (RSS feed, rendered shop pages, or the
// sections JSON endpoint) and per-listing metadata extraction.
package etsy

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/purell"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/etsy")

// ListingRef points at one listing discovered on the shop.
type ListingRef struct {
	ID  string
	URL string
	// Item carries the feed fields for this listing, set only by feed
	// discovery. It is the extraction cascade's last resort.
	Item *FeedItem
}

// FeedItem is the normalized slice of an RSS item the scraper cares about.
type FeedItem struct {
	Title       string
	Description string
	Content     string
	ImageURL    string
}

// Metadata is the extracted title/description/image for one listing,
// before the catalog derives slug and category from it.
type Metadata struct {
	Title       string
	Description string
	ImageURL    string
}

var listingPathRegex = regexp.MustCompile(`/listing/(\d+)`)

// ListingID extracts the numeric listing identifier from a marketplace URL.
func ListingID(rawurl string) (string, bool) {
	groups := listingPathRegex.FindStringSubmatch(rawurl)
	if len(groups) < 2 {
		return "", false
	}
	return groups[1], true
}

// fallback identifier for links that don't carry a listing id,
// so one odd feed item can't kill the build
func synthesizeID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// canonicalURL resolves href against base (nil for already-absolute
// links) and normalizes it, dropping query parameters and fragments so
// tracking junk doesn't defeat deduplication.
func canonicalURL(base *url.URL, href string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return purell.NormalizeURL(u, purell.FlagsSafe|purell.FlagRemoveDuplicateSlashes), nil
}
