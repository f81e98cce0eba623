package etsy

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/codeman8806/thecharmedcardinal.com/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/codes"
)

// DiscoverFromShop walks the shop's paginated index with a headless
// browser, collecting listing anchors out of the rendered DOM. It stops
// at pageCap or as soon as a page contributes nothing new.
func (c *Client) DiscoverFromShop(ctx context.Context, shopUrl string, pageCap int) ([]ListingRef, error) {
	ctx, span := tracer.Start(ctx, "DiscoverFromShop")
	defer span.End()

	if pageCap <= 0 {
		pageCap = 1
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancel()

	seen := map[string]bool{}
	var refs []ListingRef
	for page := 1; page <= pageCap; page++ {
		pageUrl := shopUrl
		if page > 1 {
			pageUrl = fmt.Sprintf("%s?page=%d", shopUrl, page)
		}

		rendered, err := c.renderPage(allocCtx, pageUrl)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to render shop page")
			return nil, fmt.Errorf("render shop page %d: %w", page, err)
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
		if err != nil {
			return nil, fmt.Errorf("parse shop page %d: %w", page, err)
		}

		added := c.collectListingRefs(ctx, doc, pageUrl, seen, &refs)
		slog.InfoContext(ctx, "walked shop page", "page", page, "new_listings", added)
		if added == 0 {
			break
		}
	}

	return refs, nil
}

// collectListingRefs pulls listing anchors out of a shop page document,
// deduplicating against ids seen on earlier pages.
func (c *Client) collectListingRefs(ctx context.Context, doc *goquery.Document, pageUrl string, seen map[string]bool, refs *[]ListingRef) int {
	base, err := url.Parse(pageUrl)
	if err != nil {
		base = c.baseUrl
	}

	added := 0
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find(`a[href*="/listing/"]`)) {
		link, err := canonicalURL(base, a.Href)
		if err != nil {
			continue
		}
		id, ok := ListingID(link)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		*refs = append(*refs, ListingRef{ID: id, URL: link})
		added++
	}
	return added
}

// each page gets its own browser context so a stuck navigation cannot
// leak into later pages
func (c *Client) renderPage(allocCtx context.Context, pageUrl string) (string, error) {
	tabCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, time.Second*45)
	defer cancelTimeout()

	var rendered string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageUrl),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &rendered, chromedp.ByQuery),
	)
	return rendered, err
}
