// Package build runs the whole pipeline: discover listings, scrape
// each one, materialize images, snapshot the catalog, and generate the
// site. Everything happens sequentially, one network operation at a
// time, in discovery order.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeman8806/thecharmedcardinal.com/internal/assets"
	"github.com/codeman8806/thecharmedcardinal.com/internal/catalog"
	"github.com/codeman8806/thecharmedcardinal.com/internal/sitegen"
	"github.com/codeman8806/thecharmedcardinal.com/lib/scrapers/etsy"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/build")

// Dropped records one listing that didn't make it into the build and why.
type Dropped struct {
	URL string
	Err error
}

// Report summarizes a finished build.
type Report struct {
	Products []catalog.Product
	Dropped  []Dropped
	Elapsed  time.Duration
}

type Builder struct {
	config Config
	root   string
	shop   *etsy.Client
	images *assets.Materializer
	site   *sitegen.Generator
}

func NewBuilder(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	root := config.Output.Root
	if root == "" {
		root = "."
	}

	shop, err := etsy.NewClient(etsy.ClientOptions{
		BaseUrl:           config.Shop.BaseUrl,
		TitleSuffixes:     config.Site.TitleSuffixes,
		CdnHost:           config.Shop.CdnHost,
		FetchListingPages: config.Shop.FetchListingPages,
		RequestsPerSecond: config.Shop.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("shop client: %w", err)
	}

	site, err := sitegen.NewGenerator(sitegen.Options{
		Root: root,
		Site: sitegen.Site{
			Domain: config.Site.Domain,
			Name:   config.Site.Name,
		},
		Featured: config.Output.Featured,
	})
	if err != nil {
		return nil, err
	}

	return &Builder{
		config: config,
		root:   root,
		shop:   shop,
		images: assets.NewMaterializer(root),
		site:   site,
	}, nil
}

// Run executes one build. Discovery failures and an empty result set
// are fatal; a single listing's scrape failure drops that listing and
// the build carries on.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	start := time.Now()

	refs, err := b.discover(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "discovery failed")
		return nil, fmt.Errorf("discovery: %w", err)
	}
	if len(refs) == 0 {
		return nil, errors.New("discovery returned no listings")
	}
	slog.InfoContext(ctx, "discovered listings", "count", len(refs), "mode", b.config.Shop.Discovery)

	slugs := catalog.SlugSet{}
	var products []catalog.Product
	var dropped []Dropped
	for _, ref := range refs {
		meta, err := b.shop.ScrapeListing(ctx, ref)
		if err != nil {
			slog.WarnContext(ctx, "dropping listing", "url", ref.URL, "err", err)
			dropped = append(dropped, Dropped{URL: ref.URL, Err: err})
			continue
		}

		product := catalog.Product{
			ID:             ref.ID,
			Slug:           slugs.Claim(meta.Title, ref.ID),
			Title:          meta.Title,
			Description:    meta.Description,
			Type:           catalog.InferType(meta.Title, meta.Description),
			SourceURL:      ref.URL,
			ImageRemoteURL: meta.ImageURL,
			Tags:           []string{},
		}
		product.ImageLocalPath = b.materializeImage(ctx, product)
		products = append(products, product)
	}

	if len(products) == 0 {
		return nil, errors.New("no listings scraped successfully")
	}

	snapshotPath, err := catalog.WriteSnapshot(b.root, products)
	if err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	slog.InfoContext(ctx, "wrote product snapshot", "path", snapshotPath, "products", len(products))

	if err := b.site.Generate(ctx, products); err != nil {
		return nil, fmt.Errorf("generate site: %w", err)
	}

	return &Report{
		Products: products,
		Dropped:  dropped,
		Elapsed:  time.Since(start),
	}, nil
}

// Discover runs just the discovery step, for inspecting what a build
// would scrape.
func (b *Builder) Discover(ctx context.Context) ([]etsy.ListingRef, error) {
	return b.discover(ctx)
}

func (b *Builder) discover(ctx context.Context) ([]etsy.ListingRef, error) {
	switch b.config.Shop.Discovery {
	case DiscoveryBrowser:
		return b.shop.DiscoverFromShop(ctx, b.config.Shop.ShopUrl, b.config.Shop.PageCap)
	case DiscoveryAPI:
		return b.shop.DiscoverFromAPI(ctx, b.config.Shop.ApiUrl)
	default:
		return b.shop.DiscoverFromFeed(ctx, b.config.Shop.FeedUrl)
	}
}

// materializeImage downloads the product's image, substituting the
// placeholder when there is nothing to download or the download fails.
func (b *Builder) materializeImage(ctx context.Context, product catalog.Product) string {
	image, err := b.images.Materialize(ctx, product.Slug, product.ImageRemoteURL)
	if err != nil {
		slog.WarnContext(ctx, "image download failed, using placeholder", "slug", product.Slug, "err", err)
		return b.placeholderImage()
	}
	if image == nil {
		return b.placeholderImage()
	}
	return image.WebPath
}

func (b *Builder) placeholderImage() string {
	if b.config.Output.PlaceholderImage != "" {
		return b.config.Output.PlaceholderImage
	}
	return "/assets/products/placeholder.jpg"
}
