// Package sitegen renders the static storefront: one page per product,
// the two category pages, the shop and home pages, and the sitemap.
// Rendering is pure; everything comes from the product records and the
// site options, and every invocation regenerates every page.
package sitegen

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/codeman8806/thecharmedcardinal.com/internal/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/sitegen")

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static/styles.css
var stylesheet []byte

// Site identifies the generated site in page metadata and the sitemap.
type Site struct {
	// Domain is the absolute origin pages live under, without a
	// trailing slash, e.g. "https://thecharmedcardinal.com".
	Domain string
	// Name is the shop name used in titles and page copy.
	Name string
}

type Options struct {
	// Root is the directory the site is generated into.
	Root string
	Site Site
	// Featured caps how many products the home page shows.
	Featured int
}

type Generator struct {
	opts      Options
	templates *template.Template
}

func NewGenerator(opts Options) (*Generator, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Generator{opts: opts, templates: templates}, nil
}

// pageMeta feeds the shared head/nav/footer shell.
type pageMeta struct {
	Site        Site
	Title       string
	Description string
	Canonical   string
	Image       string
}

// card is one product tile on a grid page.
type card struct {
	catalog.Product
	Href string
}

type productView struct {
	pageMeta
	Product       catalog.Product
	CategoryLabel string
	CategoryHref  string
	SchemaJSON    template.JS
}

type categoryView struct {
	pageMeta
	Label string
	Intro string
	Cards []card
}

type shopSection struct {
	Label string
	Href  string
	Cards []card
}

type shopView struct {
	pageMeta
	Sections []shopSection
}

type indexView struct {
	pageMeta
	Featured []card
	Total    int
}

// Generate renders every page of the site from the product records.
func (g *Generator) Generate(ctx context.Context, products []catalog.Product) error {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	for _, product := range products {
		if err := g.renderProductPage(product); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to render product page")
			return err
		}
	}
	for _, categoryType := range catalog.Types() {
		if err := g.renderCategoryPage(categoryType, products); err != nil {
			return err
		}
	}
	if err := g.renderShopPage(products); err != nil {
		return err
	}
	if err := g.renderIndexPage(products); err != nil {
		return err
	}
	if err := g.writeSitemap(products); err != nil {
		return err
	}
	if err := g.writeFile("styles.css", stylesheet); err != nil {
		return err
	}

	slog.InfoContext(ctx, "generated site", "products", len(products), "root", g.opts.Root)
	return nil
}

func (g *Generator) renderProductPage(product catalog.Product) error {
	schemaJSON, err := productJSONLD(g.opts.Site, product)
	if err != nil {
		return fmt.Errorf("product schema for %s: %w", product.Slug, err)
	}

	return g.renderPage(productPagePath(product), "product", productView{
		pageMeta: pageMeta{
			Site:        g.opts.Site,
			Title:       fmt.Sprintf("%s | %s", product.Title, g.opts.Site.Name),
			Description: product.Description,
			Canonical:   g.absoluteURL(productPagePath(product)),
			Image:       g.absoluteURL(product.ImageLocalPath),
		},
		Product:       product,
		CategoryLabel: product.Type.Label(),
		CategoryHref:  "/" + categoryPagePath(product.Type),
		SchemaJSON:    schemaJSON,
	})
}

func (g *Generator) renderCategoryPage(categoryType catalog.Type, products []catalog.Product) error {
	var matching []catalog.Product
	for _, product := range products {
		if product.Type == categoryType {
			matching = append(matching, product)
		}
	}

	return g.renderPage(categoryPagePath(categoryType), "category", categoryView{
		pageMeta: pageMeta{
			Site:        g.opts.Site,
			Title:       fmt.Sprintf("%s | %s", categoryType.Label(), g.opts.Site.Name),
			Description: categoryIntro(categoryType),
			Canonical:   g.absoluteURL(categoryPagePath(categoryType)),
		},
		Label: categoryType.Label(),
		Intro: categoryIntro(categoryType),
		Cards: g.cards(matching),
	})
}

func (g *Generator) renderShopPage(products []catalog.Product) error {
	var sections []shopSection
	for _, categoryType := range catalog.Types() {
		var matching []catalog.Product
		for _, product := range products {
			if product.Type == categoryType {
				matching = append(matching, product)
			}
		}
		if len(matching) == 0 {
			continue
		}
		sections = append(sections, shopSection{
			Label: categoryType.Label(),
			Href:  "/" + categoryPagePath(categoryType),
			Cards: g.cards(matching),
		})
	}

	return g.renderPage("shop.html", "shop", shopView{
		pageMeta: pageMeta{
			Site:        g.opts.Site,
			Title:       fmt.Sprintf("Shop | %s", g.opts.Site.Name),
			Description: fmt.Sprintf("Every design currently in the %s shop.", g.opts.Site.Name),
			Canonical:   g.absoluteURL("shop.html"),
		},
		Sections: sections,
	})
}

func (g *Generator) renderIndexPage(products []catalog.Product) error {
	featured := g.opts.Featured
	if featured <= 0 || featured > len(products) {
		featured = len(products)
	}

	return g.renderPage("index.html", "index", indexView{
		pageMeta: pageMeta{
			Site:        g.opts.Site,
			Title:       g.opts.Site.Name,
			Description: fmt.Sprintf("Handmade garden flags and seamless digital patterns from %s.", g.opts.Site.Name),
			Canonical:   g.absoluteURL(""),
		},
		Featured: g.cards(products[:featured]),
		Total:    len(products),
	})
}

func (g *Generator) cards(products []catalog.Product) []card {
	cards := make([]card, 0, len(products))
	for _, product := range products {
		cards = append(cards, card{Product: product, Href: "/" + productPagePath(product)})
	}
	return cards
}

func (g *Generator) renderPage(relPath, templateName string, data any) error {
	var buffer bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buffer, templateName, data); err != nil {
		return fmt.Errorf("render %s: %w", relPath, err)
	}
	return g.writeFile(relPath, buffer.Bytes())
}

func (g *Generator) writeFile(relPath string, contents []byte) error {
	path := filepath.Join(g.opts.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	return os.WriteFile(path, contents, 0666)
}

// absoluteURL joins a site-relative path onto the domain, tolerating a
// missing or doubled slash on either side of the join.
func (s Site) absoluteURL(relPath string) string {
	return strings.TrimRight(s.Domain, "/") + "/" + strings.TrimLeft(relPath, "/")
}

func (g *Generator) absoluteURL(relPath string) string {
	return g.opts.Site.absoluteURL(relPath)
}

func productPagePath(product catalog.Product) string {
	return "products/" + product.Slug + ".html"
}

func categoryPagePath(categoryType catalog.Type) string {
	return "products/" + categoryType.CategorySlug() + ".html"
}

func categoryIntro(categoryType catalog.Type) string {
	switch categoryType {
	case catalog.TypeDigitalPattern:
		return "Seamless digital patterns ready to download for your own craft and print projects."
	default:
		return "Handmade garden flags to brighten your yard through every season."
	}
}
