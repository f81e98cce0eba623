package sitegen

import (
	"encoding/xml"

	"github.com/codeman8806/thecharmedcardinal.com/internal/catalog"
)

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// writeSitemap emits one loc entry per static page and per product
// page, absolute under the site domain. No priority or changefreq.
func (g *Generator) writeSitemap(products []catalog.Product) error {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	add := func(relPath string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: g.absoluteURL(relPath)})
	}
	add("")
	add("shop.html")
	for _, categoryType := range catalog.Types() {
		add(categoryPagePath(categoryType))
	}
	for _, product := range products {
		add(productPagePath(product))
	}

	encoded, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	return g.writeFile("sitemap.xml", append([]byte(xml.Header), encoded...))
}
