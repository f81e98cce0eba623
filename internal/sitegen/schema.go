package sitegen

import (
	"encoding/json"
	"html/template"

	"github.com/codeman8806/thecharmedcardinal.com/internal/catalog"
)

type offerSchema struct {
	Type         string `json:"@type"`
	URL          string `json:"url"`
	Availability string `json:"availability"`
}

type productSchema struct {
	Context     string      `json:"@context"`
	Type        string      `json:"@type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	URL         string      `json:"url"`
	Offers      offerSchema `json:"offers"`
}

// productJSONLD builds the structured-data block for a product page.
// json.Marshal escapes angle brackets inside strings, so the result is
// safe to inline into a script element as-is.
func productJSONLD(site Site, product catalog.Product) (template.JS, error) {
	image := ""
	if product.ImageLocalPath != "" {
		image = site.absoluteURL(product.ImageLocalPath)
	}

	encoded, err := json.Marshal(productSchema{
		Context:     "https://schema.org",
		Type:        "Product",
		Name:        product.Title,
		Description: product.Description,
		Image:       image,
		URL:         site.absoluteURL(productPagePath(product)),
		Offers: offerSchema{
			Type:         "Offer",
			URL:          product.SourceURL,
			Availability: "https://schema.org/InStock",
		},
	})
	if err != nil {
		return "", err
	}
	return template.JS(encoded), nil
}
