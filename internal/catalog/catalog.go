// Package catalog defines the product records a build produces and the
// slug and category derivation rules shared by the scraper and the site
// generator.
package catalog

import (
	"strconv"
	"strings"

	"github.com/codeman8806/thecharmedcardinal.com/lib/textutil"
)

type Type string

const (
	TypeGardenFlag     Type = "garden-flag"
	TypeDigitalPattern Type = "digital-pattern"
)

// Types returns the fixed category buckets in rendering order.
func Types() []Type {
	return []Type{TypeGardenFlag, TypeDigitalPattern}
}

// Label is the human-readable category name used in page copy.
func (t Type) Label() string {
	switch t {
	case TypeDigitalPattern:
		return "Digital Patterns"
	default:
		return "Garden Flags"
	}
}

// CategorySlug is the filename stem of the category's generated page.
func (t Type) CategorySlug() string {
	switch t {
	case TypeDigitalPattern:
		return "digital-patterns"
	default:
		return "garden-flags"
	}
}

var patternKeywords = []string{"seamless", "pattern"}

// InferType buckets a product by keyword match over its title and
// description. Anything that doesn't read like a digital pattern falls
// into the garden flag category.
func InferType(title, description string) Type {
	if textutil.ContainsAny(title, patternKeywords) || textutil.ContainsAny(description, patternKeywords) {
		return TypeDigitalPattern
	}
	return TypeGardenFlag
}

// Product is the unit every build stage hands to the next: scraped
// metadata first, then the materialized image path, then the rendered
// pages. It is never mutated after rendering starts.
type Product struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Type           Type     `json:"type"`
	SourceURL      string   `json:"sourceUrl"`
	ImageRemoteURL string   `json:"imageRemoteUrl,omitempty"`
	ImageLocalPath string   `json:"imageLocalPath,omitempty"`
	Tags           []string `json:"tags"`
}

// Slug derives the URL-safe filename stem for a listing's page and
// image. It always ends with the listing id, so two listings with the
// same title still get distinct slugs.
func Slug(title, id string) string {
	return joinSlug(textutil.Slugify(title), id)
}

func joinSlug(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "-")
}

// SlugSet hands out slugs for one build. A collision disambiguates by
// inserting a counter before the id instead of silently overwriting an
// earlier product's page.
type SlugSet map[string]bool

func (s SlugSet) Claim(title, id string) string {
	base := textutil.Slugify(title)
	slug := joinSlug(base, id)
	for n := 2; s[slug]; n++ {
		slug = joinSlug(base, strconv.Itoa(n), id)
	}
	s[slug] = true
	return slug
}
