package catalog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		title    string
		id       string
		expected string
	}{
		{title: "Spring Garden Flag", id: "12345", expected: "spring-garden-flag-12345"},
		{title: "Gnomes & Flowers!", id: "77", expected: "gnomes-flowers-77"},
		{title: "  Cozy   Winter  ", id: "8", expected: "cozy-winter-8"},
		{title: "", id: "9001", expected: "9001"},
		{title: "???", id: "42", expected: "42"},
	}

	slugCharset := regexp.MustCompile(`^[a-z0-9-]+$`)
	for _, test := range testCases {
		slug := Slug(test.title, test.id)
		require.Equal(t, test.expected, slug)
		require.Regexp(t, slugCharset, slug)
		require.True(t, strings.HasSuffix(slug, test.id))
	}
}

func TestSlugSetClaim(t *testing.T) {
	set := SlugSet{}

	require.Equal(t, "spring-flag-111", set.Claim("Spring Flag", "111"))
	require.Equal(t, "spring-flag-2-111", set.Claim("Spring Flag", "111"))
	require.Equal(t, "spring-flag-3-111", set.Claim("Spring Flag", "111"))
	require.Equal(t, "spring-flag-222", set.Claim("Spring Flag", "222"))
}

func TestInferType(t *testing.T) {
	testCases := []struct {
		title       string
		description string
		expected    Type
	}{
		{title: "Spring Garden Flag", description: "a flag", expected: TypeGardenFlag},
		{title: "Seamless Berry Print", description: "", expected: TypeDigitalPattern},
		{title: "Plaid PATTERN bundle", description: "", expected: TypeDigitalPattern},
		{title: "Cozy Flag", description: "repeating pattern file", expected: TypeDigitalPattern},
		{title: "Gift Wrap at Terns Point", description: "", expected: TypeGardenFlag},
		{title: "", description: "", expected: TypeGardenFlag},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, InferType(test.title, test.description),
			"title=%q description=%q", test.title, test.description)
	}
}

func TestTypePages(t *testing.T) {
	require.Equal(t, "Garden Flags", TypeGardenFlag.Label())
	require.Equal(t, "garden-flags", TypeGardenFlag.CategorySlug())
	require.Equal(t, "Digital Patterns", TypeDigitalPattern.Label())
	require.Equal(t, "digital-patterns", TypeDigitalPattern.CategorySlug())
}

func TestSnapshotRoundTrip(t *testing.T) {
	products := []Product{
		{
			ID:             "111",
			Slug:           "spring-flag-111",
			Title:          "Spring Flag",
			Description:    "A flag.",
			Type:           TypeGardenFlag,
			SourceURL:      "https://marketplace.example/listing/111",
			ImageRemoteURL: "https://i.cdn.example/il/111.jpg",
			ImageLocalPath: "/assets/products/spring-flag-111.jpg",
			Tags:           []string{},
		},
		{
			ID:          "222",
			Slug:        "berry-pattern-222",
			Title:       "Berry Pattern",
			Description: "A seamless pattern.",
			Type:        TypeDigitalPattern,
			SourceURL:   "https://marketplace.example/listing/222",
			Tags:        []string{},
		},
	}

	root := t.TempDir()
	path, err := WriteSnapshot(root, products)
	require.NoError(t, err)

	loaded, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, products, loaded)
}
