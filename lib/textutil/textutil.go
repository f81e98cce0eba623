package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces runs of whitespace (including newlines
// left over from markup) with single spaces and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// word runs are kept apart so a keyword can't match across a word
// boundary ("wrap at terns" must not contain "pattern")
func normalizeText(s string) string {
	return strings.ToLower(CollapseWhitespace(s))
}

// ContainsAny reports whether the normalized text contains any of the
// given keywords. Keywords are expected in lowercase.
func ContainsAny(text string, keywords []string) bool {
	text = normalizeText(text)
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a string and reduces it to [a-z0-9-], collapsing
// every run of other characters into a single dash.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugSeparatorRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// StripSuffixes removes marketplace tails like " - Etsy" or
// " by ShopName" from a scraped title. Suffixes are matched
// case-insensitively and repeatedly, so stacked tails come off too.
func StripSuffixes(title string, suffixes []string) string {
	for {
		trimmed := strings.TrimRight(title, " \t")
		lower := strings.ToLower(trimmed)

		stripped := false
		for _, suffix := range suffixes {
			suffix = strings.ToLower(suffix)
			if suffix == "" || !strings.HasSuffix(lower, suffix) {
				continue
			}
			trimmed = trimmed[:len(trimmed)-len(suffix)]
			stripped = true
			break
		}
		if !stripped {
			return strings.TrimRight(trimmed, " \t-|–")
		}
		title = trimmed
	}
}

// Clamp cuts a string down to at most max runes, marking the cut with
// an ellipsis. Strings at or under the limit come back untouched.
func Clamp(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
