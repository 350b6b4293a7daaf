// pkg/businesses/slug.go
package businesses

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe public id from a display name: lowercase,
// diacritics stripped, runs of anything else collapsed to "-".
func Slugify(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(name),
	)
	if err != nil {
		stripped = strings.ToLower(name)
	}
	return strings.Trim(slugSeparators.ReplaceAllString(stripped, "-"), "-")
}
