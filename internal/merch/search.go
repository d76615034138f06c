package merch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nairamart/catalog-service/internal/catalog"
)

// Search filters products whose title or category contains the query,
// ignoring case and diacritics. Used as the local fallback when the
// upstream list endpoint cannot service a search parameter. An empty query
// returns the input unchanged.
func Search(list []catalog.Product, query string) []catalog.Product {
	q := foldForSearch(query)
	if q == "" {
		return list
	}
	var out []catalog.Product
	for _, p := range list {
		if strings.Contains(foldForSearch(p.Title), q) ||
			strings.Contains(foldForSearch(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// foldForSearch lowercases, strips combining marks, and collapses
// whitespace.
func foldForSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, _ := transform.String(t, s)
	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}
