package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Abarrotes-api/internal/domain/entity"
)

var foldedCategories = func() map[string]entity.Category {
	m := make(map[string]entity.Category, len(entity.Categories()))
	for _, c := range entity.Categories() {
		m[fold(string(c))] = c
	}
	return m
}()

// ParseCategory resuelve s a una categoría conocida ignorando mayúsculas, tildes y espacios extremos.
// "lacteos" y "LÁCTEOS" resuelven a entity.CategoryDairy.
func ParseCategory(s string) (entity.Category, bool) {
	c, ok := foldedCategories[fold(s)]
	return c, ok
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return cases.Fold().String(out)
}
