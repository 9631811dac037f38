package phrase

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Pluralize pluralizes only the semantic head noun of a label, recursing
// through the same connectors Extract splits on so that "History of art"
// becomes "Histories of art" rather than "History of arts".
func Pluralize(label string) string {
	if !strings.Contains(label, " ") {
		return inflection.Plural(label)
	}
	switch {
	case strings.Contains(label, " - "):
		parts := strings.Split(label, " - ")
		parts[0] = Pluralize(parts[0])
		return strings.Join(parts, " - ")
	case strings.Contains(label, " of "):
		idx := strings.Index(label, " of ")
		return Pluralize(label[:idx]) + label[idx:]
	case strings.Contains(label, " for "):
		idx := strings.Index(label, " for ")
		return Pluralize(label[:idx]) + label[idx:]
	case strings.Contains(label, " and "):
		idx := strings.Index(label, " and ")
		return Pluralize(label[:idx]) + " and " + Pluralize(label[idx+5:])
	case strings.Contains(label, " or "):
		idx := strings.Index(label, " or ")
		return Pluralize(label[:idx]) + " or " + Pluralize(label[idx+4:])
	default:
		parts := strings.Split(label, " ")
		parts[len(parts)-1] = inflection.Plural(parts[len(parts)-1])
		return strings.Join(parts, " ")
	}
}

// Singularize reduces a single token to its singular form.
func Singularize(value string) string {
	return inflection.Singular(value)
}
