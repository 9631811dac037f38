// Package phrase decomposes and inflects the free-text category phrases
// attached to catalogue items. All functions are pure and deterministic.
package phrase

import "strings"

// Qualifier prefixes in "X of Y" / "X from Y" phrases that carry no topical
// signal of their own, so only the remainder is kept.
var discardedQualifiers = map[string]bool{
	"pair":      true,
	"copy":      true,
	"base":      true,
	"fragments": true,
	"figure":    true,
}

func stripArticle(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "a ") {
		return strings.Trim(strings.TrimSpace(text[2:]), "()[]")
	}
	if strings.HasPrefix(text, "an ") {
		return strings.Trim(strings.TrimSpace(text[3:]), "()[]")
	}
	return strings.Trim(text, "()[]")
}

// Extract recursively decomposes a compound category phrase into atomic
// candidate terms, most specific first. Duplicates are allowed; callers
// de-duplicate where it matters. A single word yields no candidates.
func Extract(category string) []string {
	if !strings.Contains(category, " ") {
		return nil
	}
	switch {
	case strings.Contains(category, " for "):
		idx := strings.Index(category, " for ")
		prefix := stripArticle(category[:idx])
		suffix := stripArticle(category[idx+5:])
		out := []string{suffix, prefix}
		out = append(out, Extract(suffix)...)
		out = append(out, Extract(prefix)...)
		return out
	case strings.Contains(category, "("):
		start := strings.Index(category, "(")
		end := strings.Index(category, ")")
		if end < start {
			end = len(category) - 1
		}
		outer := stripArticle(category[:start] + " " + category[end+1:])
		inner := stripArticle(category[start+1 : end])
		out := []string{outer, inner}
		out = append(out, Extract(outer)...)
		out = append(out, Extract(inner)...)
		return out
	case strings.Contains(category, " with "):
		idx := strings.Index(category, " with ")
		prefix := stripArticle(category[:idx])
		suffix := stripArticle(category[idx+6:])
		out := []string{prefix, suffix}
		out = append(out, Extract(prefix)...)
		out = append(out, Extract(suffix)...)
		return out
	case strings.Contains(category, " of "):
		return splitQualified(category, " of ")
	case strings.Contains(category, " from "):
		return splitQualified(category, " from ")
	case strings.Contains(category, "&"):
		parts := strings.Split(category, "&")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, stripArticle(p))
		}
		for _, c := range out[:len(parts)] {
			out = append(out, Extract(c)...)
		}
		return out
	case strings.Contains(category, " and ") || strings.Contains(category, ","):
		var out []string
		for {
			andIdx := strings.Index(category, " and ")
			commaIdx := strings.Index(category, ",")
			idx := -1
			switch {
			case andIdx >= 0 && commaIdx >= 0:
				idx = min(andIdx, commaIdx)
			case andIdx >= 0:
				idx = andIdx
			case commaIdx >= 0:
				idx = commaIdx
			}
			if idx < 0 {
				break
			}
			out = append(out, stripArticle(category[:idx]))
			if category[idx] == ',' {
				category = category[idx+1:]
			} else {
				category = category[idx+5:]
			}
		}
		if rest := strings.Trim(strings.TrimSpace(category), "()[]"); rest != "" {
			out = append(out, stripArticle(rest))
		}
		for _, c := range append([]string(nil), out...) {
			out = append(out, Extract(c)...)
		}
		return out
	case strings.Contains(category, " or "):
		var out []string
		for strings.Contains(category, " or ") {
			idx := strings.Index(category, " or ")
			out = append(out, stripArticle(category[:idx]))
			category = strings.Trim(strings.TrimSpace(category[idx+4:]), "()[]")
		}
		if strings.Trim(strings.TrimSpace(category), "()[]") != "" {
			out = append(out, stripArticle(category))
		}
		for _, c := range append([]string(nil), out...) {
			out = append(out, Extract(c)...)
		}
		return out
	default:
		// No connector words: emit every right-aligned suffix as a
		// progressively less specific candidate.
		words := strings.Fields(category)
		out := make([]string, 0, len(words)-1)
		for idx := len(words) - 1; idx >= 1; idx-- {
			out = append(out, strings.Join(words[len(words)-idx:], " "))
		}
		return out
	}
}

func splitQualified(category, connector string) []string {
	idx := strings.Index(category, connector)
	prefix := stripArticle(category[:idx])
	suffix := stripArticle(category[idx+len(connector):])
	if discardedQualifiers[prefix] {
		return append([]string{suffix}, Extract(suffix)...)
	}
	out := []string{suffix, prefix}
	out = append(out, Extract(suffix)...)
	out = append(out, Extract(prefix)...)
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
