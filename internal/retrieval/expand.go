package retrieval

import (
	"strings"
	"unicode"
)

// synonyms is the domain seed table from §4.5.1: a small, curated set of
// interchangeable terms, not a general thesaurus.
var synonyms = map[string][]string{
	"rate":     {"throttle", "quota"},
	"limit":    {"throttle", "quota"},
	"throttle": {"rate", "limit"},
	"quota":    {"rate", "limit"},
}

// expandQuery produces query and a handful of case-convention and
// synonym variants, fed to the Symbol and Text sub-searches as additional
// OR clauses (§4.5.1). The original query is always first and always
// present even if every variant collapses to a duplicate.
func expandQuery(query string) []string {
	seen := map[string]struct{}{query: {}}
	variants := []string{query}

	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(strings.ToLower(query))
	add(toSnakeCase(query))
	add(toCamelCase(query))
	add(toKebabCase(query))

	for _, word := range strings.Fields(query) {
		for _, syn := range synonyms[strings.ToLower(word)] {
			add(strings.Replace(query, word, syn, 1))
		}
	}

	return variants
}

func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	prevLower := false
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			prevLower = false
		case unicode.IsUpper(r) && prevLower:
			flush()
			cur.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			cur.WriteRune(unicode.ToLower(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	flush()
	return words
}

func toSnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

func toKebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

func toCamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}
