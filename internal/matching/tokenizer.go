package matching

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

// NoMatchToken stands in for an empty query. It only contains lowercase ASCII
// letters so both the boolean and tsquery grammars accept it, and it is not a
// word any profile or project will ever contain.
const NoMatchToken = "qzxnomatchsentinelqzx"

// Tokenize normalizes text into distinct tokens. Control characters,
// punctuation and symbols become separators (this covers , ; / | as well),
// duplicates are dropped case-sensitively. The returned slice is sorted; the
// order carries no meaning beyond determinism.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			return ' '
		default:
			return r
		}
	}, text)

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	sort.Strings(tokens)
	return tokens
}

// FlattenCareer turns a career map stored as JSON ({"Spring": 36, "JPA": 12})
// into plain text holding every key once. Values are ignored. Arrays
// contribute their string elements, and anything that is not JSON is treated
// as already-flat text.
func FlattenCareer(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !gjson.Valid(raw) {
		return raw
	}

	parsed := gjson.Parse(raw)
	seen := make(map[string]struct{})
	var parts []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		parts = append(parts, s)
	}

	switch {
	case parsed.IsObject():
		parsed.ForEach(func(key, _ gjson.Result) bool {
			add(key.String())
			return true
		})
	case parsed.IsArray():
		parsed.ForEach(func(_, value gjson.Result) bool {
			if value.Type == gjson.String {
				add(value.String())
			}
			return true
		})
	case parsed.Type == gjson.String:
		add(parsed.String())
	}
	return strings.Join(parts, " ")
}
