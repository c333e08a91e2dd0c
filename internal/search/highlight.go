package search

import (
	"strings"
	"unicode"
)

// Segment is a run of text that either matches the query or does not.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Highlight splits text into alternating non-matching and matching
// segments. Matching is case-insensitive and literal. Segments keep the
// original casing and concatenate back to text. The query is trimmed the
// same way Filter trims it, so every field Filter matched has a match here.
func Highlight(text, query string) []Segment {
	if text == "" {
		return []Segment{}
	}
	q := []rune(strings.TrimFunc(query, unicode.IsSpace))
	if len(q) == 0 {
		return []Segment{{Text: text}}
	}

	src := []rune(text)
	lower := foldRunes(src)
	lq := foldRunes(q)

	var segs []Segment
	start := 0
	for i := 0; i+len(lq) <= len(lower); {
		if !runesEqual(lower[i:i+len(lq)], lq) {
			i++
			continue
		}
		if i > start {
			segs = append(segs, Segment{Text: string(src[start:i])})
		}
		segs = append(segs, Segment{Text: string(src[i : i+len(lq)]), Match: true})
		i += len(lq)
		start = i
	}
	if start < len(src) {
		segs = append(segs, Segment{Text: string(src[start:])})
	}
	return segs
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
