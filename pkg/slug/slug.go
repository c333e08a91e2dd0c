// Package slug builds URL path segments from display names.
package slug

import "strings"

// MaxLength bounds generated slugs. Longer names are cut at a word boundary.
const MaxLength = 80

// transliterator maps Latin letters with diacritics to ASCII.
var transliterator = strings.NewReplacer(
	"&", " and ",
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a", "æ", "ae",
	"ç", "c", "č", "c", "ć", "c",
	"ď", "d", "đ", "d",
	"è", "e", "é", "e", "ê", "e", "ë", "e", "ě", "e",
	"ğ", "g",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i", "i̇", "i",
	"ł", "l",
	"ñ", "n", "ň", "n", "ń", "n",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o", "ø", "o", "œ", "oe",
	"ř", "r",
	"š", "s", "ś", "s", "ş", "s", "ß", "ss",
	"ť", "t",
	"ù", "u", "ú", "u", "û", "u", "ü", "u", "ů", "u",
	"ý", "y", "ÿ", "y",
	"ž", "z", "ź", "z", "ż", "z",
)

// Generate turns a business name into the path segment used in canonical
// links, e.g. "Café Müller & Söhne" becomes "cafe-muller-and-sohne".
func Generate(name string) string {
	s := transliterator.Replace(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			gap = false
			continue
		}
		gap = true
	}
	return truncate(b.String())
}

// truncate cuts slugs longer than MaxLength at the last hyphen in the
// second half, or hard at MaxLength when there is none.
func truncate(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	s = s[:MaxLength]
	if i := strings.LastIndexByte(s, '-'); i > MaxLength/2 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}
