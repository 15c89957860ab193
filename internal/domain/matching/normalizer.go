package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// genericTokens are club-name fillers that carry no identity. They are
// removed as whole words only, so "Athletic Bilbao" and "Bilbao" share a
// key while "Atalanta" is untouched.
var genericTokens = map[string]struct{}{
	"fc": {}, "cf": {}, "afc": {}, "ac": {}, "sc": {}, "cd": {}, "sd": {},
	"fk": {}, "sk": {}, "if": {}, "bk": {}, "as": {}, "ss": {}, "rc": {},
	"cp": {}, "club": {}, "clube": {}, "de": {}, "futbol": {}, "futebol": {},
	"calcio": {}, "united": {}, "utd": {}, "city": {}, "town": {},
	"county": {}, "rovers": {}, "wanderers": {}, "albion": {},
	"athletic": {}, "atletico": {}, "sporting": {}, "real": {},
	"racing": {}, "deportivo": {}, "hotspur": {}, "rfc": {}, "rugby": {},
}

var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a free-text team name into a comparison key:
// lowercase, accents stripped, generic tokens dropped, punctuation and
// whitespace removed. Pure and total; a name made entirely of generic
// tokens yields the empty string.
func Normalize(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}

	if stripped, _, err := transform.String(deaccenter, value); err == nil {
		value = stripped
	}

	words := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '.' || r == '\''
	})

	var out strings.Builder
	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		if _, generic := genericTokens[word]; generic {
			continue
		}
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out.WriteRune(r)
			}
		}
	}

	return out.String()
}
