// Package slug genera identificadores legibles para URLs públicas ("María José" -> "maria-jose").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make quita acentos, pasa a minúsculas y une las palabras con guiones.
// Devuelve "" si no queda ningún carácter alfanumérico.
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}

// FromEmail usa la parte local del email cuando no hay nombre.
func FromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return Make(local)
}
