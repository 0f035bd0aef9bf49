// Package slug normaliza usernames y títulos para usarlos en URLs.
// Quita diacríticos vía descomposición NFD (golang.org/x/text) y colapsa
// todo lo que no sea alfanumérico a guiones.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents descompone y elimina marcas de combinación (tildes, diéresis).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte s en un slug: minúsculas, sin tildes, [a-z0-9-] únicamente.
// Devuelve cadena vacía si no queda ningún carácter utilizable.
func Make(s string) string {
	clean, _, err := transform.String(stripAccents, s)
	if err != nil {
		clean = s
	}
	clean = strings.ToLower(clean)

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range clean {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
