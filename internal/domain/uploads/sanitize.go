package uploads

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeFilename deja un nombre apto para usar como key de almacenamiento:
// sin componentes de ruta y solo con [A-Za-z0-9_.-].
//
//	"../../etc/passwd.png"  -> "etc_passwd.png"
//	"My cool photo.JPG"     -> "My_cool_photo.JPG"
//
// Puede devolver "" si no queda nada utilizable.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune(' ')
		case r < 0x80:
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range joined {
		if isSafe(r) {
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "._")
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	}
	return false
}
