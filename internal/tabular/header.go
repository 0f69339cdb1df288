package tabular

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// splitHeader normalizes a header cell into a snake_case name and an
// optional unit tag. "Altitude (m)" becomes ("altitude", "m"),
// "CD Power-Off" becomes ("cd_power_off", "").
func splitHeader(cell string) (name, unit string) {
	s := strings.TrimSpace(norm.NFC.String(cell))
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		if strings.HasSuffix(s, pair[1]) {
			if i := strings.LastIndex(s, pair[0]); i >= 0 {
				unit = strings.TrimSpace(s[i+1 : len(s)-1])
				s = strings.TrimSpace(s[:i])
				break
			}
		}
	}
	return snake(s), unit
}

// snake lower-cases s and joins its alphanumeric runs with underscores.
func snake(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
