package rendering

import (
	"strings"
	"unicode"
)

// SingleLine flattens text for one-line slots such as a mail subject or a
// "Nome:" line: line breaks and tabs become a single space, other control
// characters are dropped.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			pendingSpace = true
		case unicode.IsControl(r):
			// dropped
		default:
			if pendingSpace && result.Len() > 0 {
				result.WriteByte(' ')
			}
			pendingSpace = false
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
