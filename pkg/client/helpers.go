package client

import (
	"strings"
	"unicode/utf8"
)

// Initials returns up to two uppercased letters representing a display name:
// first letters of the first and last word, or the first two runes of a
// single-word name.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		return firstRuneUpper(parts[0]) + firstRuneUpper(parts[len(parts)-1])
	}
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// FilterPhoneChars strips everything but digits and the slash from a phone
// input field value.
func FilterPhoneChars(value string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '/' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstRuneUpper(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r))
}
