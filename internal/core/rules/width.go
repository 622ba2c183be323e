package rules

import (
	"strings"
)

// FullWidthToHalfWidth maps full-width Latin letters and digits to ASCII.
func FullWidthToHalfWidth(text string) string {
	return strings.Map(func(r rune) rune {
		if isFullWidthAlnum(r) {
			return r - fullWidthOffset
		}
		return r
	}, text)
}

// HalfWidthToFullWidth maps the ASCII marks !?() to their full-width forms.
func HalfWidthToFullWidth(text string) string {
	return strings.Map(func(r rune) rune {
		if full, ok := halfToFull[r]; ok {
			return full
		}
		return r
	}, text)
}
