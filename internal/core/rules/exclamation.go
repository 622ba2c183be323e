package rules

import (
	"strings"
	"unicode"
)

// InsertSpaceAfterExclamations puts a full-width space after every run of
// !, ！, ? and ？ unless the run ends the text or is followed by a line
// break, whitespace or a closing mark.
func InsertSpaceAfterExclamations(text string) string {
	buf := runePool.Decode(text)
	defer runePool.Put(buf)
	runes := *buf

	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)
	changed := false

	for i := 0; i < len(runes); {
		if !isExclamation(runes[i]) {
			sb.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && isExclamation(runes[j]) {
			sb.WriteRune(runes[j])
			j++
		}
		if j < len(runes) && needsSpace(runes[j]) {
			sb.WriteRune(ideographicSpace)
			changed = true
		}
		i = j
	}

	if !changed {
		return text
	}
	return sb.String()
}

// needsSpace decides on the character right after a run. Whitespace covers
// the ideographic space, which keeps the stage idempotent.
func needsSpace(next rune) bool {
	return !isLineTerminator(next) && !isClosing(next) && !unicode.IsSpace(next)
}
