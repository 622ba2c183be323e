package rules

import (
	"strings"
)

// InsertSpaceAtLineStart indents every non-empty line with a full-width
// space unless it opens with a bracket. A line that already starts with a
// full-width space gets another one, so the stage is not idempotent. Line
// terminators are copied verbatim.
func InsertSpaceAtLineStart(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)
	changed := false

	atLineStart := true
	for _, r := range text {
		if atLineStart && needsIndent(r) {
			sb.WriteRune(ideographicSpace)
			changed = true
		}
		sb.WriteRune(r)
		atLineStart = isLineTerminator(r)
	}

	if !changed {
		return text
	}
	return sb.String()
}

func needsIndent(first rune) bool {
	return !isLineTerminator(first) && !isOpening(first)
}
