package rules

import (
	"strings"
)

// parityRunes are padded independently, one pass each.
var parityRunes = []rune{'…', '―'}

// EnsureEvenPunctuationCount pads every odd-length run of … or ― with one
// more of the same character.
func EnsureEvenPunctuationCount(text string) string {
	for _, target := range parityRunes {
		text = evenRuns(text, target)
	}
	return text
}

func evenRuns(text string, target rune) string {
	if !strings.ContainsRune(text, target) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(text)/4)
	changed := false

	run := 0
	for _, r := range text {
		if r == target {
			run++
			sb.WriteRune(r)
			continue
		}
		if run%2 == 1 {
			sb.WriteRune(target)
			changed = true
		}
		run = 0
		sb.WriteRune(r)
	}
	if run%2 == 1 {
		sb.WriteRune(target)
		changed = true
	}

	if !changed {
		return text
	}
	return sb.String()
}
