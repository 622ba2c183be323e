package rules

import (
	"strings"
)

// RemovePunctuationAfterQuotes drops a sentence-terminal mark that sits
// directly before the closer of a bracketed span.
//
// A span runs from an opening mark to the nearest closing mark of any family
// on the same line, so 「...) counts as a span. Spans never overlap: scanning
// resumes after the closer.
func RemovePunctuationAfterQuotes(text string) string {
	buf := runePool.Decode(text)
	defer runePool.Put(buf)
	runes := *buf

	var sb strings.Builder
	sb.Grow(len(text))
	changed := false

	// Openers before unclosedUntil are known to have no closer on their line.
	unclosedUntil := 0
	for i := 0; i < len(runes); {
		if i < unclosedUntil || !isOpening(runes[i]) {
			sb.WriteRune(runes[i])
			i++
			continue
		}

		end, ok := spanEnd(runes, i)
		if !ok {
			unclosedUntil = end
			sb.WriteRune(runes[i])
			i++
			continue
		}

		body := runes[i:end]
		if len(body) > 1 && isTerminal(body[len(body)-1]) {
			body = body[:len(body)-1]
			changed = true
		}
		for _, r := range body {
			sb.WriteRune(r)
		}
		sb.WriteRune(runes[end])
		i = end + 1
	}

	if !changed {
		return text
	}
	return sb.String()
}

// spanEnd finds the closer for the opener at open. When there is none it
// returns the index of the line terminator (or text end) that stopped the
// search.
func spanEnd(runes []rune, open int) (int, bool) {
	for j := open + 1; j < len(runes); j++ {
		switch {
		case isClosing(runes[j]):
			return j, true
		case isLineTerminator(runes[j]):
			return j, false
		}
	}
	return len(runes), false
}
