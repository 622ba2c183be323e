// Package rules implements the typographic rewrite stages. Every stage is a
// total function over arbitrary text and works on code points.
package rules

import (
	"github.com/baditaflorin/go_jp_formatter/internal/pool"
)

const (
	// fullWidthOffset is the distance between a full-width Latin letter or
	// digit and its ASCII counterpart.
	fullWidthOffset = 0xFEE0

	ideographicSpace = '\u3000'
)

var runePool = pool.NewRuneBufferPool(4096)

// halfToFull maps the convertible ASCII marks to their full-width forms.
var halfToFull = map[rune]rune{
	'!': '！',
	'?': '？',
	'(': '（',
	')': '）',
}

func isFullWidthAlnum(r rune) bool {
	return (r >= 'Ａ' && r <= 'Ｚ') ||
		(r >= 'ａ' && r <= 'ｚ') ||
		(r >= '０' && r <= '９')
}

func isOpening(r rune) bool {
	switch r {
	case '「', '『', '（', '(':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '」', '』', '）', ')':
		return true
	}
	return false
}

// isTerminal reports sentence-terminal marks that are dropped before a closer.
func isTerminal(r rune) bool {
	switch r {
	case '、', '。', '.':
		return true
	}
	return false
}

func isExclamation(r rune) bool {
	switch r {
	case '!', '！', '?', '？':
		return true
	}
	return false
}

// isLineTerminator matches the characters that end a line.
func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}
