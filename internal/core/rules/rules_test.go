package rules

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/width"
)

func TestFullWidthToHalfWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "letters and digits", input: "ＡＢＣ１２３", expected: "ABC123"},
		{name: "lower case", input: "ａｂｃｘｙｚ", expected: "abcxyz"},
		{name: "mixed with kana", input: "第１章　ＧＯ言語", expected: "第1章　GO言語"},
		{name: "full-width marks untouched", input: "！？（）＠", expected: "！？（）＠"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FullWidthToHalfWidth(tc.input))
		})
	}
}

func TestFullWidthOffsetMatchesWidthTables(t *testing.T) {
	for _, r := range "ＡＢＣＤＥＦＧＨＩＪＫＬＭＮＯＰＱＲＳＴＵＶＷＸＹＺａｂｃｄｅｆｇｈｉｊｋｌｍｎｏｐｑｒｓｔｕｖｗｘｙｚ０１２３４５６７８９" {
		s := string(r)
		require.Equal(t, width.EastAsianFullwidth, width.LookupRune(r).Kind(), "rune %q", r)
		assert.Equal(t, width.Narrow.String(s), FullWidthToHalfWidth(s), "rune %q", r)
	}
}

func TestHalfWidthToFullWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sentence", input: "Hello!? (World)", expected: "Hello！？ （World）"},
		{name: "marks only", input: "!?!?()!?", expected: "！？！？（）！？"},
		{name: "other ASCII untouched", input: "a.b,c[d]", expected: "a.b,c[d]"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HalfWidthToFullWidth(tc.input))
		})
	}
}

func TestWidthConversionsAreNotInverse(t *testing.T) {
	input := "ＡＢ!?"
	out := HalfWidthToFullWidth(FullWidthToHalfWidth(input))
	assert.Equal(t, "AB！？", out)
}

func TestRemovePunctuationAfterQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "corner brackets", input: "「こんにちは。」", expected: "「こんにちは」"},
		{name: "double corner brackets", input: "『ありがとう、世界。』", expected: "『ありがとう、世界』"},
		{name: "full-width parens", input: "（よろしくお願いします。）", expected: "（よろしくお願いします）"},
		{name: "ASCII parens", input: "(Please check this out.)", expected: "(Please check this out)"},
		{
			name:     "every family",
			input:    "「こんにちは、」『ありがとう。』（よろしく。）(Check this.)",
			expected: "「こんにちは」『ありがとう』（よろしく）(Check this)",
		},
		{name: "only adjacent mark removed", input: "「はい。。」", expected: "「はい。」"},
		{name: "inner punctuation kept", input: "「はい、そうです。」", expected: "「はい、そうです」"},
		{name: "no brackets", input: "純粋なテキスト。", expected: "純粋なテキスト。"},
		{name: "unclosed opener", input: "「こんにちは。", expected: "「こんにちは。"},
		{name: "closer without opener", input: "こんにちは。」", expected: "こんにちは。」"},
		{name: "mark only", input: "「。」", expected: "「」"},
		{name: "empty", input: "", expected: ""},
		// Spans close on the nearest closer of any family.
		{name: "mixed families", input: "「ええ。)", expected: "「ええ)"},
		{name: "nested stops at first closer", input: "「外（内。）外。」", expected: "「外（内）外。」"},
		{name: "span does not cross lines", input: "「一行目\n二行目。」", expected: "「一行目\n二行目。」"},
		{name: "span does not cross line separator", input: "「あ。\u2028い。」", expected: "「あ。\u2028い。」"},
		{name: "span does not cross paragraph separator", input: "（あ\u2029い。）", expected: "（あ\u2029い。）"},
		{name: "later opener on next line", input: "「一行目\n「二行目。」", expected: "「一行目\n「二行目」"},
		{name: "second opener inside unclosed line", input: "「あ「い。\nう。」", expected: "「あ「い。\nう。」"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RemovePunctuationAfterQuotes(tc.input))
		})
	}
}

func TestInsertSpaceAfterExclamations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single mark", input: "Hello!How are you?", expected: "Hello!　How are you?"},
		{name: "half-width run", input: "Hello!!??Wow!", expected: "Hello!!??　Wow!"},
		{name: "full-width run", input: "こんにちは！！？？さようなら！", expected: "こんにちは！！？？　さようなら！"},
		{name: "mixed run", input: "Hello!！?？Wow!", expected: "Hello!！?？　Wow!"},
		{name: "closing bracket", input: "「こんにちは！？」！！さようなら！", expected: "「こんにちは！？」！！　さようなら！"},
		{name: "full-width only", input: "こんにちは！ありがとう？さようなら！", expected: "こんにちは！　ありがとう？　さようなら！"},
		{name: "half-width only", input: "Hello!How?Wow!", expected: "Hello!　How?　Wow!"},
		{name: "line end", input: "はい！\nいいえ？\r\nまた", expected: "はい！\nいいえ？\r\nまた"},
		{name: "line separator", input: "え!\u2028あ?\u2029い", expected: "え!\u2028あ?\u2029い"},
		{name: "closer later in the text", input: "え!あ」", expected: "え!　あ」"},
		{name: "run at text start", input: "!あ", expected: "!　あ"},
		{name: "runs one character apart", input: "!a!b", expected: "!　a!　b"},
		{name: "already spaced", input: "はい！　いいえ", expected: "はい！　いいえ"},
		{name: "ASCII space follows", input: "Hi! there", expected: "Hi! there"},
		{name: "every closer", input: "(え!)『え?』（え！）「え？」", expected: "(え!)『え?』（え！）「え？」"},
		{name: "marks only", input: "!?！？", expected: "!?！？"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InsertSpaceAfterExclamations(tc.input))
		})
	}
}

func TestEnsureEvenPunctuationCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "odd runs", input: "……―………", expected: "……――…………"},
		{name: "even runs unchanged", input: "……――……", expected: "……――……"},
		{name: "singles", input: "…―", expected: "……――"},
		{name: "runs inside text", input: "そう…だね―うん………", expected: "そう……だね――うん…………"},
		{name: "no targets", input: "普通の文。", expected: "普通の文。"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EnsureEvenPunctuationCount(tc.input))
		})
	}
}

func TestEnsureEvenPunctuationCountRunLengths(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for _, target := range parityRunes {
			run := strings.Repeat(string(target), n)
			out := EnsureEvenPunctuationCount("あ" + run + "い")

			want := n
			if n%2 == 1 {
				want = n + 1
			}
			assert.Equal(t, want+2, utf8.RuneCountInString(out), "run of %d %q", n, target)
		}
	}
}

func TestInsertSpaceAtLineStart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "two lines", input: "こんにちは\n世界", expected: "　こんにちは\n　世界"},
		{
			name:     "bracket lines untouched",
			input:    "「こんにちは」\n『ありがとう』\n（よろしく）\n(Check this)",
			expected: "「こんにちは」\n『ありがとう』\n（よろしく）\n(Check this)",
		},
		{name: "every line", input: "行1\n行2\n行3", expected: "　行1\n　行2\n　行3"},
		{name: "empty lines kept", input: "a\n\nb\n", expected: "　a\n\n　b\n"},
		{name: "CRLF", input: "a\r\nb", expected: "　a\r\n　b"},
		{name: "CR only", input: "a\rb", expected: "　a\r　b"},
		{name: "already indented is indented again", input: "　a\nb", expected: "　　a\n　b"},
		{name: "line separators", input: "a\u2028b\u2029c", expected: "　a\u2028　b\u2029　c"},
		{name: "empty line between separators", input: "a\u2028\u2029b", expected: "　a\u2028\u2029　b"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InsertSpaceAtLineStart(tc.input))
		})
	}
}

func TestStagesAreIdempotent(t *testing.T) {
	stages := map[string]func(string) string{
		"fullToHalf":  FullWidthToHalfWidth,
		"halfToFull":  HalfWidthToFullWidth,
		"brackets":    RemovePunctuationAfterQuotes,
		"exclamation": InsertSpaceAfterExclamations,
		"parity":      EnsureEvenPunctuationCount,
	}
	inputs := []string{
		"",
		"ＡＢＣ１２３ Hello!? (World)",
		"「こんにちは。」『ありがとう、世界。』",
		"こんにちは！！？？さようなら！\n次の行",
		"……―………",
		"こんにちは\n\n「世界」\r\n行",
	}

	for name, stage := range stages {
		for _, in := range inputs {
			once := stage(in)
			assert.Equal(t, once, stage(once), "%s on %q", name, in)
		}
	}
}

func TestInsertSpaceAtLineStartIsNotIdempotent(t *testing.T) {
	once := InsertSpaceAtLineStart("こんにちは\n「世界」")
	assert.Equal(t, "　こんにちは\n「世界」", once)
	assert.Equal(t, "　　こんにちは\n「世界」", InsertSpaceAtLineStart(once))
}
