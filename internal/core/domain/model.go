package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RuleName identifies one rewrite stage.
type RuleName string

const (
	ConvertFullWidthToHalfWidth  RuleName = "convertFullWidthToHalfWidth"
	ConvertHalfWidthToFullWidth  RuleName = "convertHalfWidthToFullWidth"
	RemovePunctuationAfterQuotes RuleName = "removePunctuationAfterQuotes"
	InsertSpaceAfterExclamations RuleName = "insertSpaceAfterExclamations"
	EnsureEvenPunctuationCount   RuleName = "ensureEvenPunctuationCount"
	InsertSpaceAtLineStart       RuleName = "insertSpaceAtLineStart"
)

// ErrUnknownRule is returned when a rule name does not match any stage.
var ErrUnknownRule = errors.New("unknown rule")

// Options holds one flag per stage. The zero value disables every stage.
type Options struct {
	ConvertFullWidthToHalfWidth  bool `json:"convertFullWidthToHalfWidth" yaml:"convert_full_width_to_half_width" toml:"convert_full_width_to_half_width"`
	ConvertHalfWidthToFullWidth  bool `json:"convertHalfWidthToFullWidth" yaml:"convert_half_width_to_full_width" toml:"convert_half_width_to_full_width"`
	RemovePunctuationAfterQuotes bool `json:"removePunctuationAfterQuotes" yaml:"remove_punctuation_after_quotes" toml:"remove_punctuation_after_quotes"`
	InsertSpaceAfterExclamations bool `json:"insertSpaceAfterExclamations" yaml:"insert_space_after_exclamations" toml:"insert_space_after_exclamations"`
	EnsureEvenPunctuationCount   bool `json:"ensureEvenPunctuationCount" yaml:"ensure_even_punctuation_count" toml:"ensure_even_punctuation_count"`
	InsertSpaceAtLineStart       bool `json:"insertSpaceAtLineStart" yaml:"insert_space_at_line_start" toml:"insert_space_at_line_start"`
}

// AllOptions returns Options with every stage enabled.
func AllOptions() Options {
	return Options{
		ConvertFullWidthToHalfWidth:  true,
		ConvertHalfWidthToFullWidth:  true,
		RemovePunctuationAfterQuotes: true,
		InsertSpaceAfterExclamations: true,
		EnsureEvenPunctuationCount:   true,
		InsertSpaceAtLineStart:       true,
	}
}

// Enable switches on the named stage.
func (o *Options) Enable(name RuleName) error {
	switch name {
	case ConvertFullWidthToHalfWidth:
		o.ConvertFullWidthToHalfWidth = true
	case ConvertHalfWidthToFullWidth:
		o.ConvertHalfWidthToFullWidth = true
	case RemovePunctuationAfterQuotes:
		o.RemovePunctuationAfterQuotes = true
	case InsertSpaceAfterExclamations:
		o.InsertSpaceAfterExclamations = true
	case EnsureEvenPunctuationCount:
		o.EnsureEvenPunctuationCount = true
	case InsertSpaceAtLineStart:
		o.InsertSpaceAtLineStart = true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, string(name))
	}
	return nil
}

// ParseRules builds Options from a comma-separated list of rule names.
// Names are matched case-insensitively; "all" enables every stage.
func ParseRules(list string) (Options, error) {
	var opts Options
	all := false
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.EqualFold(field, "all") {
			all = true
			continue
		}
		if err := opts.Enable(lookupRule(field)); err != nil {
			return Options{}, err
		}
	}
	if all {
		return AllOptions(), nil
	}
	return opts, nil
}

// ruleNames is the lookup set for ParseRules; run order lives in the pipeline.
var ruleNames = []RuleName{
	ConvertFullWidthToHalfWidth,
	ConvertHalfWidthToFullWidth,
	RemovePunctuationAfterQuotes,
	InsertSpaceAfterExclamations,
	EnsureEvenPunctuationCount,
	InsertSpaceAtLineStart,
}

func lookupRule(field string) RuleName {
	for _, name := range ruleNames {
		if strings.EqualFold(field, string(name)) {
			return name
		}
	}
	return RuleName(field)
}

// Result holds the outcome of a formatting call.
type Result struct {
	Text         string
	Applied      []RuleName
	InputLength  int
	OutputLength int
	Changed      bool
	Elapsed      time.Duration
	Details      map[string]interface{}
}
