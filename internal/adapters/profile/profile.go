// Package profile loads formatting options from configuration files.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
)

// File is the on-disk shape of a profile. Rules, when present, is applied on
// top of the individual flags.
type File struct {
	domain.Options `yaml:",inline"`
	Rules          []string `json:"rules" yaml:"rules" toml:"rules"`
}

// Load reads a profile from path. The format is chosen by extension:
// .toml, .json, anything else is parsed as YAML.
func Load(path string) (domain.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Options{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes profile data in the format named by ext.
func Parse(data []byte, ext string) (domain.Options, error) {
	var f File
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return domain.Options{}, fmt.Errorf("failed to parse TOML profile: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return domain.Options{}, fmt.Errorf("failed to parse JSON profile: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return domain.Options{}, fmt.Errorf("failed to parse YAML profile: %w", err)
		}
	}

	opts := f.Options
	for _, name := range f.Rules {
		extra, err := domain.ParseRules(name)
		if err != nil {
			return domain.Options{}, fmt.Errorf("profile rules: %w", err)
		}
		opts = Merge(opts, extra)
	}
	return opts, nil
}

// Merge enables every stage enabled in either a or b.
func Merge(a, b domain.Options) domain.Options {
	return domain.Options{
		ConvertFullWidthToHalfWidth:  a.ConvertFullWidthToHalfWidth || b.ConvertFullWidthToHalfWidth,
		ConvertHalfWidthToFullWidth:  a.ConvertHalfWidthToFullWidth || b.ConvertHalfWidthToFullWidth,
		RemovePunctuationAfterQuotes: a.RemovePunctuationAfterQuotes || b.RemovePunctuationAfterQuotes,
		InsertSpaceAfterExclamations: a.InsertSpaceAfterExclamations || b.InsertSpaceAfterExclamations,
		EnsureEvenPunctuationCount:   a.EnsureEvenPunctuationCount || b.EnsureEvenPunctuationCount,
		InsertSpaceAtLineStart:       a.InsertSpaceAtLineStart || b.InsertSpaceAtLineStart,
	}
}
