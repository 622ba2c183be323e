package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_jp_formatter/internal/core/domain"
)

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeProfile(t, "novel.yaml", `
convert_full_width_to_half_width: true
insert_space_at_line_start: true
`)
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Options{
		ConvertFullWidthToHalfWidth: true,
		InsertSpaceAtLineStart:      true,
	}, opts)
}

func TestLoadTOML(t *testing.T) {
	path := writeProfile(t, "novel.toml", `
remove_punctuation_after_quotes = true
ensure_even_punctuation_count = true
rules = ["insertSpaceAfterExclamations"]
`)
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Options{
		RemovePunctuationAfterQuotes: true,
		EnsureEvenPunctuationCount:   true,
		InsertSpaceAfterExclamations: true,
	}, opts)
}

func TestLoadJSON(t *testing.T) {
	path := writeProfile(t, "web.JSON", `{"convertHalfWidthToFullWidth": true, "rules": ["all"]}`)
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.AllOptions(), opts)
}

func TestLoadEmptyProfileIsIdentity(t *testing.T) {
	path := writeProfile(t, "empty.yml", "")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Options{}, opts)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeProfile(t, "bad.toml", "remove_punctuation_after_quotes = ["))
	assert.Error(t, err)

	_, err = Load(writeProfile(t, "bad.yaml", "rules: [nope]"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownRule))
}

func TestMerge(t *testing.T) {
	a := domain.Options{ConvertFullWidthToHalfWidth: true}
	b := domain.Options{InsertSpaceAtLineStart: true}
	assert.Equal(t, domain.Options{ConvertFullWidthToHalfWidth: true, InsertSpaceAtLineStart: true}, Merge(a, b))
	assert.Equal(t, a, Merge(a, domain.Options{}))
}
