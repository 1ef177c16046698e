package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-picklecache/internal/utils"
)

func TestSplitStringIntoCommandAndArguments(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		cmd     string
		key     string
		value   string
		wantErr error
	}{
		{"bare command", "count", "count", "", "", nil},
		{"command is lowercased", "GET apple", "get", "apple", "", nil},
		{"set with value", "set apple banana", "set", "apple", "banana", nil},
		{"quoted value with spaces", `set city "new york"`, "set", "city", "new york", nil},
		{"single quoted key", `get 'my key'`, "get", "my key", "", nil},
		{"empty quoted value", `set k ""`, "set", "k", "", nil},
		{"blank line", "   ", "", "", "", utils.ErrEmptyCommand},
		{"too many words", "set a b c", "", "", "", utils.ErrTooManyArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, key, value, err := utils.SplitStringIntoCommandAndArguments(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}

	t.Run("unterminated quote", func(t *testing.T) {
		_, _, _, err := utils.SplitStringIntoCommandAndArguments(`set a "b`)
		assert.Error(t, err)
	})
}

func TestQuoteForDisplay(t *testing.T) {
	_, key, _, err := utils.SplitStringIntoCommandAndArguments("get " + utils.QuoteForDisplay("new york"))
	require.NoError(t, err)
	assert.Equal(t, "new york", key)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datastore.gob")

	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))
	require.NoError(t, utils.WriteFileAtomic(path, []byte("new"), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	t.Run("missing directory", func(t *testing.T) {
		err := utils.WriteFileAtomic(filepath.Join(dir, "nope", "x"), []byte("x"), 0644)
		assert.Error(t, err)
	})
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")

	size, ok, err := utils.FileSize(path)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, size)

	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	size, ok, err = utils.FileSize(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 5, size)
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()

	info, ok, err := utils.StatFile(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, info)

	info, ok, err = utils.StatFile(dir)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, info.IsDir())
}
