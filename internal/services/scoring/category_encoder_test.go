package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "category_encoder.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCategoryEncoder(t *testing.T) {
	path := writeArtifact(t, `{"categories":{"Vegetables":7,"fruits":1,"dairy":0},"default_code":7}`)
	enc, err := LoadCategoryEncoder(path)
	require.NoError(t, err)

	assert.Equal(t, 7, enc.Encode("vegetables"))
	assert.Equal(t, 7, enc.Encode("VEGETABLES"))
	assert.Equal(t, 1, enc.Encode("fruits"))
	// Unseen categories fall back to the default code.
	assert.Equal(t, 7, enc.Encode("electronics"))

	assert.Equal(t, []string{"Vegetables", "dairy", "fruits"}, enc.Categories())
}

func TestLoadCategoryEncoderMissingFile(t *testing.T) {
	_, err := LoadCategoryEncoder(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadCategoryEncoderEmpty(t *testing.T) {
	path := writeArtifact(t, `{"categories":{},"default_code":0}`)
	_, err := LoadCategoryEncoder(path)
	require.Error(t, err)
}

func TestCategoriesCopyIsolated(t *testing.T) {
	path := writeArtifact(t, `{"categories":{"a":0,"b":1},"default_code":0}`)
	enc, err := LoadCategoryEncoder(path)
	require.NoError(t, err)

	got := enc.Categories()
	got[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, enc.Categories())
}
