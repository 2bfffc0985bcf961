package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Len(t, c.Categories(), 10)
	assert.True(t, c.Has("Software & IT"))
	assert.True(t, c.Has("Sales & Marketing"))
	assert.False(t, c.Has("software & it"))
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- category: Legal\n  jobs: [Paralegal]\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Has("Legal"))
	assert.False(t, c.Has("Software & IT"))
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("- category: A\n- category: A\n"))
	assert.Error(t, err)
}
