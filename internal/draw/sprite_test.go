package draw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSprite(t *testing.T) {
	t.Parallel()

	s, err := ParseSprite("##\n #\n")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Width())
	assert.Equal(t, 2, s.Height())

	// Width is the longest line after trailing-space trim.
	s, err = ParseSprite("#    \n####\n")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Width())
}

func TestParseSprite_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParseSprite("   \n   \n")
	assert.Error(t, err)
}

func TestDirResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cone.txt"), []byte("##\n##\n"), 0o644))

	resolve := DirResolver(dir)
	s, err := resolve("cone.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Width())

	_, err = resolve("missing.txt")
	assert.Error(t, err)
}

func TestDirResolver_RejectsEscapes(t *testing.T) {
	t.Parallel()

	resolve := DirResolver(t.TempDir())
	_, err := resolve("../secrets.txt")
	assert.Error(t, err)
	_, err = resolve("/etc/passwd")
	assert.Error(t, err)
	_, err = resolve("a/../../b.txt")
	assert.Error(t, err)
}
