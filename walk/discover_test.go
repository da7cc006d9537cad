package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func exportTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "2004-05-18 [Tuesday].htm"))
	touch(t, filepath.Join(root, "2004-05-19 [Wednesday].HTML"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden.htm"))
	touch(t, filepath.Join(root, "nested", "2003-11-02 [Sunday].htm"))
	touch(t, filepath.Join(root, ".trash", "2001-01-01 [Monday].htm"))
	return root
}

func TestDiscoverFlat(t *testing.T) {
	root := exportTree(t)

	files, err := Discover(root, false)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files[0], "2004-05-18")
	assert.Contains(t, files[1], "2004-05-19")
}

func TestDiscoverRecursive(t *testing.T) {
	root := exportTree(t)

	files, err := Discover(root, true)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Contains(t, files[2], filepath.Join("nested", "2003-11-02 [Sunday].htm"))
	// The hidden directory's contents never appear.
	for _, f := range files {
		assert.NotContains(t, f, ".trash")
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "log.htm")
	touch(t, file)

	files, err := Discover(file, false)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestDiscoverRejectsNonTranscriptFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notes.txt")
	touch(t, file)

	_, err := Discover(file, false)
	assert.ErrorContains(t, err, "must be an HTML transcript")
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "gone"), false)
	assert.Error(t, err)
}

func TestDiscoverSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sub", "log.htm"))
	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := Discover(root, true)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], "log.htm")
}

func TestIsTranscript(t *testing.T) {
	assert.True(t, IsTranscript("a.htm"))
	assert.True(t, IsTranscript("a.HTML"))
	assert.False(t, IsTranscript("a.txt"))
	assert.False(t, IsTranscript("html"))
}

func TestQueueDedup(t *testing.T) {
	q := NewQueue()
	q.Add("k1", "/a")
	q.Add("k1", "/a-again")
	q.Add("k2", "/b")

	assert.Equal(t, 2, q.Visited())
	require.True(t, q.HasNext())
	assert.Equal(t, "/a", q.Next())
	assert.Equal(t, "/b", q.Next())
	assert.False(t, q.HasNext())
}
