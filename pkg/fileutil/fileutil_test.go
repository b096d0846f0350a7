package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		ext      string
		expected bool
	}{
		{name: "lower case match", path: "arrow.svg", ext: "svg", expected: true},
		{name: "upper case file", path: "ARROW.SVG", ext: "svg", expected: true},
		{name: "dotted ext argument", path: "arrow.svg", ext: ".svg", expected: true},
		{name: "different extension", path: "arrow.png", ext: "svg", expected: false},
		{name: "no extension", path: "README", ext: "svg", expected: false},
		{name: "svg in directory name only", path: "icons.svg/readme", ext: "svg", expected: false},
		{name: "double extension", path: "arrow.svg.bak", ext: "svg", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutil.HasExtension(tt.path, tt.ext))
		})
	}
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "arrow-up", fileutil.StripExtension("/icons/arrow-up.svg"))
	assert.Equal(t, "archive.tar", fileutil.StripExtension("archive.tar.gz"))
	assert.Equal(t, "README", fileutil.StripExtension("README"))
}

func TestEnsureDir(t *testing.T) {
	tempDir := t.TempDir()

	err := fileutil.EnsureDir(tempDir, "css", "icons")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(tempDir, "css", "icons"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	// existing directory is not an error
	assert.Nil(t, fileutil.EnsureDir(tempDir, "css", "icons"))
}

func TestEnsureDir_PathIsFile(t *testing.T) {
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := fileutil.EnsureDir(blocker, "sub")
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "icons.css")

	require.NoError(t, fileutil.WriteFileAtomic(target, []byte("a"), 0644))
	require.NoError(t, fileutil.WriteFileAtomic(target, []byte("b"), 0644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "icons.css")

	err := fileutil.WriteFileAtomic(target, []byte("a"), 0644)
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, fileutil.ErrCauseWriteFailure, fileErr.Cause)
	assert.Equal(t, target, fileErr.Path)
	assert.False(t, fileErr.Retryable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
