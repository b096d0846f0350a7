package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/internal/storage"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSS = "i.icon {\n    width: 1em;\n}\n"

func TestLocalSink_WriteStylesheet_Success(t *testing.T) {
	tests := []struct {
		name     string
		hashAlgo hashutil.HashAlgo
	}{
		{"sha256", hashutil.HashAlgoSHA256},
		{"blake3", hashutil.HashAlgoBLAKE3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputDir := filepath.Join(t.TempDir(), "nested", "css")
			mockSink := &metadataSinkMock{}
			sink := storage.NewLocalSink(mockSink)

			result, err := sink.WriteStylesheet(outputDir, "icons", []byte(sampleCSS), tt.hashAlgo)

			require.Nil(t, err)
			assert.Equal(t, filepath.Join(outputDir, "icons.css"), result.Path())
			assert.False(t, result.Unchanged())

			expectedHash, hashErr := hashutil.Fingerprint([]byte(sampleCSS), tt.hashAlgo, 12)
			require.NoError(t, hashErr)
			assert.Equal(t, expectedHash, result.ContentHash())
			assert.Len(t, result.ContentHash(), 12)

			written, readErr := os.ReadFile(result.Path())
			require.NoError(t, readErr)
			assert.Equal(t, sampleCSS, string(written))

			assert.True(t, mockSink.recordArtifactCalled)
			assert.False(t, mockSink.recordErrorCalled)
			assert.Equal(t, metadata.ArtifactStylesheet, mockSink.recordArtifactKind)
			assert.Equal(t, result.Path(), mockSink.recordArtifactPath)
			assert.Equal(t, result.ContentHash(), attrValue(mockSink.recordArtifactAttrs, metadata.AttrHash))
		})
	}
}

func TestLocalSink_WriteStylesheet_IdempotentForIdenticalContent(t *testing.T) {
	outputDir := t.TempDir()
	sink := storage.NewLocalSink(&metadataSinkMock{})

	first, err := sink.WriteStylesheet(outputDir, "icons", []byte(sampleCSS), hashutil.HashAlgoSHA256)
	require.Nil(t, err)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(first.Path(), past, past))

	second, err := sink.WriteStylesheet(outputDir, "icons", []byte(sampleCSS), hashutil.HashAlgoSHA256)
	require.Nil(t, err)

	assert.True(t, second.Unchanged())
	assert.Equal(t, first.Path(), second.Path())
	assert.Equal(t, first.ContentHash(), second.ContentHash())

	info, statErr := os.Stat(second.Path())
	require.NoError(t, statErr)
	assert.True(t, info.ModTime().Equal(past), "file must not be rewritten")
}

func TestLocalSink_WriteStylesheet_OverwritesChangedContent(t *testing.T) {
	outputDir := t.TempDir()
	sink := storage.NewLocalSink(&metadataSinkMock{})

	first, err := sink.WriteStylesheet(outputDir, "icons", []byte(sampleCSS), hashutil.HashAlgoBLAKE3)
	require.Nil(t, err)
	second, err := sink.WriteStylesheet(outputDir, "icons", []byte(sampleCSS+"i.icon.x {}\n"), hashutil.HashAlgoBLAKE3)
	require.Nil(t, err)

	assert.False(t, second.Unchanged())
	assert.NotEqual(t, first.ContentHash(), second.ContentHash())

	written, readErr := os.ReadFile(second.Path())
	require.NoError(t, readErr)
	assert.Equal(t, sampleCSS+"i.icon.x {}\n", string(written))

	entries, readDirErr := os.ReadDir(outputDir)
	require.NoError(t, readDirErr)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLocalSink_WritePreview(t *testing.T) {
	outputDir := t.TempDir()
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink)

	result, err := sink.WritePreview(outputDir, "preview", []byte("<html></html>"), hashutil.HashAlgoSHA256)

	require.Nil(t, err)
	assert.Equal(t, filepath.Join(outputDir, "preview.html"), result.Path())
	assert.Equal(t, metadata.ArtifactPreview, mockSink.recordArtifactKind)
}

func TestLocalSink_InvalidName(t *testing.T) {
	for _, name := range []string{"", "..", "../escape", "a/b", `a\b`} {
		t.Run(name, func(t *testing.T) {
			mockSink := &metadataSinkMock{}
			sink := storage.NewLocalSink(mockSink)

			_, err := sink.WriteStylesheet(t.TempDir(), name, []byte(sampleCSS), hashutil.HashAlgoSHA256)

			require.NotNil(t, err)
			var storageErr *storage.StorageError
			require.ErrorAs(t, err, &storageErr)
			assert.Equal(t, storage.ErrCauseInvalidName, storageErr.Cause)
			assert.Equal(t, failure.SeverityFatal, err.Severity())
			assert.True(t, mockSink.recordErrorCalled)
			assert.Equal(t, metadata.CausePolicyDisallow, mockSink.recordErrorCause)
			assert.False(t, mockSink.recordArtifactCalled)
		})
	}
}

func TestLocalSink_UnsupportedHashAlgo(t *testing.T) {
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink)

	_, err := sink.WriteStylesheet(t.TempDir(), "icons", []byte(sampleCSS), hashutil.HashAlgo("md5"))

	require.NotNil(t, err)
	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, storage.ErrCauseHashComputationFailed, storageErr.Cause)
	assert.Equal(t, metadata.CauseInvariantViolation, mockSink.recordErrorCause)
}

func TestLocalSink_OutputDirIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	mockSink := &metadataSinkMock{}
	sink := storage.NewLocalSink(mockSink)

	_, err := sink.WriteStylesheet(filepath.Join(blocker, "css"), "icons", []byte(sampleCSS), hashutil.HashAlgoSHA256)

	require.NotNil(t, err)
	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, storage.ErrCausePathError, storageErr.Cause)
	assert.Equal(t, filepath.Join(blocker, "css"), storageErr.Path)
	assert.Equal(t, metadata.CauseStorageFailure, mockSink.recordErrorCause)
	assert.Equal(t, "LocalSink.WriteStylesheet", mockSink.recordErrorAction)
	assert.Equal(t, storageErr.Path, attrValue(mockSink.recordErrorAttrs, metadata.AttrWritePath))
}
