package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/failure"
	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
)

/*
Responsibilities
- Persist generated stylesheets and preview pages
- Compute short content hashes for cache busting

Output Characteristics
- <outputDir>/<name>.css and <outputDir>/<name>.html
- Idempotent writes: identical content leaves the file untouched
- Atomic replacement, so a reader never sees a partial stylesheet
*/

type Sink interface {
	WriteStylesheet(
		outputDir string,
		name string,
		css []byte,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)

	WritePreview(
		outputDir string,
		name string,
		html []byte,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

var _ Sink = (*LocalSink)(nil)

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

func (s *LocalSink) WriteStylesheet(
	outputDir string,
	name string,
	css []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	return s.record(metadata.ArtifactStylesheet, "LocalSink.WriteStylesheet", outputDir, name+".css", css, hashAlgo)
}

func (s *LocalSink) WritePreview(
	outputDir string,
	name string,
	html []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	return s.record(metadata.ArtifactPreview, "LocalSink.WritePreview", outputDir, name+".html", html, hashAlgo)
}

func (s *LocalSink) record(
	kind metadata.ArtifactKind,
	action string,
	outputDir string,
	fileName string,
	content []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, fileName, content, hashAlgo)
	if err != nil {
		var storageError *StorageError
		errors.As(err, &storageError)
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			action,
			mapStorageErrorToMetadataCause(storageError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrWritePath, storageError.Path),
			},
		)
		return WriteResult{}, storageError
	}
	s.metadataSink.RecordArtifact(
		kind,
		writeResult.Path(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, writeResult.Path()),
			metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
		},
	)
	return writeResult, nil
}

func write(
	outputDir string,
	fileName string,
	content []byte,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	if !validFileName(fileName) {
		return WriteResult{}, &StorageError{
			Message:   "file name must be a single path element: " + fileName,
			Retryable: false,
			Cause:     ErrCauseInvalidName,
			Path:      fileName,
		}
	}

	contentHash, err := hashutil.Fingerprint(content, hashAlgo, shortHashLength)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
			Path:      "",
		}
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		var fileErr *fileutil.FileError
		retryable := false
		if errors.As(err, &fileErr) && fileErr.Cause == fileutil.ErrCausePathError {
			// Could be disk full or a permission problem
			retryable = true
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	fullPath := filepath.Join(outputDir, fileName)

	if existing, readErr := os.ReadFile(fullPath); readErr == nil && bytes.Equal(existing, content) {
		return NewWriteResult(fullPath, contentHash, true), nil
	}

	if err := fileutil.WriteFileAtomic(fullPath, content, 0644); err != nil {
		cause := ErrCauseWriteFailure
		var fileErr *fileutil.FileError
		if errors.As(err, &fileErr) && fileErr.Cause == fileutil.ErrCauseDiskFull {
			cause = ErrCauseDiskFull
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: err.Severity() == failure.SeverityRecoverable,
			Cause:     cause,
			Path:      fullPath,
		}
	}

	return NewWriteResult(fullPath, contentHash, false), nil
}

func validFileName(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." || base == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
