package scheduler

import (
	"github.com/rohmanhakim/richtext-icons/internal/catalog"
	"github.com/rohmanhakim/richtext-icons/internal/storage"
)

// Execution is the outcome of one run.
type Execution struct {
	// Content is the generated file, written or not.
	Content []byte
	// Catalog holds the icons and rejections the content was built from.
	// It is empty for an inline-svg stylesheet.
	Catalog catalog.LoadResult
	// WriteResult is nil on a dry run.
	WriteResult *storage.WriteResult
}
