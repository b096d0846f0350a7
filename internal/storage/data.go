package storage

// Persistence

// shortHashLength is the number of hex characters kept for cache-busting
// version strings.
const shortHashLength = 12

type WriteResult struct {
	path        string
	contentHash string // first shortHashLength hex characters
	unchanged   bool   // the file already held identical bytes
}

func NewWriteResult(
	path string,
	contentHash string,
	unchanged bool,
) WriteResult {
	return WriteResult{
		path:        path,
		contentHash: contentHash,
		unchanged:   unchanged,
	}
}

func (w *WriteResult) Path() string {
	return w.path
}

// ContentHash is suitable as a ?ver= query value for the written file.
func (w *WriteResult) ContentHash() string {
	return w.contentHash
}

func (w *WriteResult) Unchanged() bool {
	return w.unchanged
}
