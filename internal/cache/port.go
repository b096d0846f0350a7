package cache

import (
	"github.com/rohmanhakim/richtext-icons/pkg/hashutil"
)

// Cache is the port used for sanitized-icon lookups. Callers own the
// instance and pass it in explicitly; no package keeps a hidden
// process-wide cache.
//
// Values are plain strings. An empty value is a valid entry and is used
// to remember that an icon does not exist.
type Cache interface {
	// Get returns the cached value and true if key is present.
	Get(key string) (string, bool)

	// Put stores value under key, overwriting any previous entry.
	Put(key string, value string)
}

// Pruner is implemented by caches that can forget entries a run no longer
// reaches. A caller that prunes must own the cache: keys it does not know
// about are evicted too.
type Pruner interface {
	// Retain keeps the entries for which keep returns true and reports how
	// many were evicted.
	Retain(keep func(key string) bool) int
}

// IconKey builds a key from an icon name and the BLAKE3 digest of its
// source bytes, so an edited file never hits a stale entry.
func IconKey(name string, content []byte) string {
	digest, err := hashutil.HashBytes(content, hashutil.HashAlgoBLAKE3)
	if err != nil {
		return name
	}
	return name + "@" + digest
}
