package machine

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ROMCache memoises decoded ROM images by their source path, so
// launching the same machine target repeatedly (a common pattern when a
// host iterates configuration options against one image) does not
// re-read and re-validate the file each time.
type ROMCache struct {
	cache *lru.Cache[string, []byte]
}

// NewROMCache constructs a ROMCache holding up to capacity images.
func NewROMCache(capacity int) (*ROMCache, error) {
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &ROMCache{cache: c}, nil
}

// Get returns a cached image for path, if present.
func (r *ROMCache) Get(path string) ([]byte, bool) {
	return r.cache.Get(path)
}

// Put stores an image for path, evicting the least-recently-used entry
// if the cache is full.
func (r *ROMCache) Put(path string, data []byte) {
	r.cache.Add(path, data)
}

// Remove drops a cached entry, used when a host knows an underlying
// file has changed on disk.
func (r *ROMCache) Remove(path string) {
	r.cache.Remove(path)
}

// Len reports the number of cached images.
func (r *ROMCache) Len() int {
	return r.cache.Len()
}
