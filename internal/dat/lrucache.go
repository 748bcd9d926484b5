package dat

import (
	lru "github.com/hashicorp/golang-lru"
)

// defaultHotCacheSize bounds the FindExact memo so repeated lookups of the
// same short substrings (QuerySegment's sliding sub-word scan, POS tagging
// of common words) don't re-walk the double array every time, without
// letting the cache grow unboundedly across a long-running process.
const defaultHotCacheSize = 4096

type exactMiss struct{}

// EnableHotCache attaches a bounded LRU memo over FindExact to t. It is
// optional: Open and NewInMemory return a Trie with no cache, and callers
// that expect heavy repeated-lookup traffic (QuerySegment, tagging) opt in
// explicitly. Calling it twice replaces the existing cache.
func (t *Trie) EnableHotCache(size int) error {
	if size <= 0 {
		size = defaultHotCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return err
	}
	t.hotCache = c
	return nil
}

// FindExactCached behaves exactly like FindExact but consults/populates the
// hot cache enabled via EnableHotCache. With no cache enabled it degrades
// to a plain FindExact call.
func (t *Trie) FindExactCached(key []byte) (DatMemElem, bool) {
	if t.hotCache == nil {
		return t.FindExact(key)
	}
	k := string(key)
	if v, ok := t.hotCache.Get(k); ok {
		if _, miss := v.(exactMiss); miss {
			return DatMemElem{}, false
		}
		return v.(DatMemElem), true
	}
	elem, ok := t.FindExact(key)
	if ok {
		t.hotCache.Add(k, elem)
	} else {
		t.hotCache.Add(k, exactMiss{})
	}
	return elem, ok
}
