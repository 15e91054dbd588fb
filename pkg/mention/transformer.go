package mention

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of texts whose scan results are kept.
// Entries are small; repeated texts are common in rendered threads and feeds.
const DefaultCacheSize = 10_000

// Config configures a Transformer.
type Config struct {
	Symbols   Symbols
	Cache     bool
	CacheSize int // 0 means DefaultCacheSize
}

// DefaultConfig returns the default symbols with caching enabled.
func DefaultConfig() Config {
	return Config{
		Symbols:   DefaultSymbols(),
		Cache:     true,
		CacheSize: DefaultCacheSize,
	}
}

// Transformer turns the string value of a text-bearing node into fragments.
type Transformer struct {
	grammar *Grammar
	cache   *lru.Cache[string, []Match]
}

// NewTransformer creates a transformer from cfg.
func NewTransformer(cfg Config) (*Transformer, error) {
	g, err := NewGrammar(cfg.Symbols)
	if err != nil {
		return nil, err
	}

	t := &Transformer{grammar: g}
	if cfg.Cache {
		size := cfg.CacheSize
		if size <= 0 {
			size = DefaultCacheSize
		}
		t.cache, err = lru.New[string, []Match](size)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Grammar returns the grammar used for scanning.
func (t *Transformer) Grammar() *Grammar {
	return t.grammar
}

// Transform returns the replacement fragments for text and true, or nil and
// false when text holds no token and the node must be left alone.
func (t *Transformer) Transform(text string) ([]Fragment, bool) {
	if !t.grammar.MayContain(text) {
		return nil, false
	}

	matches := t.scan(text)
	if len(matches) == 0 {
		return nil, false
	}

	// Scan output is always ordered, so Splice cannot fail here.
	frags, err := t.grammar.Splice(text, matches)
	if err != nil {
		return nil, false
	}
	return frags, true
}

// scan consults the cache before scanning.
func (t *Transformer) scan(text string) []Match {
	if t.cache == nil {
		return t.grammar.Scan(text)
	}

	// LRU is thread-safe
	if matches, ok := t.cache.Get(text); ok {
		return matches
	}

	matches := t.grammar.Scan(text)
	t.cache.Add(text, matches)
	return matches
}

// CacheSize returns the number of cached entries (0 if cache is disabled).
func (t *Transformer) CacheSize() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}

// ClearCache clears the scan cache.
func (t *Transformer) ClearCache() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

// CacheEnabled returns true if caching is enabled.
func (t *Transformer) CacheEnabled() bool {
	return t.cache != nil
}
