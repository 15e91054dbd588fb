// Package config loads mention settings from TOML with environment overrides.
//
//	cache = true
//	cache_size = 10000
//	directory = "ids.txt"
//	link_prefix = "/users/"
//
//	[[symbols]]
//	symbol = "@"
//	kinds = ["author-mention", "agent-mention"]
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
)

// Environment variables that override file values.
const (
	EnvCache      = "MENTIONS_CACHE"
	EnvCacheSize  = "MENTIONS_CACHE_SIZE"
	EnvDirectory  = "MENTIONS_DIRECTORY"
	EnvLinkPrefix = "MENTIONS_LINK_PREFIX"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the file-level configuration.
type Config struct {
	Cache     bool `toml:"cache"`
	CacheSize int  `toml:"cache_size"`

	// Directory is a text file of known identifiers; empty disables filtering.
	Directory string `toml:"directory"`

	// LinkPrefix switches rendering to anchors at LinkPrefix+identifier.
	LinkPrefix string `toml:"link_prefix"`

	Symbols []SymbolConfig `toml:"symbols"`
}

// SymbolConfig maps one symbol to its kinds.
type SymbolConfig struct {
	Symbol string   `toml:"symbol"`
	Kinds  []string `toml:"kinds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache:     true,
		CacheSize: mention.DefaultCacheSize,
		Symbols: []SymbolConfig{
			{Symbol: "@", Kinds: []string{string(mention.KindAuthor), string(mention.KindAgent)}},
			{Symbol: "#", Kinds: []string{string(mention.KindInbox)}},
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates. An empty path loads only defaults and environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file := &Config{}
		md, err := toml.DecodeFile(path, file)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
		}
		merge(cfg, file, md)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies the keys defined in the file onto cfg.
func merge(cfg, file *Config, md toml.MetaData) {
	if md.IsDefined("cache") {
		cfg.Cache = file.Cache
	}
	if md.IsDefined("cache_size") {
		cfg.CacheSize = file.CacheSize
	}
	if md.IsDefined("directory") {
		cfg.Directory = file.Directory
	}
	if md.IsDefined("link_prefix") {
		cfg.LinkPrefix = file.LinkPrefix
	}
	// File symbols replace the defaults instead of appending.
	if md.IsDefined("symbols") {
		cfg.Symbols = file.Symbols
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCache); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvCache, v, err)
		}
		c.Cache = b
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvCacheSize, v, err)
		}
		c.CacheSize = n
	}
	if v := os.Getenv(EnvDirectory); v != "" {
		c.Directory = v
	}
	if v := os.Getenv(EnvLinkPrefix); v != "" {
		c.LinkPrefix = v
	}
	return nil
}

// Validate checks the configuration, including the symbol table.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size must not be negative, got %d", ErrInvalidConfig, c.CacheSize)
	}
	_, err := c.MentionConfig()
	return err
}

// SymbolTable converts the symbol entries into a mention.Symbols table.
func (c *Config) SymbolTable() (mention.Symbols, error) {
	symbols := make(mention.Symbols, len(c.Symbols))
	for i, sc := range c.Symbols {
		if utf8.RuneCountInString(sc.Symbol) != 1 {
			return nil, fmt.Errorf("%w: symbols[%d]: symbol must be a single character, got %q", ErrInvalidConfig, i, sc.Symbol)
		}
		r, _ := utf8.DecodeRuneInString(sc.Symbol)
		if _, dup := symbols[r]; dup {
			return nil, fmt.Errorf("%w: symbols[%d]: duplicate symbol %q", ErrInvalidConfig, i, sc.Symbol)
		}

		kinds := make([]mention.Kind, 0, len(sc.Kinds))
		for _, k := range sc.Kinds {
			kinds = append(kinds, mention.Kind(k))
		}
		symbols[r] = kinds
	}
	return symbols, nil
}

// MentionConfig builds the transformer configuration.
func (c *Config) MentionConfig() (mention.Config, error) {
	symbols, err := c.SymbolTable()
	if err != nil {
		return mention.Config{}, err
	}

	// Grammar errors are reported at setup time, before any text is scanned.
	if _, err := mention.NewGrammar(symbols); err != nil {
		return mention.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return mention.Config{
		Symbols:   symbols,
		Cache:     c.Cache,
		CacheSize: c.CacheSize,
	}, nil
}
