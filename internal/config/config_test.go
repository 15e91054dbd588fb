package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mentions.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Cache)
	assert.Equal(t, mention.DefaultCacheSize, cfg.CacheSize)
	assert.Empty(t, cfg.Directory)
	assert.Empty(t, cfg.LinkPrefix)

	mc, err := cfg.MentionConfig()
	require.NoError(t, err)
	assert.Equal(t, mention.DefaultSymbols(), mc.Symbols)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
cache = false
directory = "ids.txt"
link_prefix = "/u/"

[[symbols]]
symbol = "@"
kinds = ["agent-mention"]

[[symbols]]
symbol = "＠"
kinds = ["author-mention"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Cache)
	assert.Equal(t, mention.DefaultCacheSize, cfg.CacheSize, "unset keys keep defaults")
	assert.Equal(t, "ids.txt", cfg.Directory)
	assert.Equal(t, "/u/", cfg.LinkPrefix)

	symbols, err := cfg.SymbolTable()
	require.NoError(t, err)
	assert.Equal(t, mention.Symbols{
		'@':      {mention.KindAgent},
		'＠': {mention.KindAuthor},
	}, symbols)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "cache = true\ncache_size = 5\n")

	t.Setenv(EnvCache, "false")
	t.Setenv(EnvCacheSize, "42")
	t.Setenv(EnvDirectory, "/tmp/ids.txt")
	t.Setenv(EnvLinkPrefix, "https://example.com/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Cache)
	assert.Equal(t, 42, cfg.CacheSize)
	assert.Equal(t, "/tmp/ids.txt", cfg.Directory)
	assert.Equal(t, "https://example.com/", cfg.LinkPrefix)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown key", "caches = true\n", ErrInvalidConfig},
		{"negative cache size", "cache_size = -1\n", ErrInvalidConfig},
		{"long symbol", "[[symbols]]\nsymbol = \"@@\"\nkinds = [\"a\"]\n", ErrInvalidConfig},
		{"duplicate symbol", "[[symbols]]\nsymbol = \"@\"\nkinds = [\"a\"]\n[[symbols]]\nsymbol = \"@\"\nkinds = [\"b\"]\n", ErrInvalidConfig},
		{"colon symbol", "[[symbols]]\nsymbol = \":\"\nkinds = [\"a\"]\n", mention.ErrInvalidSymbol},
		{"no kinds", "[[symbols]]\nsymbol = \"@\"\nkinds = []\n", mention.ErrNoKinds},
		{"empty symbol list", "symbols = []\n", mention.ErrNoSymbols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "error %v is not %v", err, tt.want)
		})
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv(EnvCacheSize, "lots")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
