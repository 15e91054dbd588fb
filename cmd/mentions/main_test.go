package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerem-kaynak/mention-tokenizer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_HTML(t *testing.T) {
	r, err := newRunner(config.Default(), "html")
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	require.NoError(t, r.run(&buf, "hello @:user1: world"))
	assert.Equal(t, "<p>hello <Mention id=\"user1\" :contentTypeName=\"author-mention\"></Mention> world</p>\n", buf.String())
}

func TestRunner_Fragments(t *testing.T) {
	r, err := newRunner(config.Default(), "fragments")
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	require.NoError(t, r.run(&buf, "@:us:r1:"))

	var got []fragmentJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []fragmentJSON{
		{Type: "mention", Text: "@:us:", Kind: "author-mention", Identifier: "us", Start: 0, End: 5},
		{Type: "text", Text: "r1:", Start: 5, End: 8},
	}, got)

	buf.Reset()
	require.NoError(t, r.run(&buf, "no tokens here"))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRunner_DirectoryAndLinks(t *testing.T) {
	ids := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(ids, []byte("bob\n"), 0o644))

	cfg := config.Default()
	cfg.Directory = ids
	cfg.LinkPrefix = "/u/"

	r, err := newRunner(cfg, "html")
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	require.NoError(t, r.run(&buf, "@:Bob: @:eve:"))
	assert.Equal(t, "<p><a href=\"/u/Bob\" class=\"mention\" data-kind=\"author-mention\">@Bob</a> @:eve:</p>\n", buf.String())
}

func TestRunner_AST(t *testing.T) {
	r, err := newRunner(config.Default(), "ast")
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	require.NoError(t, r.run(&buf, "hi @:bob:"))
	assert.Equal(t, "Document\n  Paragraph\n    Text \"hi \"\n    Mention author-mention \"bob\"\n", buf.String())
}

func TestRunner_UnknownFormat(t *testing.T) {
	_, err := newRunner(config.Default(), "yaml")
	assert.Error(t, err)
}
