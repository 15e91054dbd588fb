// Package markdown plugs mention tokens into goldmark: an AST transformer
// splices Mention nodes into text, and a renderer writes them as HTML.
package markdown

import (
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// KindMention is the NodeKind of Mention nodes.
var KindMention = ast.NewNodeKind("Mention")

// Mention is an inline node for one SYMBOL:identifier: token.
type Mention struct {
	ast.BaseInline

	MentionKind mention.Kind
	Symbol      rune
	Identifier  string

	// Segment covers the raw token in the source.
	Segment text.Segment
}

// NewMention returns a Mention node for a mention fragment located at seg.
func NewMention(f mention.Fragment, seg text.Segment) *Mention {
	return &Mention{
		MentionKind: f.Kind,
		Symbol:      f.Symbol,
		Identifier:  f.Identifier,
		Segment:     seg,
	}
}

// Kind implements ast.Node.Kind.
func (n *Mention) Kind() ast.NodeKind {
	return KindMention
}

// Text returns the raw token.
func (n *Mention) Text(source []byte) []byte {
	return n.Segment.Value(source)
}

// Dump implements ast.Node.Dump.
func (n *Mention) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Kind":       string(n.MentionKind),
		"Identifier": n.Identifier,
		"Raw":        string(n.Segment.Value(source)),
	}, nil)
}
