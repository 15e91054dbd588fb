package markdown

import (
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Priorities of the transformer and renderer in goldmark's prioritized lists.
const (
	TransformerPriority = 500
	RendererPriority    = 500
)

// Option configures the extension.
type Option func(*Extension)

// WithTransformer sets the transformer used to scan text.
func WithTransformer(t *mention.Transformer) Option {
	return func(e *Extension) {
		e.transformer = t
	}
}

// WithLinkFunc renders mentions as anchors pointing at fn(identifier).
func WithLinkFunc(fn LinkFunc) Option {
	return func(e *Extension) {
		e.link = fn
	}
}

// WithDirectory renders identifiers unknown to l as plain text.
func WithDirectory(l Lookup) Option {
	return func(e *Extension) {
		e.lookup = l
	}
}

// Extension is a goldmark.Extender for mention tokens.
type Extension struct {
	transformer *mention.Transformer
	link        LinkFunc
	lookup      Lookup
}

// New creates the extension. Without WithTransformer the default symbols
// are used.
func New(opts ...Option) *Extension {
	e := &Extension{}
	for _, opt := range opts {
		opt(e)
	}
	if e.transformer == nil {
		// The default configuration always validates.
		t, err := mention.NewTransformer(mention.DefaultConfig())
		if err != nil {
			panic(err)
		}
		e.transformer = t
	}
	return e
}

// Transformer returns the transformer used by the extension.
func (e *Extension) Transformer() *mention.Transformer {
	return e.transformer
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&astTransformer{t: e.transformer}, TransformerPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&htmlRenderer{link: e.link, lookup: e.lookup}, RendererPriority),
		),
	)
}
