package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// LinkFunc derives a link target from an identifier.
type LinkFunc func(identifier string) string

// DefaultLinkFunc links to /identifier.
func DefaultLinkFunc(identifier string) string {
	return "/" + identifier
}

// PrefixLinkFunc links to prefix+identifier.
func PrefixLinkFunc(prefix string) LinkFunc {
	return func(identifier string) string {
		return prefix + identifier
	}
}

// Lookup reports whether an identifier is known. *directory.Directory
// implements it.
type Lookup interface {
	Contains(identifier string) bool
}

// htmlRenderer writes Mention nodes.
//
// Without a LinkFunc a mention becomes a component tag:
//
//	<Mention id="ID" :contentTypeName="KIND"></Mention>
//
// With one it becomes an anchor, except inside link text where anchors
// cannot nest. Identifiers unknown to the Lookup are written
// back as their raw token.
type htmlRenderer struct {
	link   LinkFunc
	lookup Lookup
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *htmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMention, r.renderMention)
}

func (r *htmlRenderer) renderMention(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Mention)

	if r.lookup != nil && !r.lookup.Contains(n.Identifier) {
		_, _ = w.Write(util.EscapeHTML(n.Segment.Value(source)))
		return ast.WalkContinue, nil
	}

	id := util.EscapeHTML([]byte(n.Identifier))
	kind := util.EscapeHTML([]byte(n.MentionKind))

	if r.link == nil || insideLink(n) {
		_, _ = w.WriteString(`<Mention id="`)
		_, _ = w.Write(id)
		_, _ = w.WriteString(`" :contentTypeName="`)
		_, _ = w.Write(kind)
		_, _ = w.WriteString(`"></Mention>`)
		return ast.WalkContinue, nil
	}

	href := util.URLEscape([]byte(r.link(n.Identifier)), false)
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(href))
	_, _ = w.WriteString(`" class="mention" data-kind="`)
	_, _ = w.Write(kind)
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML([]byte(string(n.Symbol))))
	_, _ = w.Write(id)
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

func insideLink(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindLink {
			return true
		}
	}
	return false
}
