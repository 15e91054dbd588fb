package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Fprint writes an indented outline of the tree under root to w, one node per
// line. Text and Mention nodes include their source text.
func Fprint(w io.Writer, root ast.Node, source []byte) error {
	depth := 0
	return ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			depth--
			return ast.WalkContinue, nil
		}

		var err error
		indent := strings.Repeat("  ", depth)
		switch v := n.(type) {
		case *Mention:
			_, err = fmt.Fprintf(w, "%s%s %s %q\n", indent, v.Kind(), v.MentionKind, v.Identifier)
		case *ast.Text:
			_, err = fmt.Fprintf(w, "%s%s %q\n", indent, v.Kind(), v.Segment.Value(source))
		default:
			_, err = fmt.Fprintf(w, "%s%s\n", indent, n.Kind())
		}
		depth++
		return ast.WalkContinue, err
	})
}
