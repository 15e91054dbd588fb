package markdown

import (
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Rewrite walks root depth first and replaces every text run holding a token
// with text and Mention nodes. It returns the number of Mention nodes inserted.
//
// A run is a sequence of contiguous *ast.Text siblings. goldmark splits text
// at delimiter characters such as '_', so a token may span several nodes.
// Runs without a token are left untouched, as are tokens whose symbol is
// backslash-escaped.
func Rewrite(root ast.Node, source []byte, t *mention.Transformer) int {
	w := &rewriter{t: t, source: source}
	w.walk(root)
	return w.count
}

type rewriter struct {
	t      *mention.Transformer
	source []byte
	count  int
}

func (w *rewriter) walk(parent ast.Node) {
	for c := parent.FirstChild(); c != nil; {
		switch c.Kind() {
		// Image alt text is rendered from Text children only.
		case ast.KindCodeSpan, ast.KindRawHTML, ast.KindAutoLink, ast.KindHTMLBlock,
			ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindImage, KindMention:
			c = c.NextSibling()
			continue
		case ast.KindText:
			c = w.splice(parent, c.(*ast.Text))
			continue
		}

		if c.HasChildren() {
			w.walk(c)
		}
		c = c.NextSibling()
	}
}

// splice rewrites the run starting at first and returns the sibling after it,
// which is where the walk resumes.
func (w *rewriter) splice(parent ast.Node, first *ast.Text) ast.Node {
	if first.IsRaw() {
		return first.NextSibling()
	}

	last := first
	for !last.SoftLineBreak() && !last.HardLineBreak() {
		next, ok := last.NextSibling().(*ast.Text)
		if !ok || next.IsRaw() || next.Segment.Start != last.Segment.Stop {
			break
		}
		last = next
	}
	resume := last.NextSibling()

	start, stop := first.Segment.Start, last.Segment.Stop
	run := string(w.source[start:stop])
	frags, changed := w.t.Transform(run)
	if changed {
		frags, changed = demoteEscaped(run, frags)
	}
	if !changed {
		return resume
	}

	var tail *ast.Text
	for _, f := range frags {
		seg := text.NewSegment(start+f.Start, start+f.End)
		if f.IsMention() {
			parent.InsertBefore(parent, first, NewMention(f, seg))
			tail = nil
			w.count++
			continue
		}
		tail = ast.NewTextSegment(seg)
		parent.InsertBefore(parent, first, tail)
	}

	// The line break belongs after the last fragment.
	if last.SoftLineBreak() || last.HardLineBreak() {
		if tail == nil {
			tail = ast.NewTextSegment(text.NewSegment(stop, stop))
			parent.InsertBefore(parent, first, tail)
		}
		tail.SetSoftLineBreak(last.SoftLineBreak())
		tail.SetHardLineBreak(last.HardLineBreak())
	}

	for c := ast.Node(first); c != nil; {
		next := c.NextSibling()
		parent.RemoveChild(parent, c)
		if c == ast.Node(last) {
			break
		}
		c = next
	}

	return resume
}

// demoteEscaped turns mentions whose symbol follows an unescaped backslash back
// into text, so goldmark still sees the escape pair, and merges adjacent text.
// It reports whether any mention is left.
func demoteEscaped(run string, frags []mention.Fragment) ([]mention.Fragment, bool) {
	out := make([]mention.Fragment, 0, len(frags))
	kept := false

	for _, f := range frags {
		if f.IsMention() && escaped(run, f.Start) {
			f = mention.Fragment{Type: mention.FragmentText, Text: f.Text, Start: f.Start, End: f.End}
		}
		if f.IsMention() {
			kept = true
			out = append(out, f)
			continue
		}
		if n := len(out); n > 0 && !out[n-1].IsMention() {
			out[n-1].Text += f.Text
			out[n-1].End = f.End
			continue
		}
		out = append(out, f)
	}
	return out, kept
}

// escaped reports whether s[i] is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// astTransformer runs Rewrite as a goldmark parser step.
type astTransformer struct {
	t *mention.Transformer
}

// Transform implements parser.ASTTransformer.
func (a *astTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	Rewrite(doc, reader.Source(), a.t)
}
