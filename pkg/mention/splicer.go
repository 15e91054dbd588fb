package mention

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMatchOrder is returned by Splice for matches that overlap, run backwards,
// or fall outside the text.
var ErrMatchOrder = errors.New("mention: matches out of order")

// FragmentType identifies the variant of a fragment.
type FragmentType int

const (
	FragmentText FragmentType = iota
	FragmentMention
)

// String returns the string representation of the fragment type.
func (t FragmentType) String() string {
	switch t {
	case FragmentText:
		return "text"
	case FragmentMention:
		return "mention"
	default:
		return "unknown"
	}
}

// Fragment is one piece of spliced output.
type Fragment struct {
	Type FragmentType

	// Text is the literal slice for text fragments and the raw token for mentions.
	Text string

	// Mention fields, zero for text fragments.
	Kind       Kind
	Symbol     rune
	Identifier string

	// Start and End positions in the original input
	Start int
	End   int
}

// IsMention returns true for mention fragments.
func (f Fragment) IsMention() bool {
	return f.Type == FragmentMention
}

// Splice cuts text around matches. Gaps become text fragments (empty gaps are
// omitted) and matches become mention fragments carrying the symbol's primary
// kind. Empty matches mean "no change" and yield nil.
func (g *Grammar) Splice(text string, matches []Match) ([]Fragment, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	frags := make([]Fragment, 0, 2*len(matches)+1)
	prev := 0

	for i, m := range matches {
		if m.Start < prev || m.End <= m.Start || m.End > len(text) {
			return nil, fmt.Errorf("%w: match %d [%d,%d) after offset %d", ErrMatchOrder, i, m.Start, m.End, prev)
		}

		if m.Start > prev {
			frags = append(frags, textFragment(text, prev, m.Start))
		}

		frags = append(frags, Fragment{
			Type:       FragmentMention,
			Text:       text[m.Start:m.End],
			Kind:       g.Kind(m.Symbol),
			Symbol:     m.Symbol,
			Identifier: m.Identifier,
			Start:      m.Start,
			End:        m.End,
		})
		prev = m.End
	}

	if prev < len(text) {
		frags = append(frags, textFragment(text, prev, len(text)))
	}

	return frags, nil
}

func textFragment(text string, start, end int) Fragment {
	return Fragment{Type: FragmentText, Text: text[start:end], Start: start, End: end}
}

// Join concatenates fragments back into the source text.
func Join(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}
