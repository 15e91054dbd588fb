package mention

import (
	"unicode/utf8"
)

// Match is one recognized token: text[Start:End] is the full SYMBOL:identifier: run.
type Match struct {
	Start      int
	End        int
	Symbol     rune
	Identifier string
}

// Raw returns the matched token as it appears in text.
func (m Match) Raw(text string) string {
	return text[m.Start:m.End]
}

// Scan returns every token in text, leftmost first and non-overlapping.
// Offsets are byte offsets. Text without tokens yields nil.
func (g *Grammar) Scan(text string) []Match {
	var matches []Match

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if g.kinds(r) == nil {
			i += size
			continue
		}

		if end, ok := matchToken(text, i+size); ok {
			matches = append(matches, Match{
				Start:      i,
				End:        end,
				Symbol:     r,
				Identifier: text[i+size+1 : end-1],
			})
			i = end
			continue
		}

		// Not a token here; the symbol stays ordinary text.
		i += size
	}

	return matches
}

// matchToken matches ':' identifier ':' at pos and returns the offset just past
// the closing colon.
func matchToken(text string, pos int) (int, bool) {
	if pos >= len(text) || text[pos] != ':' {
		return 0, false
	}
	pos++

	if pos >= len(text) || !IsIdentStart(rune(text[pos])) {
		return 0, false
	}

	// Greedy: identifier characters never include ':', so the first
	// non-identifier byte must be the closing colon.
	n := 1
	for pos+n < len(text) && n < MaxIdentifierLen && IsIdentChar(rune(text[pos+n])) {
		n++
	}

	closing := pos + n
	if closing >= len(text) || text[closing] != ':' {
		return 0, false
	}
	return closing + 1, true
}
