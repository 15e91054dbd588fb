// Package mention recognizes SYMBOL:identifier: tokens in plain text and splices
// them into text and mention fragments.
package mention

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxIdentifierLen is the longest identifier a token may carry.
const MaxIdentifierLen = 39

// Kind is the semantic label attached to a mention.
type Kind string

const (
	KindAuthor Kind = "author-mention"
	KindAgent  Kind = "agent-mention"
	KindInbox  Kind = "inbox-mention"
)

// Symbols maps a symbol character to one or more kinds.
// The first kind of each entry is the one attached to matches.
type Symbols map[rune][]Kind

// DefaultSymbols returns the @ (author, agent) and # (inbox) mapping.
func DefaultSymbols() Symbols {
	return Symbols{
		'@': {KindAuthor, KindAgent},
		'#': {KindInbox},
	}
}

// Configuration errors returned by NewGrammar.
var (
	ErrNoSymbols     = errors.New("mention: no symbols configured")
	ErrInvalidSymbol = errors.New("mention: invalid symbol")
	ErrNoKinds       = errors.New("mention: symbol has no kinds")
	ErrEmptyKind     = errors.New("mention: empty kind label")
)

// Grammar recognizes SYMBOL:identifier: tokens for a fixed symbol set.
// A Grammar is immutable after construction and safe for concurrent use.
type Grammar struct {
	ascii   [utf8.RuneSelf][]Kind
	wide    map[rune][]Kind
	symbols []rune
}

// NewGrammar validates the mapping and builds the lookup table.
func NewGrammar(symbols Symbols) (*Grammar, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	g := &Grammar{wide: make(map[rune][]Kind)}
	for sym, kinds := range symbols {
		if !validSymbol(sym) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, sym)
		}
		if len(kinds) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoKinds, sym)
		}
		for _, k := range kinds {
			if strings.TrimSpace(string(k)) == "" {
				return nil, fmt.Errorf("%w: symbol %q", ErrEmptyKind, sym)
			}
		}

		copied := append([]Kind(nil), kinds...)
		if sym < utf8.RuneSelf {
			g.ascii[sym] = copied
		} else {
			g.wide[sym] = copied
		}
		g.symbols = append(g.symbols, sym)
	}
	sort.Slice(g.symbols, func(i, j int) bool { return g.symbols[i] < g.symbols[j] })

	return g, nil
}

// validSymbol rejects characters that would make the grammar ambiguous.
func validSymbol(r rune) bool {
	if !utf8.ValidRune(r) || r == utf8.RuneError || r == ':' || IsIdentChar(r) {
		return false
	}
	return !unicode.IsSpace(r) && !unicode.IsControl(r)
}

// kinds returns the configured kinds for r, or nil.
func (g *Grammar) kinds(r rune) []Kind {
	if r < utf8.RuneSelf {
		if r < 0 {
			return nil
		}
		return g.ascii[r]
	}
	return g.wide[r]
}

// Kind returns the primary kind for symbol, or "" when it is not configured.
func (g *Grammar) Kind(symbol rune) Kind {
	if ks := g.kinds(symbol); len(ks) > 0 {
		return ks[0]
	}
	return ""
}

// Kinds returns every kind configured for symbol.
func (g *Grammar) Kinds(symbol rune) []Kind {
	return append([]Kind(nil), g.kinds(symbol)...)
}

// Symbols returns the configured symbols in ascending order.
func (g *Grammar) Symbols() []rune {
	return append([]rune(nil), g.symbols...)
}

// IsIdentStart reports whether r may open an identifier.
func IsIdentStart(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// IsIdentChar reports whether r may appear after the first identifier character.
func IsIdentChar(r rune) bool {
	return IsIdentStart(r) || r == '-' || r == '_' || r == '='
}

// MayContain is a cheap pre-check: does text hold a configured symbol
// immediately followed by a colon. Scan is correct without it.
func (g *Grammar) MayContain(text string) bool {
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], ':')
		if j < 0 {
			return false
		}
		colon := i + j
		if colon > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:colon])
			if g.kinds(r) != nil {
				return true
			}
		}
		i = colon + 1
	}
	return false
}
