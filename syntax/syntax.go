// Package syntax parses textual pattern expressions into the pattern
// algebra, so lexer definitions can be written declaratively and fed to
// the flexgen generator.
//
// The expression language:
//
//	'a'            literal character
//	'a'..'z'       inclusive character range
//	"abc"          literal string
//	[abc0-9]       character class
//	[^abc]         negated character class
//	any            any single symbol (wildcard)
//	eof            end of input
//	p q            sequence
//	p | q          ordered choice
//	p* p+ p?       repetition, one-or-more, optional
//	p{2,5}         bounded repetition ({2} exact, {2,} unbounded)
//	( p )          grouping
package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gnoswap-labs/flexer/automata"
)

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Char", Pattern: `'(?:\\.|[^'\\])'`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Class", Pattern: `\[\^?(?:\\.|[^\]\\])+\]`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-z]+`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Punct", Pattern: `[|*+?(){},]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var patternParser = participle.MustBuild[exprNode](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type exprNode struct {
	Alternatives []*seqNode `parser:"@@ ( '|' @@ )*"`
}

type seqNode struct {
	Terms []*termNode `parser:"@@+"`
}

type termNode struct {
	Atom     *atomNode     `parser:"@@"`
	Suffixes []*suffixNode `parser:"@@*"`
}

type suffixNode struct {
	Star   bool        `parser:"  @'*'"`
	Plus   bool        `parser:"| @'+'"`
	Opt    bool        `parser:"| @'?'"`
	Bounds *boundsNode `parser:"| '{' @@ '}'"`
}

type boundsNode struct {
	Min   int  `parser:"@Int"`
	Comma bool `parser:"@','?"`
	Max   *int `parser:"@Int?"`
}

type atomNode struct {
	Lo    *string   `parser:"( @Char"`
	Hi    *string   `parser:"  ( '..' @Char )?"`
	Str   *string   `parser:"| @String"`
	Class *string   `parser:"| @Class"`
	Any   bool      `parser:"| @'any'"`
	Eof   bool      `parser:"| @'eof'"`
	Sub   *exprNode `parser:"| '(' @@ ')' )"`
}

// Parse compiles a pattern expression into the pattern algebra.
func Parse(input string) (automata.Pattern, error) {
	node, err := patternParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("syntax: %w", err)
	}
	p, err := node.pattern()
	if err != nil {
		return nil, err
	}
	if err := automata.Validate(p); err != nil {
		return nil, fmt.Errorf("syntax: %w", err)
	}
	return p, nil
}

func (n *exprNode) pattern() (automata.Pattern, error) {
	alts := make([]automata.Pattern, 0, len(n.Alternatives))
	for _, a := range n.Alternatives {
		p, err := a.pattern()
		if err != nil {
			return nil, err
		}
		alts = append(alts, p)
	}
	return automata.Or(alts...), nil
}

func (n *seqNode) pattern() (automata.Pattern, error) {
	terms := make([]automata.Pattern, 0, len(n.Terms))
	for _, t := range n.Terms {
		p, err := t.pattern()
		if err != nil {
			return nil, err
		}
		terms = append(terms, p)
	}
	return automata.Seq(terms...), nil
}

func (n *termNode) pattern() (automata.Pattern, error) {
	p, err := n.Atom.pattern()
	if err != nil {
		return nil, err
	}
	for _, s := range n.Suffixes {
		switch {
		case s.Star:
			p = automata.Many(p)
		case s.Plus:
			p = automata.Many1(p)
		case s.Opt:
			p = automata.Opt(p)
		case s.Bounds != nil:
			p = automata.Repeat(p, s.Bounds.Min, s.Bounds.max())
		}
	}
	return p, nil
}

// max resolves the repetition upper bound: {m} repeats exactly m times,
// {m,} is unbounded, {m,n} is inclusive.
func (b *boundsNode) max() int {
	switch {
	case b.Max != nil:
		return *b.Max
	case b.Comma:
		return -1
	default:
		return b.Min
	}
}

func (n *atomNode) pattern() (automata.Pattern, error) {
	switch {
	case n.Lo != nil:
		lo, err := unquoteChar(*n.Lo)
		if err != nil {
			return nil, err
		}
		if n.Hi == nil {
			return automata.Char(lo), nil
		}
		hi, err := unquoteChar(*n.Hi)
		if err != nil {
			return nil, err
		}
		return automata.CharRange(lo, hi), nil
	case n.Str != nil:
		s, err := strconv.Unquote(*n.Str)
		if err != nil {
			return nil, fmt.Errorf("syntax: bad string literal %s: %w", *n.Str, err)
		}
		return automata.Str(s), nil
	case n.Class != nil:
		return parseClass(*n.Class)
	case n.Any:
		return automata.Any(), nil
	case n.Eof:
		return automata.Eof(), nil
	case n.Sub != nil:
		return n.Sub.pattern()
	default:
		return nil, fmt.Errorf("syntax: empty atom")
	}
}

func unquoteChar(lit string) (rune, error) {
	body := lit[1 : len(lit)-1]
	r, _, _, err := strconv.UnquoteChar(body, '\'')
	if err != nil {
		return 0, fmt.Errorf("syntax: bad character literal %s: %w", lit, err)
	}
	return r, nil
}

// parseClass converts a [..] token into a character class pattern.
func parseClass(lit string) (automata.Pattern, error) {
	body := lit[1 : len(lit)-1]
	negated := strings.HasPrefix(body, "^")
	if negated {
		body = body[1:]
	}

	var ranges []automata.SymbolRange
	runes := []rune(body)
	for i := 0; i < len(runes); {
		lo, n, err := classChar(runes[i:])
		if err != nil {
			return nil, fmt.Errorf("syntax: bad class %s: %w", lit, err)
		}
		i += n
		hi := lo
		if i+1 < len(runes) && runes[i] == '-' {
			hi, n, err = classChar(runes[i+1:])
			if err != nil {
				return nil, fmt.Errorf("syntax: bad class %s: %w", lit, err)
			}
			i += 1 + n
		}
		ranges = append(ranges, automata.SymbolRange{Lo: lo, Hi: hi})
	}
	if negated {
		var chars strings.Builder
		for _, r := range ranges {
			for c := r.Lo; c <= r.Hi; c++ {
				chars.WriteRune(c)
			}
		}
		return automata.NoneOf(chars.String()), nil
	}
	return automata.ClassOf(ranges...), nil
}

// classChar decodes one possibly escaped character and reports how many
// runes it consumed.
func classChar(runes []rune) (rune, int, error) {
	if runes[0] != '\\' {
		return runes[0], 1, nil
	}
	if len(runes) < 2 {
		return 0, 0, fmt.Errorf("trailing backslash")
	}
	switch runes[1] {
	case 'n':
		return '\n', 2, nil
	case 't':
		return '\t', 2, nil
	case 'r':
		return '\r', 2, nil
	default:
		return runes[1], 2, nil
	}
}
