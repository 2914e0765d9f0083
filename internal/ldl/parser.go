package ldl

import (
	"strconv"
	"strings"

	"github.com/1broseidon/frametile/internal/frame"
)

// Option customises parsing.
type Option func(*parser)

// WithBounds overrides the accepted split fraction range.
func WithBounds(b frame.Bounds) Option {
	return func(p *parser) {
		p.bounds = b
	}
}

type parser struct {
	sc     *Scanner
	bounds frame.Bounds
}

// Parse parses a complete layout. Any error is a *SyntaxError.
func Parse(text string, opts ...Option) (Node, error) {
	p := &parser{
		sc:     NewScanner(text),
		bounds: frame.DefaultBounds(),
	}
	for _, opt := range opts {
		opt(p)
	}

	n, err := p.layout()
	if err != nil {
		return nil, err
	}
	if tok := p.sc.Peek(); tok.Kind != TokenEOF {
		return nil, errorAt(tok.Offset, "unexpected %s after layout", describe(tok))
	}
	return n, nil
}

// layout := '(' node ')'
func (p *parser) layout() (Node, error) {
	open := p.sc.Next()
	if open.Kind != TokenOpen {
		return nil, errorAt(open.Offset, `expected "(" but got %s`, describe(open))
	}

	kw := p.sc.Next()
	if kw.Kind != TokenWord {
		return nil, errorAt(kw.Offset, `expected "split" or "clients" but got %s`, describe(kw))
	}
	switch kw.Text {
	case "split":
		return p.split()
	case "clients":
		return p.clients()
	default:
		return nil, errorAt(kw.Offset, `unknown frame type %q, expected "split" or "clients"`, kw.Text)
	}
}

// split := 'split' ALIGN:FRACTION:SELECTED layout{0,2} ')'
func (p *parser) split() (Node, error) {
	arg := p.sc.Next()
	if arg.Kind != TokenWord {
		return nil, errorAt(arg.Offset, "expected ALIGN:FRACTION:SELECTION but got %s", describe(arg))
	}
	parts := strings.Split(arg.Text, ":")
	if len(parts) != 3 {
		return nil, errorAt(arg.Offset, "split arguments %q must have the form ALIGN:FRACTION:SELECTION", arg.Text)
	}
	align, err := frame.ParseAlignment(parts[0])
	if err != nil {
		return nil, errorAt(arg.Offset, "%v", err)
	}
	fraction, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, errorAt(arg.Offset, "invalid fraction %q", parts[1])
	}
	if err := p.bounds.CheckFraction(fraction); err != nil {
		return nil, errorAt(arg.Offset, "%v", err)
	}
	selected, err := parseIndex(parts[2])
	if err != nil {
		return nil, errorAt(arg.Offset, "invalid selection %q", parts[2])
	}
	if selected > 1 {
		return nil, errorAt(arg.Offset, "split selection %d must be 0 or 1", selected)
	}

	node := &SplitNode{Alignment: align, Fraction: fraction, Selected: selected}
	count := 0
	for {
		tok := p.sc.Peek()
		switch tok.Kind {
		case TokenClose:
			p.sc.Next()
			return node, nil
		case TokenEOF:
			return nil, errorAt(tok.Offset, `expected ")" but reached end of input`)
		case TokenOpen:
			if count == len(node.Children) {
				return nil, errorAt(tok.Offset, "a split has at most two children")
			}
			child, err := p.layout()
			if err != nil {
				return nil, err
			}
			node.Children[count] = child
			count++
		default:
			return nil, errorAt(tok.Offset, `expected "(" or ")" but got %s`, describe(tok))
		}
	}
}

// clients := 'clients' ALGO:SELECTED WINDOW* ')'
func (p *parser) clients() (Node, error) {
	arg := p.sc.Next()
	if arg.Kind != TokenWord {
		return nil, errorAt(arg.Offset, "expected ALGORITHM:SELECTION but got %s", describe(arg))
	}
	parts := strings.Split(arg.Text, ":")
	if len(parts) != 2 {
		return nil, errorAt(arg.Offset, "clients arguments %q must have the form ALGORITHM:SELECTION", arg.Text)
	}
	algo, err := frame.ParseAlgorithm(parts[0])
	if err != nil {
		return nil, errorAt(arg.Offset, "%v", err)
	}
	selected, err := parseIndex(parts[1])
	if err != nil {
		return nil, errorAt(arg.Offset, "invalid selection %q", parts[1])
	}

	node := &ClientsNode{Algorithm: algo, Selected: selected}
	for done := false; !done; {
		tok := p.sc.Next()
		switch tok.Kind {
		case TokenClose:
			done = true
		case TokenEOF:
			return nil, errorAt(tok.Offset, `expected ")" but reached end of input`)
		case TokenOpen:
			return nil, errorAt(tok.Offset, `expected window id or ")" but got "("`)
		default:
			id, err := ParseWindowID(tok.Text)
			if err != nil {
				return nil, errorAt(tok.Offset, "%v", err)
			}
			node.Windows = append(node.Windows, id)
		}
	}

	if n := len(node.Windows); n == 0 && selected != 0 {
		return nil, errorAt(arg.Offset, "selection %d must be 0 for a frame without windows", selected)
	} else if n > 0 && selected >= n {
		return nil, errorAt(arg.Offset, "selection %d out of range for %d windows", selected, n)
	}
	return node, nil
}

// parseIndex accepts a plain non-negative decimal integer.
func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
