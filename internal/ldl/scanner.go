// Package ldl implements the layout description language used by load and
// dump: a parenthesised text form of a tag's frame tree.
//
//	(split horizontal:0.5:0 (clients vertical:0 0x1200003) (clients max:1 0x1400001 0x1600004))
package ldl

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenOpen
	TokenClose
	TokenWord
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenOpen:
		return `"("`
	case TokenClose:
		return `")"`
	default:
		return "word"
	}
}

// Token is one scanned unit together with the byte offset it starts at.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Scanner splits the input into parentheses and whitespace-delimited words.
// It never fails; malformed words are handed to the parser unchanged.
type Scanner struct {
	input  string
	pos    int
	peeked *Token
}

// NewScanner returns a scanner positioned at the start of input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() Token {
	if s.peeked == nil {
		tok := s.scan()
		s.peeked = &tok
	}
	return *s.peeked
}

// Next consumes and returns the next token.
func (s *Scanner) Next() Token {
	tok := s.Peek()
	s.peeked = nil
	return tok
}

// End is the offset reported for the end of the input.
func (s *Scanner) End() int {
	return len(s.input)
}

func (s *Scanner) scan() Token {
	for s.pos < len(s.input) && isSpace(s.input[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.input) {
		return Token{Kind: TokenEOF, Offset: len(s.input)}
	}

	start := s.pos
	switch s.input[s.pos] {
	case '(':
		s.pos++
		return Token{Kind: TokenOpen, Text: "(", Offset: start}
	case ')':
		s.pos++
		return Token{Kind: TokenClose, Text: ")", Offset: start}
	}

	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isSpace(c) || c == '(' || c == ')' {
			break
		}
		s.pos++
	}
	return Token{Kind: TokenWord, Text: s.input[start:s.pos], Offset: start}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
