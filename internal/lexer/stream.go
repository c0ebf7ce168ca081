package lexer

// Stream buffers tokens pulled lazily from a Lexer so that the parser can
// look arbitrarily far ahead and backtrack without re-lexing.
//
// Invariants:
//   - buf only grows; tokens are never re-lexed or dropped.
//   - the last buffered token is EOF once the lexer is exhausted, and Peek
//     beyond it keeps returning that EOF token.
//   - pos never moves past the EOF token.
type Stream struct {
	lx  *Lexer
	buf []Token
	pos int
}

// Mark is an opaque cursor position returned by Stream.Mark.
type Mark int

// NewStream wraps lx.
func NewStream(lx *Lexer) *Stream {
	return &Stream{lx: lx}
}

// fill makes sure buf holds index i, stopping early at EOF.
func (s *Stream) fill(i int) {
	for len(s.buf) <= i {
		if n := len(s.buf); n > 0 && s.buf[n-1].Type == EOF {
			return
		}
		s.buf = append(s.buf, s.lx.NextToken())
	}
}

// Peek returns the token k positions ahead of the cursor without consuming
// it. Peek(0) is the current token.
func (s *Stream) Peek(k int) Token {
	i := s.pos + k
	s.fill(i)
	if i >= len(s.buf) {
		return s.buf[len(s.buf)-1]
	}
	return s.buf[i]
}

// Next consumes and returns the current token.
func (s *Stream) Next() Token {
	tok := s.Peek(0)
	if tok.Type != EOF {
		s.pos++
	}
	return tok
}

// Mark records the cursor so that Reset can return to it.
func (s *Stream) Mark() Mark {
	return Mark(s.pos)
}

// Reset moves the cursor back to m.
func (s *Stream) Reset(m Mark) {
	s.pos = int(m)
}

// Drain consumes the remaining input so that every lexical error has been
// recorded, and returns the number of buffered tokens.
func (s *Stream) Drain() int {
	for s.Peek(0).Type != EOF {
		s.Next()
	}
	return len(s.buf)
}

// Lexer returns the underlying lexer.
func (s *Stream) Lexer() *Lexer {
	return s.lx
}
