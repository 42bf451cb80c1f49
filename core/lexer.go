package core

import (
	"bytes"
	"io"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWhitespace
	TokenComment
	TokenKeyword     // true, false, null, obj, endobj, stream, endstream, etc.
	TokenInteger     // 123
	TokenReal        // 3.14
	TokenString      // (hello)
	TokenHexString   // <48656C6C6F>
	TokenName        // /Type
	TokenArrayStart  // [
	TokenArrayEnd    // ]
	TokenDictStart   // <<
	TokenDictEnd     // >>
	TokenIndirectRef // R (after two numbers)
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int64 // Byte offset in the input
}

// Lexer tokenizes PDF object syntax. It holds the whole input in memory
// and tracks an absolute byte offset, so the parser can checkpoint a
// position and restore it exactly without relying on seekable readers.
type Lexer struct {
	data []byte
	pos  int64
	err  error // deferred read error from the constructor
}

// NewLexer creates a lexer that reads the entire input up front.
func NewLexer(r io.Reader) *Lexer {
	data, err := io.ReadAll(r)
	return &Lexer{data: data, err: err}
}

// NewLexerBytes creates a lexer over an in-memory byte slice.
func NewLexerBytes(data []byte) *Lexer {
	return &Lexer{data: data}
}

// offset returns the current byte offset. Together with seek it forms
// the checkpoint mechanism used for backtracking.
func (l *Lexer) offset() int64 { return l.pos }

// seek restores a byte offset previously returned by offset.
func (l *Lexer) seek(off int64) { l.pos = off }

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (*Token, error) {
	if l.err != nil {
		return nil, l.err
	}

	l.skipWhitespace()

	b, err := l.peek()
	if err == io.EOF {
		return &Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	if b == '%' {
		return l.readComment()
	}

	switch b {
	case '[':
		l.readByte()
		return &Token{Type: TokenArrayStart, Value: []byte{'['}, Pos: l.pos - 1}, nil
	case ']':
		l.readByte()
		return &Token{Type: TokenArrayEnd, Value: []byte{']'}, Pos: l.pos - 1}, nil
	case '(':
		return l.readString()
	case '<':
		// Could be << (dict start) or <hex string>
		if next, err := l.peekN(2); err == nil && next[1] == '<' {
			l.readByte()
			l.readByte()
			return &Token{Type: TokenDictStart, Value: []byte{'<', '<'}, Pos: l.pos - 2}, nil
		}
		return l.readHexString()
	case '>':
		// Must be >> (dict end)
		if next, err := l.peekN(2); err == nil && next[1] == '>' {
			l.readByte()
			l.readByte()
			return &Token{Type: TokenDictEnd, Value: []byte{'>', '>'}, Pos: l.pos - 2}, nil
		}
		return nil, syntaxErrf(l.pos, "unexpected '>'")
	case '/':
		return l.readName()
	}

	if isDigit(b) || b == '-' || b == '+' || b == '.' {
		return l.readNumber()
	}

	if isAlpha(b) {
		return l.readKeyword()
	}

	return nil, syntaxErrf(l.pos, "unexpected character %q", b)
}

// readByte reads a single byte and advances the offset
func (l *Lexer) readByte() (byte, error) {
	if l.pos >= int64(len(l.data)) {
		return 0, io.EOF
	}
	b := l.data[l.pos]
	l.pos++
	return b, nil
}

// peek looks at the next byte without consuming it
func (l *Lexer) peek() (byte, error) {
	if l.pos >= int64(len(l.data)) {
		return 0, io.EOF
	}
	return l.data[l.pos], nil
}

// peekN looks at the next n bytes without consuming them
func (l *Lexer) peekN(n int) ([]byte, error) {
	if l.pos+int64(n) > int64(len(l.data)) {
		return l.data[l.pos:], io.EOF
	}
	return l.data[l.pos : l.pos+int64(n)], nil
}

// skipWhitespace skips the PDF whitespace set: space (0x20), tab (0x09),
// LF (0x0A), FF (0x0C), CR (0x0D), and null (0x00). Reapplying it at the
// same position consumes nothing.
func (l *Lexer) skipWhitespace() {
	for l.pos < int64(len(l.data)) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
}

// readComment reads a comment (% to end of line)
func (l *Lexer) readComment() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	b, _ := l.readByte()
	buf.WriteByte(b)

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if b == '\r' || b == '\n' {
			l.readByte()
			if b == '\r' {
				if next, err := l.peek(); err == nil && next == '\n' {
					l.readByte()
				}
			}
			break
		}
		b, _ = l.readByte()
		buf.WriteByte(b)
	}

	return &Token{Type: TokenComment, Value: buf.Bytes(), Pos: startPos}, nil
}

// readString reads a literal string "(...)". Unescaped parentheses nest
// to matching depth; a backslash makes the following byte literal.
func (l *Lexer) readString() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	l.readByte() // opening (

	depth := 1
	for depth > 0 {
		b, err := l.readByte()
		if err != nil {
			return nil, syntaxErrf(l.pos, "unterminated string")
		}

		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			next, err := l.readByte()
			if err != nil {
				return nil, syntaxErrf(l.pos, "unterminated string escape")
			}
			buf.WriteByte(next)
		default:
			buf.WriteByte(b)
		}
	}

	return &Token{Type: TokenString, Value: buf.Bytes(), Pos: startPos}, nil
}

// readHexString reads a hexadecimal string <48656C6C6F>
func (l *Lexer) readHexString() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	l.readByte() // opening <

	for {
		b, err := l.readByte()
		if err != nil {
			return nil, syntaxErrf(l.pos, "unterminated hex string")
		}

		if b == '>' {
			break
		}
		if isWhitespace(b) {
			continue
		}
		if !isHexDigit(b) {
			return nil, syntaxErrf(l.pos-1, "invalid hex digit %q", b)
		}
		buf.WriteByte(b)
	}

	return &Token{Type: TokenHexString, Value: buf.Bytes(), Pos: startPos}, nil
}

// readName reads a name object /Type. The token value holds the raw
// bytes after "/" with #xx escapes decoded.
func (l *Lexer) readName() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	l.readByte() // the /

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if !validNameChar(b) {
			break
		}
		b, _ = l.readByte()

		if b == '#' {
			hex1, err1 := l.readByte()
			hex2, err2 := l.readByte()
			if err1 != nil || err2 != nil || !isHexDigit(hex1) || !isHexDigit(hex2) {
				return nil, syntaxErrf(l.pos, "invalid hex escape in name")
			}
			buf.WriteByte(hexValue(hex1)<<4 | hexValue(hex2))
		} else {
			buf.WriteByte(b)
		}
	}

	return &Token{Type: TokenName, Value: buf.Bytes(), Pos: startPos}, nil
}

// readNumber reads an integer or real literal. An optional sign comes
// first; a single '.' may appear with digits on either side, so ".5",
// "5.", and "-.5" are all reals. Bytes past the literal stay unread.
func (l *Lexer) readNumber() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer
	hasDecimal := false

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}

		if b == '.' {
			if hasDecimal {
				break // second decimal point ends the literal
			}
			hasDecimal = true
			b, _ = l.readByte()
			buf.WriteByte(b)
		} else if isDigit(b) || (buf.Len() == 0 && (b == '-' || b == '+')) {
			b, _ = l.readByte()
			buf.WriteByte(b)
		} else {
			break
		}
	}

	tokenType := TokenInteger
	if hasDecimal {
		tokenType = TokenReal
	}

	return &Token{Type: tokenType, Value: buf.Bytes(), Pos: startPos}, nil
}

// readKeyword reads a keyword (true, false, null, R, obj, endobj, etc.)
func (l *Lexer) readKeyword() (*Token, error) {
	startPos := l.pos
	var buf bytes.Buffer

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if !isAlpha(b) && !isDigit(b) {
			break
		}
		b, _ = l.readByte()
		buf.WriteByte(b)
	}

	value := buf.Bytes()

	if len(value) == 1 && value[0] == 'R' {
		return &Token{Type: TokenIndirectRef, Value: value, Pos: startPos}, nil
	}

	return &Token{Type: TokenKeyword, Value: value, Pos: startPos}, nil
}

// Helper functions

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

// validNameChar reports whether b can appear inside a name token.
// Whitespace and delimiters end the token.
func validNameChar(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

// ReadBytes reads exactly n bytes of raw data at the current offset.
// This is used for stream payloads, which are not tokenizable.
func (l *Lexer) ReadBytes(n int) ([]byte, error) {
	if l.pos+int64(n) > int64(len(l.data)) {
		got := int64(len(l.data)) - l.pos
		return nil, syntaxErrf(l.pos, "unexpected EOF: expected %d bytes, got %d", n, got)
	}
	data := make([]byte, n)
	copy(data, l.data[l.pos:l.pos+int64(n)])
	l.pos += int64(n)
	return data, nil
}

// SkipBytes skips exactly n bytes at the current offset
func (l *Lexer) SkipBytes(n int) error {
	if l.pos+int64(n) > int64(len(l.data)) {
		return syntaxErrf(l.pos, "unexpected EOF skipping %d bytes", n)
	}
	l.pos += int64(n)
	return nil
}

// SkipStreamEOL consumes the single line terminator (LF or CR LF) that
// separates the "stream" keyword from the payload bytes.
func (l *Lexer) SkipStreamEOL() error {
	b, err := l.peek()
	if err != nil {
		return syntaxErrf(l.pos, "unexpected EOF after stream keyword")
	}
	if b == '\r' {
		l.readByte()
		b, err = l.peek()
		if err != nil {
			return nil
		}
	}
	if b == '\n' {
		l.readByte()
	}
	return nil
}

// Peek returns the next byte without consuming it (public wrapper for peek)
func (l *Lexer) Peek() (byte, error) {
	return l.peek()
}

// ReadByte reads and returns a single byte (public wrapper for readByte)
func (l *Lexer) ReadByte() (byte, error) {
	return l.readByte()
}
