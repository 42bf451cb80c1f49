package core

import (
	"fmt"
	"io"
	"strconv"
)

// ReferenceResolver is an interface for resolving indirect references.
// The parser needs one only when a stream's /Length is itself an
// indirect reference rather than a literal integer.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser parses PDF objects from a byte stream. It keeps a two-token
// window over the lexer and, for the integer / reference / indirect
// definition ambiguity, checkpoints the cursor so a failed lookahead
// consumes nothing.
type Parser struct {
	lexer        *Lexer
	currentToken *Token // Current token being processed
	peekToken    *Token // Next token (lookahead)
	err          error  // First lexer error seen while filling the window
	resolver     ReferenceResolver
}

// NewParser creates a new PDF parser for the given reader.
func NewParser(r io.Reader) *Parser {
	return newParser(NewLexer(r))
}

// NewParserBytes creates a new PDF parser over an in-memory byte slice.
func NewParserBytes(data []byte) *Parser {
	return newParser(NewLexerBytes(data))
}

func newParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	// Load first two tokens
	p.nextToken()
	p.nextToken()
	return p
}

// SetReferenceResolver sets the reference resolver for the parser.
// This is needed to resolve indirect stream lengths.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

// checkpoint captures the parser state so a speculative parse can be
// undone exactly. Restoring resets the lexer offset and the token
// window together.
type checkpoint struct {
	offset  int64
	current *Token
	peek    *Token
	err     error
}

func (p *Parser) mark() checkpoint {
	return checkpoint{
		offset:  p.lexer.offset(),
		current: p.currentToken,
		peek:    p.peekToken,
		err:     p.err,
	}
}

func (p *Parser) restore(cp checkpoint) {
	p.lexer.seek(cp.offset)
	p.currentToken = cp.current
	p.peekToken = cp.peek
	p.err = cp.err
}

// nextToken advances the parser to the next token by shifting the lookahead.
func (p *Parser) nextToken() error {
	p.currentToken = p.peekToken

	// If we just moved "stream" into currentToken, don't try to read the
	// next token: binary payload bytes follow and can't be tokenized.
	// parseStream reads them directly off the lexer.
	if p.currentToken != nil &&
		p.currentToken.Type == TokenKeyword &&
		string(p.currentToken.Value) == "stream" {
		p.peekToken = nil
		return nil
	}

	token, err := p.lexer.NextToken()
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		p.peekToken = nil
		return err
	}
	p.peekToken = token
	return nil
}

// skipComments skips over any consecutive comment tokens.
func (p *Parser) skipComments() error {
	for p.currentToken != nil && p.currentToken.Type == TokenComment {
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

// ParseObject parses and returns the next PDF object from the input.
// It handles every object type: null, boolean, integer, real, string,
// name, array, dictionary, stream, indirect reference, and numbered
// indirect object definition. At end of input it returns io.EOF.
func (p *Parser) ParseObject() (Object, error) {
	if err := p.skipComments(); err != nil {
		return nil, err
	}

	if p.currentToken == nil {
		if p.err != nil {
			return nil, p.err
		}
		return nil, syntaxErrf(p.lexer.offset(), "unexpected end of input")
	}

	switch p.currentToken.Type {
	case TokenEOF:
		return nil, io.EOF

	case TokenKeyword:
		keyword := string(p.currentToken.Value)
		switch keyword {
		case "null":
			p.nextToken()
			return Null{}, nil
		case "true":
			p.nextToken()
			return Bool(true), nil
		case "false":
			p.nextToken()
			return Bool(false), nil
		default:
			return nil, syntaxErrf(p.currentToken.Pos, "unexpected keyword %q", keyword)
		}

	case TokenInteger:
		// Integer, indirect reference, or indirect object definition
		return p.parseNumber()

	case TokenReal:
		val, err := strconv.ParseFloat(string(p.currentToken.Value), 64)
		if err != nil {
			return nil, syntaxErrf(p.currentToken.Pos, "invalid real number %q", p.currentToken.Value)
		}
		p.nextToken()
		return Real(val), nil

	case TokenString:
		val := string(p.currentToken.Value)
		p.nextToken()
		return String(val), nil

	case TokenHexString:
		// Convert hex digit pairs to bytes, zero-padding an odd tail
		hexStr := string(p.currentToken.Value)
		if len(hexStr)%2 != 0 {
			hexStr += "0"
		}
		result := make([]byte, len(hexStr)/2)
		for i := 0; i < len(hexStr); i += 2 {
			result[i/2] = hexValue(hexStr[i])<<4 | hexValue(hexStr[i+1])
		}
		p.nextToken()
		return String(result), nil

	case TokenName:
		val := string(p.currentToken.Value)
		p.nextToken()
		return Name(val), nil

	case TokenArrayStart:
		return p.parseArray()

	case TokenDictStart:
		return p.parseDict()

	default:
		return nil, syntaxErrf(p.currentToken.Pos, "unexpected token %v", p.currentToken.Type)
	}
}

// parseNumber resolves the three-way ambiguity between a bare integer,
// an indirect reference "N G R", and an indirect object definition
// "N G obj ... endobj".
//
// A numeral with a decimal point is a Real, immediately. Otherwise the
// first integer is a candidate: checkpoint, then attempt a second
// integer followed by "R" or "obj". "R" commits to a reference; "obj"
// commits to an indirect definition whose payload is parsed recursively
// and must be closed by "endobj". Anything else restores the checkpoint
// so the bare integer is returned with nothing extra consumed.
func (p *Parser) parseNumber() (Object, error) {
	literal := string(p.currentToken.Value)

	first, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		// A sign with no digits lexes as TokenInteger; reject it here.
		return nil, syntaxErrf(p.currentToken.Pos, "invalid number %q", literal)
	}

	cp := p.mark()

	// Object and generation numbers are non-negative, so a negative
	// first numeral can only be a bare integer.
	if first >= 0 && p.nextToken() == nil && p.currentToken != nil && p.currentToken.Type == TokenInteger {
		second, serr := strconv.ParseInt(string(p.currentToken.Value), 10, 64)
		if serr == nil && second >= 0 && p.nextToken() == nil && p.currentToken != nil {
			switch {
			case p.currentToken.Type == TokenIndirectRef:
				p.nextToken()
				return IndirectRef{Number: first, Generation: second}, nil

			case p.currentToken.Type == TokenKeyword && string(p.currentToken.Value) == "obj":
				p.nextToken()
				return p.parseIndirectBody(first, second)
			}
		}
	}

	// Neither pattern matched: the lookahead consumed nothing.
	p.restore(cp)
	p.nextToken()
	return Int(first), nil
}

// parseIndirectBody parses the payload of "N G obj" and the closing
// "endobj" keyword. Once "obj" has been seen the production is
// committed: failures here abort the whole parse.
func (p *Parser) parseIndirectBody(num, gen int64) (Object, error) {
	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("parsing indirect object %d %d: %w", num, gen, err)
	}

	if p.currentToken == nil || p.currentToken.Type != TokenKeyword ||
		string(p.currentToken.Value) != "endobj" {
		return nil, syntaxErrf(p.lexer.offset(), "missing endobj for object %d %d", num, gen)
	}
	p.nextToken()

	return &IndirectObject{Number: num, Generation: gen, Object: obj}, nil
}

// parseArray parses a PDF array "[obj1 obj2 ...]".
func (p *Parser) parseArray() (Object, error) {
	p.nextToken() // past [

	var arr Array
	for {
		if err := p.skipComments(); err != nil {
			return nil, err
		}

		if p.currentToken == nil {
			return nil, syntaxErrf(p.lexer.offset(), "unexpected end of input in array")
		}
		if p.currentToken.Type == TokenArrayEnd {
			p.nextToken()
			break
		}
		if p.currentToken.Type == TokenEOF {
			return nil, syntaxErrf(p.currentToken.Pos, "unterminated array")
		}

		obj, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("parsing array element: %w", err)
		}
		arr = append(arr, obj)
	}

	return arr, nil
}

// parseDict parses a PDF dictionary "<< /Key value ... >>" and, if the
// keyword "stream" follows the closing ">>", the stream payload as well.
// Duplicate keys are last-write-wins.
func (p *Parser) parseDict() (Object, error) {
	p.nextToken() // past <<

	dict := make(Dict)
	for {
		if err := p.skipComments(); err != nil {
			return nil, err
		}

		if p.currentToken == nil {
			return nil, syntaxErrf(p.lexer.offset(), "unexpected end of input in dictionary")
		}
		if p.currentToken.Type == TokenDictEnd {
			p.nextToken()
			break
		}
		if p.currentToken.Type == TokenEOF {
			return nil, syntaxErrf(p.currentToken.Pos, "unterminated dictionary")
		}

		if p.currentToken.Type != TokenName {
			return nil, syntaxErrf(p.currentToken.Pos, "expected name for dictionary key, got %v", p.currentToken.Type)
		}
		key := string(p.currentToken.Value)
		p.nextToken()

		value, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("parsing dictionary value for key %q: %w", key, err)
		}

		dict[key] = value
	}

	// A dictionary immediately followed by "stream" is a stream object.
	if p.currentToken != nil && p.currentToken.Type == TokenKeyword &&
		string(p.currentToken.Value) == "stream" {
		return p.parseStream(dict)
	}

	return dict, nil
}

// parseStream parses a stream payload after the "stream" keyword. The
// payload is bounded by the dictionary's /Length entry, which must be a
// literal integer or, if a resolver is installed, a resolvable indirect
// reference.
func (p *Parser) parseStream(dict Dict) (*Stream, error) {
	streamPos := p.currentToken.Pos

	length, err := p.streamLength(dict)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, syntaxErrf(streamPos, "invalid stream length %d", length)
	}

	// The lexer sits right after the "stream" keyword: the token window
	// stopped there because the payload is not tokenizable. Skip the
	// mandatory line terminator, then read exactly length payload bytes.
	if err := p.lexer.SkipStreamEOL(); err != nil {
		return nil, err
	}

	data, err := p.lexer.ReadBytes(length)
	if err != nil {
		return nil, fmt.Errorf("reading stream payload: %w", err)
	}

	// The payload must be closed by "endstream".
	token, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	if token.Type != TokenKeyword || string(token.Value) != "endstream" {
		return nil, syntaxErrf(token.Pos, "missing endstream")
	}

	// Reload the token window so parsing can continue past the stream.
	p.currentToken = nil
	p.peekToken = nil
	p.nextToken()
	p.nextToken()

	return &Stream{Dict: dict, Data: data}, nil
}

// streamLength extracts the payload byte count from /Length.
func (p *Parser) streamLength(dict Dict) (int, error) {
	lengthObj := dict.Get("Length")
	if lengthObj == nil {
		return 0, syntaxErrf(p.currentToken.Pos, "stream dictionary missing /Length")
	}

	switch v := lengthObj.(type) {
	case Int:
		return int(v), nil

	case IndirectRef:
		if p.resolver == nil {
			return 0, fmt.Errorf("stream /Length is %s: an indirect length requires a reference resolver", v)
		}
		resolved, err := p.resolver.ResolveReference(v)
		if err != nil {
			return 0, fmt.Errorf("resolving stream /Length %s: %w", v, err)
		}
		n, ok := resolved.(Int)
		if !ok {
			return 0, fmt.Errorf("stream /Length %s resolved to %v, expected Int", v, resolved.Type())
		}
		return int(n), nil

	default:
		return 0, fmt.Errorf("invalid type for stream /Length: %v", lengthObj.Type())
	}
}
