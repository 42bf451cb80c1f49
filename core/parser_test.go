package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parseOne parses a single object from input, failing the test on error.
func parseOne(t *testing.T, input string) Object {
	t.Helper()
	obj, err := NewParser(strings.NewReader(input)).ParseObject()
	if err != nil {
		t.Fatalf("ParseObject(%q): %v", input, err)
	}
	return obj
}

// TestParserNull tests parsing null objects
func TestParserNull(t *testing.T) {
	obj := parseOne(t, "null")
	if _, ok := obj.(Null); !ok {
		t.Errorf("expected Null, got %T", obj)
	}
}

// TestParserBool tests parsing boolean objects
func TestParserBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			b, ok := obj.(Bool)
			if !ok {
				t.Fatalf("expected Bool, got %T", obj)
			}
			if bool(b) != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, bool(b))
			}
		})
	}
}

// TestParserInt tests parsing integer objects
func TestParserInt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"zero", "0", 0},
		{"positive", "123", 123},
		{"negative", "-456", -456},
		{"negative zero", "-0", 0},
		{"explicit plus", "+7", 7},
		{"large", "999999999999", 999999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			i, ok := obj.(Int)
			if !ok {
				t.Fatalf("expected Int, got %T", obj)
			}
			if int64(i) != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, int64(i))
			}
		})
	}
}

// TestParserReal tests parsing real number objects
func TestParserReal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"simple", "3.14", 3.14},
		{"negative", "-2.5", -2.5},
		{"leading decimal", ".5", 0.5},
		{"trailing decimal", "5.", 5.0},
		{"signed leading decimal", "-.5", -0.5},
		{"zero", "0.0", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			r, ok := obj.(Real)
			if !ok {
				t.Fatalf("expected Real, got %T", obj)
			}
			if float64(r) != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, float64(r))
			}
		})
	}
}

// TestParserString tests literal and hex string objects
func TestParserString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"literal", "(hello world)", "hello world"},
		{"nested parens", "(a (b) c)", "a (b) c"},
		{"escapes", `(\(not nested\))`, "(not nested)"},
		{"hex", "<48656C6C6F>", "Hello"},
		{"hex lowercase", "<68692121>", "hi!!"},
		{"hex odd padded", "<5>", "P"},
		{"hex empty", "<>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			s, ok := obj.(String)
			if !ok {
				t.Fatalf("expected String, got %T", obj)
			}
			if string(s) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(s))
			}
		})
	}
}

// TestParserName tests parsing name objects
func TestParserName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "/Type", "Type"},
		{"hex escape", "/With#20Space", "With Space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			n, ok := obj.(Name)
			if !ok {
				t.Fatalf("expected Name, got %T", obj)
			}
			if string(n) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(n))
			}
		})
	}
}

// TestParserArray tests parsing arrays
func TestParserArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Array
	}{
		{"empty", "[ ]", nil},
		{"empty no space", "[]", nil},
		{"flat", "[ 1 2 3 ]", Array{Int(1), Int(2), Int(3)}},
		{"mixed", "[ /N (s) true ]", Array{Name("N"), String("s"), Bool(true)}},
		{"nested", "[ [ 1 ] [ ] ]", Array{Array{Int(1)}, Array(nil)}},
		{"with refs", "[ 1 0 R 2 0 R ]", Array{
			IndirectRef{Number: 1, Generation: 0},
			IndirectRef{Number: 2, Generation: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			arr, ok := obj.(Array)
			if !ok {
				t.Fatalf("expected Array, got %T", obj)
			}
			if diff := cmp.Diff(tt.want, arr); diff != "" {
				t.Errorf("array mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestParserDict tests parsing dictionaries
func TestParserDict(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Dict
	}{
		{"empty", "<< >>", Dict{}},
		{"empty no space", "<<>>", Dict{}},
		{"simple", "<< /Type /Page /Count 3 >>", Dict{
			"Type":  Name("Page"),
			"Count": Int(3),
		}},
		{"duplicate key last write wins", "<< /A 1 /A 2 >>", Dict{
			"A": Int(2),
		}},
		{"nested", "<< /Kids [ 1 0 R ] /Parent << >> >>", Dict{
			"Kids":   Array{IndirectRef{Number: 1, Generation: 0}},
			"Parent": Dict{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := parseOne(t, tt.input)
			dict, ok := obj.(Dict)
			if !ok {
				t.Fatalf("expected Dict, got %T", obj)
			}
			if diff := cmp.Diff(tt.want, dict); diff != "" {
				t.Errorf("dict mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestParserDictMissingValue tests that a key without a value is a
// syntax error rather than a panic
func TestParserDictMissingValue(t *testing.T) {
	_, err := NewParserBytes([]byte("<< /A >>")).ParseObject()
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

// TestParserDisambiguation tests the integer / reference / indirect
// definition three-way ambiguity
func TestParserDisambiguation(t *testing.T) {
	t.Run("reference", func(t *testing.T) {
		obj := parseOne(t, "12 0 R")
		ref, ok := obj.(IndirectRef)
		if !ok {
			t.Fatalf("expected IndirectRef, got %T", obj)
		}
		if ref.Number != 12 || ref.Generation != 0 {
			t.Errorf("got %d %d, want 12 0", ref.Number, ref.Generation)
		}
	})

	t.Run("indirect definition", func(t *testing.T) {
		obj := parseOne(t, "12 0 obj null endobj")
		ind, ok := obj.(*IndirectObject)
		if !ok {
			t.Fatalf("expected *IndirectObject, got %T", obj)
		}
		if ind.Number != 12 || ind.Generation != 0 {
			t.Errorf("got %d %d, want 12 0", ind.Number, ind.Generation)
		}
		if _, ok := ind.Object.(Null); !ok {
			t.Errorf("payload = %T, want Null", ind.Object)
		}
	})

	t.Run("bare integer at EOF", func(t *testing.T) {
		obj := parseOne(t, "12")
		if i, ok := obj.(Int); !ok || i != 12 {
			t.Errorf("got %v (%T), want Int(12)", obj, obj)
		}
	})

	t.Run("real skips reference lookahead", func(t *testing.T) {
		// "12.5 0 R" must yield Real(12.5) first, not a reference
		p := NewParserBytes([]byte("12.5 0 R"))
		obj, err := p.ParseObject()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r, ok := obj.(Real); !ok || r != 12.5 {
			t.Errorf("got %v (%T), want Real(12.5)", obj, obj)
		}
	})

	t.Run("failed lookahead consumes nothing", func(t *testing.T) {
		// Three bare integers: each must come back separately
		p := NewParserBytes([]byte("1 2 3"))
		for _, want := range []Int{1, 2, 3} {
			obj, err := p.ParseObject()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if obj != want {
				t.Errorf("got %v, want %v", obj, want)
			}
		}
		if _, err := p.ParseObject(); err != io.EOF {
			t.Errorf("expected io.EOF after last integer, got %v", err)
		}
	})

	t.Run("two integers then keyword", func(t *testing.T) {
		// "7 1 true" is Int(7), Int(1), Bool(true), not a reference
		p := NewParserBytes([]byte("7 1 true"))
		if obj, _ := p.ParseObject(); obj != Int(7) {
			t.Errorf("first = %v, want Int(7)", obj)
		}
		if obj, _ := p.ParseObject(); obj != Int(1) {
			t.Errorf("second = %v, want Int(1)", obj)
		}
		if obj, _ := p.ParseObject(); obj != Bool(true) {
			t.Errorf("third = %v, want Bool(true)", obj)
		}
	})

	t.Run("negative first integer is never a reference", func(t *testing.T) {
		p := NewParserBytes([]byte("-1 0 R"))
		if obj, _ := p.ParseObject(); obj != Int(-1) {
			t.Errorf("got %v, want Int(-1)", obj)
		}
	})

	t.Run("nested definition payload", func(t *testing.T) {
		obj := parseOne(t, "3 0 obj << /Len 4 0 R >> endobj")
		ind, ok := obj.(*IndirectObject)
		if !ok {
			t.Fatalf("expected *IndirectObject, got %T", obj)
		}
		dict, ok := ind.Object.(Dict)
		if !ok {
			t.Fatalf("payload = %T, want Dict", ind.Object)
		}
		ref, ok := dict.GetIndirectRef("Len")
		if !ok || ref.Number != 4 {
			t.Errorf("Len = %v, want 4 0 R", dict.Get("Len"))
		}
	})
}

// TestParserMissingEndobj tests that a definition without endobj fails
func TestParserMissingEndobj(t *testing.T) {
	_, err := NewParserBytes([]byte("12 0 obj null")).ParseObject()
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

// TestParserStream tests stream objects with a literal /Length
func TestParserStream(t *testing.T) {
	input := "<< /Length 5 >>\nstream\nhello\nendstream\n"
	obj := parseOne(t, input)

	stream, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream, got %T", obj)
	}
	if string(stream.Data) != "hello" {
		t.Errorf("payload = %q, want %q", stream.Data, "hello")
	}
	if n, _ := stream.Dict.GetInt("Length"); n != 5 {
		t.Errorf("Length = %d, want 5", n)
	}
}

// TestParserStreamCRLF tests the CR LF line terminator after "stream"
func TestParserStreamCRLF(t *testing.T) {
	input := "<< /Length 3 >> stream\r\nabc\nendstream"
	obj := parseOne(t, input)

	stream, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream, got %T", obj)
	}
	if string(stream.Data) != "abc" {
		t.Errorf("payload = %q, want %q", stream.Data, "abc")
	}
}

// TestParserStreamBinaryPayload tests that payload bytes are read raw
func TestParserStreamBinaryPayload(t *testing.T) {
	payload := []byte{0x00, '(', '<', 0xFF, '\n'}
	input := append([]byte("<< /Length 5 >>\nstream\n"), payload...)
	input = append(input, []byte("\nendstream")...)

	obj, err := NewParserBytes(input).ParseObject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stream, ok := obj.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream, got %T", obj)
	}
	if string(stream.Data) != string(payload) {
		t.Errorf("payload = % x, want % x", stream.Data, payload)
	}
}

// TestParserStreamInsideIndirectObject tests the common layout
// "N G obj << ... >> stream ... endstream endobj"
func TestParserStreamInsideIndirectObject(t *testing.T) {
	input := "4 0 obj\n<< /Length 2 >>\nstream\nok\nendstream\nendobj\n"
	obj := parseOne(t, input)

	ind, ok := obj.(*IndirectObject)
	if !ok {
		t.Fatalf("expected *IndirectObject, got %T", obj)
	}
	stream, ok := ind.Object.(*Stream)
	if !ok {
		t.Fatalf("payload = %T, want *Stream", ind.Object)
	}
	if string(stream.Data) != "ok" {
		t.Errorf("payload = %q, want %q", stream.Data, "ok")
	}
}

// TestParserStreamMissingEndstream tests the missing endstream error
func TestParserStreamMissingEndstream(t *testing.T) {
	_, err := NewParserBytes([]byte("<< /Length 5 >>\nstream\nhello more")).ParseObject()
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

// TestParserStreamMissingLength tests a stream without /Length
func TestParserStreamMissingLength(t *testing.T) {
	_, err := NewParserBytes([]byte("<< >>\nstream\nhello\nendstream")).ParseObject()
	if err == nil {
		t.Fatal("expected error for missing /Length")
	}
}

// mapResolver resolves references from a fixed table.
type mapResolver map[IndirectRef]Object

func (m mapResolver) ResolveReference(ref IndirectRef) (Object, error) {
	obj, ok := m[ref]
	if !ok {
		return nil, errors.New("no such object")
	}
	return obj, nil
}

// TestParserStreamIndirectLength tests a /Length held in a reference
func TestParserStreamIndirectLength(t *testing.T) {
	input := "<< /Length 8 0 R >>\nstream\nhello\nendstream\n"

	t.Run("without resolver", func(t *testing.T) {
		_, err := NewParserBytes([]byte(input)).ParseObject()
		if err == nil {
			t.Fatal("expected error when /Length is a reference and no resolver is set")
		}
	})

	t.Run("with resolver", func(t *testing.T) {
		p := NewParserBytes([]byte(input))
		p.SetReferenceResolver(mapResolver{
			{Number: 8, Generation: 0}: Int(5),
		})
		obj, err := p.ParseObject()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stream, ok := obj.(*Stream)
		if !ok {
			t.Fatalf("expected *Stream, got %T", obj)
		}
		if string(stream.Data) != "hello" {
			t.Errorf("payload = %q, want %q", stream.Data, "hello")
		}
	})

	t.Run("resolver misses", func(t *testing.T) {
		p := NewParserBytes([]byte(input))
		p.SetReferenceResolver(mapResolver{})
		if _, err := p.ParseObject(); err == nil {
			t.Fatal("expected error when the resolver cannot find the object")
		}
	})
}

// TestParserComments tests that comments are skipped everywhere
func TestParserComments(t *testing.T) {
	input := "% leading\n[ 1 % inside\n2 ]"
	obj := parseOne(t, input)
	if diff := cmp.Diff(Array{Int(1), Int(2)}, obj); diff != "" {
		t.Errorf("array mismatch (-want +got):\n%s", diff)
	}
}

// TestParserSyntaxErrorOffset tests that syntax errors carry the byte
// offset of the offending input
func TestParserSyntaxErrorOffset(t *testing.T) {
	_, err := NewParserBytes([]byte("   garbage")).ParseObject()
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syntaxErr.Pos != 3 {
		t.Errorf("Pos = %d, want 3", syntaxErr.Pos)
	}
}

// TestParserUnterminated tests abort on unterminated composites
func TestParserUnterminated(t *testing.T) {
	inputs := []string{"[ 1 2", "<< /A 1", "(open", "12 0 obj null"}
	for _, input := range inputs {
		if _, err := NewParserBytes([]byte(input)).ParseObject(); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
}

// TestParserEOF tests end-of-input reporting
func TestParserEOF(t *testing.T) {
	p := NewParserBytes([]byte("   "))
	if _, err := p.ParseObject(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

// TestParserSequence tests repeated ParseObject calls over a document
// fragment of several top-level definitions
func TestParserSequence(t *testing.T) {
	input := "1 0 obj << /Type /Catalog >> endobj\n2 0 obj [ 3 0 R ] endobj\n"
	p := NewParserBytes([]byte(input))

	first, err := p.ParseObject()
	if err != nil {
		t.Fatalf("first object: %v", err)
	}
	ind := first.(*IndirectObject)
	if ind.Number != 1 {
		t.Errorf("first number = %d, want 1", ind.Number)
	}

	second, err := p.ParseObject()
	if err != nil {
		t.Fatalf("second object: %v", err)
	}
	ind = second.(*IndirectObject)
	if ind.Number != 2 {
		t.Errorf("second number = %d, want 2", ind.Number)
	}

	if _, err := p.ParseObject(); err != io.EOF {
		t.Errorf("expected io.EOF at end, got %v", err)
	}
}
