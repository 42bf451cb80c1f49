package core

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Serialize returns the canonical byte form of obj. The output is the
// parser's inverse: parsing it yields an object deep-equal to obj.
func Serialize(obj Object) []byte {
	var buf bytes.Buffer
	obj.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes "null".
func (n Null) WriteTo(w io.Writer) (int64, error) {
	return writeString(w, "null")
}

// WriteTo writes "true" or "false".
func (b Bool) WriteTo(w io.Writer) (int64, error) {
	return writeString(w, b.String())
}

// WriteTo writes the integer in base 10.
func (i Int) WriteTo(w io.Writer) (int64, error) {
	return writeString(w, strconv.FormatInt(int64(i), 10))
}

// WriteTo writes the shortest decimal form that round-trips the value.
// The output always contains a decimal point, so it parses back as a
// Real rather than an Int.
func (r Real) WriteTo(w io.Writer) (int64, error) {
	return writeString(w, formatReal(float64(r)))
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += "."
	}
	return s
}

// WriteTo writes the literal string form "(...)". Backslashes and
// parentheses are escaped so any byte sequence survives a round trip.
func (s String) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('(')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', ')', '\\':
			buf.WriteByte('\\')
		}
		buf.WriteByte(s[i])
	}
	buf.WriteByte(')')
	return buf.WriteTo(w)
}

// WriteTo writes "/" followed by the name bytes. Bytes that would
// terminate the token (whitespace, delimiters, '#', or bytes outside the
// printable range) are written as #xx hex escapes.
func (n Name) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		b := n[i]
		if b == '#' || b < '!' || b > '~' || isDelimiter(b) {
			fmt.Fprintf(buf, "#%02x", b)
		} else {
			buf.WriteByte(b)
		}
	}
	return buf.WriteTo(w)
}

// WriteTo writes "[ elem elem ]".
func (a Array) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	buf.WriteString("[ ")
	for _, obj := range a {
		obj.WriteTo(buf)
		buf.WriteByte(' ')
	}
	buf.WriteByte(']')
	return buf.WriteTo(w)
}

// WriteTo writes "<< /Key value >>" with keys in lexicographic byte
// order. Serialization order is canonical and deliberately independent
// of how the dictionary was built; equality ignores order either way.
func (d Dict) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	buf.WriteString("<< ")
	for _, key := range d.SortedKeys() {
		Name(key).WriteTo(buf)
		buf.WriteByte(' ')
		d[key].WriteTo(buf)
		buf.WriteByte(' ')
	}
	buf.WriteString(">>")
	return buf.WriteTo(w)
}

// WriteTo writes the dictionary, a "stream" line, the raw payload, and
// "endstream". The /Length entry is set to the payload size first so the
// output parses back to the same stream.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	if s.Dict == nil {
		s.Dict = Dict{}
	}
	s.Dict["Length"] = Int(len(s.Data))
	s.Dict.WriteTo(buf)
	buf.WriteString("\nstream\n")
	buf.Write(s.Data)
	buf.WriteString("\nendstream\n")
	return buf.WriteTo(w)
}

// WriteTo writes "N G R".
func (r IndirectRef) WriteTo(w io.Writer) (int64, error) {
	return writeString(w, fmt.Sprintf("%d %d R", r.Number, r.Generation))
}

// WriteTo writes "N G obj", the payload, and "endobj".
func (o *IndirectObject) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "%d %d obj\n", o.Number, o.Generation)
	o.Object.WriteTo(buf)
	buf.WriteString("\nendobj\n")
	return buf.WriteTo(w)
}

func writeString(w io.Writer, s string) (int64, error) {
	n, err := io.WriteString(w, s)
	return int64(n), err
}
