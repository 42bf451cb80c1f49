// Package core implements PDF's fundamental object syntax: parsing,
// an in-memory object model, and canonical serialization.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types
// satisfying the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream (dictionary + raw
// payload), [IndirectRef] a non-owning reference to an indirect object,
// and [IndirectObject] a numbered top-level definition
// ("N G obj ... endobj").
//
// # Parsing
//
// The [Parser] type parses PDF syntax from an io.Reader or byte slice.
// Its single entry point, [Parser.ParseObject], dispatches on lookahead
// and resolves the ambiguity between a bare integer, an indirect
// reference "N G R", and an indirect object definition by checkpointed
// backtracking: a failed lookahead consumes no input.
//
// The [Lexer] type tokenizes the input for the parser.
//
// # Serialization
//
// Every object writes its canonical textual form through WriteTo;
// [Serialize] captures it as bytes. Dictionaries serialize their keys
// in lexicographic byte order, so serialization is deterministic
// regardless of construction order. Parsing the serialized form yields
// an object deep-equal (per [Equal]) to the original.
//
// # Stream Decoding
//
// Stream payloads are stored raw. [Stream.Decode] applies the filters
// named in the stream dictionary (FlateDecode, ASCIIHexDecode,
// ASCII85Decode, CCITTFaxDecode, and chains of these).
//
// Cross-reference tables, trailers, encryption, and document assembly
// are outside this package; a document layer supplies byte ranges and
// resolves references. The [ReferenceResolver] interface is the hook
// such a layer uses to let the parser bound streams whose /Length is an
// indirect reference.
package core
