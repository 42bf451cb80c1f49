// Package pdfcore parses and serializes PDF object syntax.
//
// Basic usage:
//
//	obj, err := pdfcore.Parse([]byte("<< /Type /Catalog /Pages 2 0 R >>"))
//	if err != nil {
//	    // handle error
//	}
//	out := core.Serialize(obj)
//
// For full control over tokenization, reference resolution, and stream
// decoding, the lower-level core package is also available.
package pdfcore

import (
	"io"

	"github.com/docuforge/pdfcore/core"
	"github.com/docuforge/pdfcore/reader"
)

// Parse parses the first PDF object in data.
func Parse(data []byte) (core.Object, error) {
	return core.NewParserBytes(data).ParseObject()
}

// ParseFile reads the file at path and parses the first PDF object in it.
func ParseFile(path string) (core.Object, error) {
	data, err := reader.SlurpBytes(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ParseAll parses every top-level object in data until end of input.
func ParseAll(data []byte) ([]core.Object, error) {
	p := core.NewParserBytes(data)
	var objs []core.Object
	for {
		obj, err := p.ParseObject()
		if err != nil {
			if err == io.EOF {
				return objs, nil
			}
			return nil, err
		}
		objs = append(objs, obj)
	}
}
