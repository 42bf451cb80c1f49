// Package reader provides byte-source utilities for the object parser:
// whole-file reads, position-restoring size queries, and in-place
// inflation of compressed regions. A surrounding document layer uses
// these to hand byte ranges to the core parser.
package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/docuforge/pdfcore/core"
	"github.com/docuforge/pdfcore/internal/filters"
)

// SlurpBytes reads the whole file at path into memory.
func SlurpBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// BytesTillEnd returns the number of bytes between the current position
// of s and its end. The position is restored exactly before returning.
func BytesTillEnd(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end - cur, nil
}

// Inflate reads exactly n zlib-compressed bytes from the current
// position of rs and returns the decompressed payload. The position is
// restored afterward, whether or not decompression succeeds. Malformed
// compressed data yields a core.DecompressionError. The result length is
// not checked against any dictionary-declared size.
func Inflate(rs io.ReadSeeker, n int64) ([]byte, error) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	defer rs.Seek(cur, io.SeekStart)

	compressed := make([]byte, n)
	if _, err := io.ReadFull(rs, compressed); err != nil {
		return nil, fmt.Errorf("reading %d compressed bytes: %w", n, err)
	}

	out, err := filters.Inflate(compressed)
	if err != nil {
		return nil, &core.DecompressionError{Err: err}
	}
	return out, nil
}
