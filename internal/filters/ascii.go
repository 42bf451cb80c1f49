package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes hexadecimal-encoded data. Whitespace between
// digits is ignored, '>' ends the data, and an odd trailing digit is
// padded with zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var hi byte
	haveHi := false

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case isSpace(b):
			continue
		case b == '>':
			if haveHi {
				out.WriteByte(hi << 4)
			}
			return out.Bytes(), nil
		case !isHex(b):
			return nil, fmt.Errorf("invalid hex character %q", b)
		case haveHi:
			out.WriteByte(hi<<4 | hexVal(b))
			haveHi = false
		default:
			hi = hexVal(b)
			haveHi = true
		}
	}

	if haveHi {
		out.WriteByte(hi << 4)
	}
	return out.Bytes(), nil
}

// ASCII85Decode decodes base-85 encoded data. Five characters in the
// range '!' to 'u' encode four bytes; 'z' is shorthand for four zero
// bytes; "~>" ends the data. A short final group decodes to one byte
// fewer than its character count.
func ASCII85Decode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	group := make([]byte, 0, 5)

	flush := func() {
		if len(group) < 2 {
			return
		}
		n := len(group) - 1
		for len(group) < 5 {
			group = append(group, 84) // pad with 'u'
		}
		var value uint32
		for _, d := range group {
			value = value*85 + uint32(d)
		}
		for j := 0; j < n; j++ {
			out.WriteByte(byte(value >> (24 - j*8)))
		}
		group = group[:0]
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch {
		case isSpace(b):
			continue
		case b == '~':
			flush()
			return out.Bytes(), nil
		case b == 'z' && len(group) == 0:
			out.Write([]byte{0, 0, 0, 0})
		case b < '!' || b > 'u':
			return nil, fmt.Errorf("invalid base-85 character %q", b)
		default:
			group = append(group, b-'!')
			if len(group) == 5 {
				var value uint32
				for _, d := range group {
					value = value*85 + uint32(d)
				}
				for j := 0; j < 4; j++ {
					out.WriteByte(byte(value >> (24 - j*8)))
				}
				group = group[:0]
			}
		}
	}

	flush()
	return out.Bytes(), nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
