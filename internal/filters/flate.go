package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecode decompresses zlib/deflate compressed data, the most common
// stream encoding in PDFs. When the parameters name a Predictor other
// than 1, the corresponding de-prediction pass runs on the inflated
// bytes.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	out, err := Inflate(data)
	if err != nil {
		return nil, err
	}

	predictor := intParam(params, "Predictor", 1)
	if predictor != 1 {
		out, err = undoPredictor(out, predictor, params)
		if err != nil {
			return nil, fmt.Errorf("predictor %d: %w", predictor, err)
		}
	}

	return out, nil
}

// Inflate decompresses a zlib-wrapped deflate payload.
func Inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	return buf.Bytes(), nil
}

// undoPredictor reverses the prediction pass applied before compression.
// Predictor 2 is TIFF horizontal differencing; 10-15 are the PNG row
// filters, selected per row by a leading tag byte.
func undoPredictor(data []byte, predictor int, params Params) ([]byte, error) {
	switch {
	case predictor == 2:
		return undoTIFFPredictor(data, params)
	case predictor >= 10 && predictor <= 15:
		return undoPNGPredictor(data, params)
	}
	return nil, fmt.Errorf("unsupported predictor value")
}

func undoTIFFPredictor(data []byte, params Params) ([]byte, error) {
	columns := intParam(params, "Columns", 1)
	colors := intParam(params, "Colors", 1)
	bpc := intParam(params, "BitsPerComponent", 8)

	if bpc != 8 {
		return nil, fmt.Errorf("only 8 bits per component supported, got %d", bpc)
	}

	rowSize := columns * colors
	if rowSize <= 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	out := make([]byte, len(data))
	for row := 0; row < len(data)/rowSize; row++ {
		start := row * rowSize
		for col := 0; col < rowSize; col++ {
			i := start + col
			if col < colors {
				out[i] = data[i]
			} else {
				out[i] = data[i] + out[i-colors]
			}
		}
	}
	return out, nil
}

func undoPNGPredictor(data []byte, params Params) ([]byte, error) {
	columns := intParam(params, "Columns", 1)
	colors := intParam(params, "Colors", 1)
	bpc := intParam(params, "BitsPerComponent", 8)

	if bpc != 8 {
		return nil, fmt.Errorf("only 8 bits per component supported, got %d", bpc)
	}

	bpp := colors
	rowSize := columns * colors
	// Each encoded row carries a leading filter-tag byte.
	if rowSize <= 0 || len(data)%(rowSize+1) != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize+1)
	}

	rows := len(data) / (rowSize + 1)
	out := make([]byte, rows*rowSize)

	for row := 0; row < rows; row++ {
		tag := data[row*(rowSize+1)]
		src := data[row*(rowSize+1)+1 : (row+1)*(rowSize+1)]
		cur := out[row*rowSize : (row+1)*rowSize]
		var prev []byte
		if row > 0 {
			prev = out[(row-1)*rowSize : row*rowSize]
		}

		for i := 0; i < rowSize; i++ {
			var left, up, upLeft byte
			if i >= bpp {
				left = cur[i-bpp]
			}
			if prev != nil {
				up = prev[i]
				if i >= bpp {
					upLeft = prev[i-bpp]
				}
			}

			var predicted byte
			switch tag {
			case 0: // None
			case 1: // Sub
				predicted = left
			case 2: // Up
				predicted = up
			case 3: // Average
				predicted = byte((int(left) + int(up)) / 2)
			case 4: // Paeth
				predicted = paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("unknown row filter %d in row %d", tag, row)
			}
			cur[i] = src[i] + predicted
		}
	}

	return out, nil
}

// paeth picks the neighbor closest to the linear prediction left+up-upLeft,
// as defined by the PNG specification.
func paeth(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pa := abs(p - int(left))
	pb := abs(p - int(up))
	pc := abs(p - int(upLeft))

	if pa <= pb && pa <= pc {
		return left
	}
	if pb <= pc {
		return up
	}
	return upLeft
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
