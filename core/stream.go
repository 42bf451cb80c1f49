package core

import (
	"fmt"

	"github.com/docuforge/pdfcore/internal/filters"
)

// Decode decodes the stream payload according to the /Filter entry (a
// single name or a chain) and /DecodeParms. The decoded bytes are cached
// on first use. Returns a DecompressionError when a compressed payload
// is malformed.
func (s *Stream) Decode() ([]byte, error) {
	if s.decoded != nil {
		return s.decoded, nil
	}

	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")

	var (
		data []byte
		err  error
	)
	switch f := filterObj.(type) {
	case Name:
		data, err = applyFilter(s.Data, string(f), paramsDict(paramsObj))

	case Array:
		data = s.Data
		for i, filter := range f {
			name, ok := filter.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %v", i, filter.Type())
			}

			// A params array pairs with the filter array index-wise;
			// a single dict applies to every filter.
			var params Dict
			if paramsArray, ok := paramsObj.(Array); ok {
				if i < len(paramsArray) {
					params = paramsDict(paramsArray[i])
				}
			} else {
				params = paramsDict(paramsObj)
			}

			data, err = applyFilter(data, string(name), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
			}
		}

	default:
		return nil, fmt.Errorf("invalid /Filter type: %v", filterObj.Type())
	}

	if err != nil {
		return nil, err
	}
	s.decoded = data
	return data, nil
}

// applyFilter applies a single decoding filter by its PDF name or
// abbreviation.
func applyFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		out, err := filters.FlateDecode(data, filterParams(params))
		if err != nil {
			return nil, &DecompressionError{Err: err}
		}
		return out, nil

	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)

	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, filterParams(params))

	default:
		return nil, fmt.Errorf("unsupported filter: %s", filterName)
	}
}

// paramsDict normalizes a /DecodeParms entry to a Dict; null and absent
// entries mean no parameters.
func paramsDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// filterParams lowers a parameter dictionary to the primitive types the
// filters package works with.
func filterParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params)
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
