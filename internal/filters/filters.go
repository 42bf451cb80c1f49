// Package filters implements the stream decoding filters this module
// supports: FlateDecode (zlib/deflate, with TIFF and PNG predictors),
// ASCIIHexDecode, ASCII85Decode, and CCITTFaxDecode.
package filters

// Params holds decode parameters from a stream's /DecodeParms
// dictionary, lowered to primitive Go types. Common keys are Predictor,
// Columns, Colors, and BitsPerComponent.
type Params map[string]interface{}

// intParam returns the named integer parameter or def when missing.
func intParam(params Params, key string, def int) int {
	if params == nil {
		return def
	}
	if v, ok := params[key].(int); ok {
		return v
	}
	return def
}

// boolParam returns the named boolean parameter or def when missing.
func boolParam(params Params, key string, def bool) bool {
	if params == nil {
		return def
	}
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
