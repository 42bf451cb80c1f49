package core

import "bytes"

// Equal reports deep structural equality of two objects.
//
// Arrays are equal when they have the same length and pairwise-equal
// elements in order. Dicts are equal when they have the same key set and
// pairwise-equal values, regardless of iteration order. Streams compare
// their dictionaries and raw payload bytes. Indirect objects compare
// their numbers and payloads; references compare numbers only.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok

	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv

	case Int:
		bv, ok := b.(Int)
		return ok && av == bv

	case Real:
		bv, ok := b.(Real)
		return ok && av == bv

	case String:
		bv, ok := b.(String)
		return ok && av == bv

	case Name:
		bv, ok := b.(Name)
		return ok && av == bv

	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case Dict:
		bv, ok := b.(Dict)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true

	case *Stream:
		bv, ok := b.(*Stream)
		return ok && Equal(av.Dict, bv.Dict) && bytes.Equal(av.Data, bv.Data)

	case IndirectRef:
		bv, ok := b.(IndirectRef)
		return ok && av == bv

	case *IndirectObject:
		bv, ok := b.(*IndirectObject)
		return ok && av.Number == bv.Number && av.Generation == bv.Generation &&
			Equal(av.Object, bv.Object)
	}

	return false
}
