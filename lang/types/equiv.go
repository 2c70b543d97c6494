package types

// Equivalent reports whether a value of type b is acceptable where a value
// of type a is expected. The relation is symmetric except that it is
// short-circuited by the Any and Invalid wildcards, which are equivalent to
// everything.
//
// The rules are:
//   - every base type is equivalent to itself;
//   - arrays are equivalent if their element types are, and an array of
//     Char is additionally equivalent to String;
//   - pairs are equivalent if both element types are;
//   - Null and the ErasedPair placeholder are equivalent to any pair-like
//     type (ErasedPair erases the structure of a pair element, not its
//     pair-ness: it never unifies with a scalar or an array);
//   - Any and Invalid are equivalent to every type.
func Equivalent(a, b Type) bool {
	if isWildcard(a) || isWildcard(b) {
		return true
	}

	switch a := a.(type) {
	case Basic:
		switch a {
		case Null, ErasedPair:
			return isPairLike(b)
		case String:
			if arr, ok := b.(*Array); ok {
				return arr.Elem == Char
			}
			return b == String
		default:
			return a == b
		}

	case *Array:
		if arr, ok := b.(*Array); ok {
			return Equivalent(a.Elem, arr.Elem)
		}
		return b == String && a.Elem == Char

	case *Pair:
		switch b := b.(type) {
		case Basic:
			return b == Null || b == ErasedPair
		case *Pair:
			return Equivalent(a.Fst, b.Fst) && Equivalent(a.Snd, b.Snd)
		}
	}
	return false
}

func isWildcard(t Type) bool {
	return t == Any || t == Invalid
}

// isPairLike returns true if t can stand for a pair value: a concrete pair
// type, the erased placeholder or the null type.
func isPairLike(t Type) bool {
	if _, ok := t.(*Pair); ok {
		return true
	}
	return t == Null || t == ErasedPair
}

// Erase returns the type as it appears in a pair-element position: concrete
// pair types are erased to the ErasedPair placeholder at the first nesting
// level, everything else is unchanged.
func Erase(t Type) Type {
	if _, ok := t.(*Pair); ok {
		return ErasedPair
	}
	if t == Null {
		return ErasedPair
	}
	return t
}

// IsArray returns true if t is an array type.
func IsArray(t Type) bool {
	_, ok := t.(*Array)
	return ok
}

// IsPair returns true if t is a concrete pair type.
func IsPair(t Type) bool {
	_, ok := t.(*Pair)
	return ok
}

// IsHeap returns true if values of type t live on the heap and may be
// freed: arrays and pairs.
func IsHeap(t Type) bool {
	return IsArray(t) || isPairLike(t)
}
