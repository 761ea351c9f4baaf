package types

// rank fixes the relative order of type families inside a canonical union.
// The order is part of the observable behaviour: error messages and emitted
// signatures quote unions sorted by it, so it must stay stable.
func rank(t Type) int {
	switch t := t.(type) {
	case *Nominal:
		if t.Kind == KindEnum {
			return 0
		}
		return 12
	case *TupleType:
		return 2
	case *ListType:
		return 3
	case *DictType:
		return 4
	case *Primitive:
		switch t.K {
		case Tensor:
			return 1
		case Float:
			return 5
		case Complex:
			return 6
		case Int:
			return 7
		case NoneKind:
			return 8
		case Str:
			return 9
		case Bool:
			return 10
		}
	case *OptionalType:
		return 11
	case *UnionType:
		// unions never survive as members of another union; sorting one
		// only happens transiently during flattening
		return 13
	}
	return 14
}

// canonicalCmp is the total order over union members: by family rank first,
// then by rendered form within a family.
func canonicalCmp(a, b Type) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	da, db := a.Display(), b.Display()
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	default:
		return 0
	}
}

// byCanonical sorts types into canonical order; it also serves as the
// sort.Interface the duplicate-elimination pass runs on.
type byCanonical []Type

func (s byCanonical) Len() int           { return len(s) }
func (s byCanonical) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s byCanonical) Less(i, j int) bool { return canonicalCmp(s[i], s[j]) < 0 }
