package types

// IsSubtype decides whether a value of type `a` is acceptable where `b` is
// declared.
//
// Containers are treated covariantly (`List[A] <: List[B]` whenever
// `A <: B`). This is unsound for mutable containers and is kept on purpose:
// the source language ships with this policy and error behaviour depends
// on it.
func (ctx *Ctx) IsSubtype(a, b Type) bool {
	if Equal(a, b) {
		return true
	}
	// a union or optional on the left fits b iff every alternative does
	if a, ok := a.(*UnionType); ok {
		for _, m := range a.members {
			if !ctx.IsSubtype(m, b) {
				return false
			}
		}
		return true
	}
	if a, ok := a.(*OptionalType); ok {
		return ctx.IsSubtype(a.Elem, b) && ctx.IsSubtype(NoneType, b)
	}

	switch b := b.(type) {
	case *UnionType:
		for _, m := range b.members {
			if ctx.IsSubtype(a, m) {
				return true
			}
		}
		return false
	case *OptionalType:
		if a, ok := a.(*Primitive); ok && a.K == NoneKind {
			return true
		}
		return ctx.IsSubtype(a, b.Elem)
	case *ListType:
		a, ok := a.(*ListType)
		return ok && ctx.IsSubtype(a.Elem, b.Elem)
	case *DictType:
		a, ok := a.(*DictType)
		return ok && ctx.IsSubtype(a.Key, b.Key) && ctx.IsSubtype(a.Value, b.Value)
	case *TupleType:
		a, ok := a.(*TupleType)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !ctx.IsSubtype(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *Nominal:
		a, ok := a.(*Nominal)
		if !ok || a.Kind != b.Kind {
			return false
		}
		if a.Name == b.Name {
			return true
		}
		// enums have no hierarchy: identity only
		if b.Kind == KindEnum {
			return false
		}
		return ctx.hierarchy != nil && ctx.hierarchy.IsSubclass(a.Name, b.Name)
	case *Primitive:
		// identity only: int is not silently a float here
		a, ok := a.(*Primitive)
		return ok && a.K == b.K
	}
	return false
}

// IsMember reports whether a concrete value of type `actual` satisfies the
// declared type. For unions this is membership; for anything else it is
// plain subtyping.
func (ctx *Ctx) IsMember(actual, declared Type) bool {
	return ctx.IsSubtype(actual, declared)
}
