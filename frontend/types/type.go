package types

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
)

// Type is the canonical, immutable representation of a static type.
// Values are never mutated after construction, so they can be shared freely
// across concurrent analyses.
//
// Every Type has two textual forms:
//
//   - Display is the compact graph form: `int[]`, `int?`, `(int?, int)`,
//     `Dict(str, int)`, `NoneType`.
//   - Annotation is the source form: `List[int]`, `Optional[int]`,
//     `Tuple[int, int]`, `Dict[str, int]`, `None`.
type Type interface {
	Display() string
	Annotation() string
	Hash() uint64
}

var (
	_ Type = (*Primitive)(nil)
	_ Type = (*ListType)(nil)
	_ Type = (*DictType)(nil)
	_ Type = (*TupleType)(nil)
	_ Type = (*OptionalType)(nil)
	_ Type = (*Nominal)(nil)
	_ Type = (*UnionType)(nil)
)

type PrimKind uint8

const (
	Int PrimKind = iota
	Float
	Complex
	Bool
	Str
	Tensor
	NoneKind
)

func (k PrimKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Tensor:
		return "Tensor"
	case NoneKind:
		return "NoneType"
	default:
		return "invalid"
	}
}

type Primitive struct {
	K PrimKind
}

// shared instances for the common primitives; construction sites may also
// build their own, structural equality makes them interchangeable
var (
	IntType     = &Primitive{K: Int}
	FloatType   = &Primitive{K: Float}
	ComplexType = &Primitive{K: Complex}
	BoolType    = &Primitive{K: Bool}
	StrType     = &Primitive{K: Str}
	TensorType  = &Primitive{K: Tensor}
	NoneType    = &Primitive{K: NoneKind}
)

func (t *Primitive) Display() string { return t.K.String() }

func (t *Primitive) Annotation() string {
	if t.K == NoneKind {
		return "None"
	}
	return t.K.String()
}

func (t *Primitive) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Primitive"))
	_, _ = h.Write([]byte{byte(t.K)})
	return h.Sum64()
}

// ListType is a homogeneous list.
type ListType struct {
	Elem Type
}

func (t *ListType) Display() string    { return t.Elem.Display() + "[]" }
func (t *ListType) Annotation() string { return "List[" + t.Elem.Annotation() + "]" }

func (t *ListType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("ListType"))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, t.Elem.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

type DictType struct {
	Key, Value Type
}

func (t *DictType) Display() string {
	return "Dict(" + t.Key.Display() + ", " + t.Value.Display() + ")"
}
func (t *DictType) Annotation() string {
	return "Dict[" + t.Key.Annotation() + ", " + t.Value.Annotation() + "]"
}

func (t *DictType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("DictType"))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, t.Key.Hash())
	arr = binary.LittleEndian.AppendUint64(arr, t.Value.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// TupleType is an ordered, fixed-arity product. Element order is significant.
type TupleType struct {
	Elems []Type
}

func (t *TupleType) Display() string {
	sb := strings.Builder{}
	sb.WriteString("(")
	for i, elem := range t.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.Display())
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *TupleType) Annotation() string {
	sb := strings.Builder{}
	sb.WriteString("Tuple[")
	for i, elem := range t.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.Annotation())
	}
	sb.WriteString("]")
	return sb.String()
}

func (t *TupleType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TupleType"))
	arr := make([]byte, 0)
	for _, elem := range t.Elems {
		arr = binary.LittleEndian.AppendUint64(arr, elem.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// OptionalType is the canonical form of a two-member union of Elem and None.
// NormalizeUnion produces it for both spellings (`Optional[T]` and
// `Union[T, None]`), so the two are indistinguishable downstream.
type OptionalType struct {
	Elem Type
}

func (t *OptionalType) Display() string    { return t.Elem.Display() + "?" }
func (t *OptionalType) Annotation() string { return "Optional[" + t.Elem.Annotation() + "]" }

func (t *OptionalType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("OptionalType"))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, t.Elem.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

type NominalKind uint8

const (
	_ NominalKind = iota
	KindClass
	KindEnum
)

func (k NominalKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Nominal is a user-defined class or enum, identified by qualified name.
type Nominal struct {
	Name string
	Kind NominalKind
}

func (t *Nominal) Display() string    { return t.Name }
func (t *Nominal) Annotation() string { return t.Name }

func (t *Nominal) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Nominal"))
	_, _ = h.Write([]byte{byte(t.Kind)})
	_, _ = h.Write([]byte(t.Name))
	return h.Sum64()
}

// UnionType holds two or more alternatives in canonical order.
// It is only ever built by NormalizeUnion, which upholds the invariants:
// no member is itself a union or optional, no member subsumes another,
// and exactly-two-member unions containing None degrade to OptionalType.
type UnionType struct {
	members []Type
}

// Members returns the canonical member list. Callers must not mutate it.
func (t *UnionType) Members() []Type { return t.members }

func (t *UnionType) Display() string {
	sb := strings.Builder{}
	sb.WriteString("Union[")
	for i, m := range t.members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Display())
	}
	sb.WriteString("]")
	return sb.String()
}

func (t *UnionType) Annotation() string {
	sb := strings.Builder{}
	sb.WriteString("Union[")
	for i, m := range t.members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.Annotation())
	}
	sb.WriteString("]")
	return sb.String()
}

func (t *UnionType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("UnionType"))
	arr := make([]byte, 0)
	for _, m := range t.members {
		arr = binary.LittleEndian.AppendUint64(arr, m.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Equal is structural equality. Union members compare pointwise, which is
// sound because both sides are in canonical order.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.K == b.K
	case *ListType:
		b, ok := b.(*ListType)
		return ok && Equal(a.Elem, b.Elem)
	case *DictType:
		b, ok := b.(*DictType)
		return ok && Equal(a.Key, b.Key) && Equal(a.Value, b.Value)
	case *TupleType:
		b, ok := b.(*TupleType)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case *OptionalType:
		b, ok := b.(*OptionalType)
		return ok && Equal(a.Elem, b.Elem)
	case *Nominal:
		b, ok := b.(*Nominal)
		return ok && a.Kind == b.Kind && a.Name == b.Name
	case *UnionType:
		b, ok := b.(*UnionType)
		if !ok || len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if !Equal(a.members[i], b.members[i]) {
				return false
			}
		}
		return true
	}
	return false
}
