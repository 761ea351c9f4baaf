package ast

import "strings"

// Annot is a raw type annotation as written in source, before any
// normalisation. Annotations arrive here already syntactically validated;
// shape checks (arity, known constructors) happen at type construction.
type Annot interface {
	Positioner
	annotNode()
	String() string
}

var (
	_ Annot = (*Named)(nil)
	_ Annot = (*Applied)(nil)
)

// Named is a bare type name, possibly qualified, like `int` or `colors.Hue`.
type Named struct {
	Name string
	Range
}

func (a *Named) annotNode()     {}
func (a *Named) String() string { return a.Name }

// Applied is a generic constructor applied to arguments,
// like `List[int]` or `Union[int, str]`.
type Applied struct {
	Head string
	Args []Annot
	Range
}

func (a *Applied) annotNode() {}

func (a *Applied) String() string {
	sb := strings.Builder{}
	sb.WriteString(a.Head)
	sb.WriteString("[")
	for i, arg := range a.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteString("]")
	return sb.String()
}
