package types

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
	"github.com/osier-lang/osier/frontend/ast"
	"github.com/osier-lang/osier/frontend/oserr"
)

var builtinNamed = map[string]Type{
	"int":      IntType,
	"float":    FloatType,
	"complex":  ComplexType,
	"bool":     BoolType,
	"str":      StrType,
	"Tensor":   TensorType,
	"None":     NoneType,
	"NoneType": NoneType,
}

var validKeyKinds = set.From([]PrimKind{Int, Float, Complex, Str, Tensor})

// FromAnnotation builds the canonical Type for an annotation tree. Shape
// errors (wrong arity, unknown constructors, unsupported Dict keys) surface
// here and nowhere later: a Type that exists is well-formed.
func (ctx *Ctx) FromAnnotation(node ast.Annot) (Type, oserr.OsErr) {
	switch node := node.(type) {
	case *ast.Named:
		return ctx.fromNamed(node)
	case *ast.Applied:
		return ctx.fromApplied(node)
	}
	return nil, oserr.New(oserr.NewMalformedAnnotation{
		Positioner: ast.RangeOf(node),
		Ctor:       fmt.Sprintf("%T", node),
		Detail:     "not a recognised annotation node",
	})
}

func (ctx *Ctx) fromNamed(node *ast.Named) (Type, oserr.OsErr) {
	if t, ok := builtinNamed[node.Name]; ok {
		return t, nil
	}
	if ctx.registry == nil {
		// no registry injected: treat any unknown name as a class
		return Intern(&Nominal{Name: node.Name, Kind: KindClass}), nil
	}
	kind, ok := ctx.registry.KindOf(node.Name)
	if !ok {
		return nil, oserr.New(oserr.NewMalformedAnnotation{
			Positioner: ast.RangeOf(node),
			Ctor:       node.Name,
			Detail:     "unknown type name",
		})
	}
	return Intern(&Nominal{Name: node.Name, Kind: kind}), nil
}

func (ctx *Ctx) fromApplied(node *ast.Applied) (Type, oserr.OsErr) {
	args, err := ctx.fromArgs(node)
	if err != nil {
		return nil, err
	}
	switch node.Head {
	case "List":
		if len(args) != 1 {
			return nil, arityErr(node, 1, len(args))
		}
		return Intern(&ListType{Elem: args[0]}), nil
	case "Optional":
		if len(args) != 1 {
			return nil, arityErr(node, 1, len(args))
		}
		return ctx.NormalizeUnion([]Type{args[0], NoneType}, node)
	case "Dict":
		if len(args) != 2 {
			return nil, arityErr(node, 2, len(args))
		}
		if key, ok := args[0].(*Primitive); !ok || !validKeyKinds.Contains(key.K) {
			return nil, oserr.New(oserr.NewUnsupportedUnionUsage{
				Positioner: ast.RangeOf(node),
				Found:      args[0].Annotation(),
			})
		}
		return Intern(&DictType{Key: args[0], Value: args[1]}), nil
	case "Tuple":
		if len(args) == 0 {
			return nil, oserr.New(oserr.NewMalformedAnnotation{
				Positioner: ast.RangeOf(node),
				Ctor:       "Tuple",
				Detail:     "expected at least 1 type argument, got 0",
			})
		}
		return Intern(&TupleType{Elems: args}), nil
	case "Union":
		return ctx.NormalizeUnion(args, node)
	}
	return nil, oserr.New(oserr.NewMalformedAnnotation{
		Positioner: ast.RangeOf(node),
		Ctor:       node.Head,
		Detail:     "not a generic type constructor",
	})
}

func (ctx *Ctx) fromArgs(node *ast.Applied) ([]Type, oserr.OsErr) {
	args := make([]Type, 0, len(node.Args))
	for _, arg := range node.Args {
		t, err := ctx.FromAnnotation(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	return args, nil
}

func arityErr(node *ast.Applied, want, got int) oserr.OsErr {
	return oserr.New(oserr.NewMalformedAnnotation{
		Positioner: ast.RangeOf(node),
		Ctor:       node.Head,
		Detail:     fmt.Sprintf("expected %d type argument(s), got %d", want, got),
	})
}
