package types

import (
	"log/slog"
	"sort"

	"github.com/hashicorp/go-set/v3"
	"github.com/osier-lang/osier/frontend/ast"
	"github.com/osier-lang/osier/frontend/oserr"
	xset "github.com/xtgo/set"
)

// NormalizeUnion turns the members of a written `Union[...]` into the
// canonical type:
//
//  1. nested unions and optionals are flattened to a fixed point
//  2. exact duplicates are removed
//  3. a member that is a subtype of another member is absorbed by it
//  4. members are sorted into canonical order
//  5. a single surviving member is returned bare, and a `{T, None}` pair
//     becomes `Optional[T]`
//
// The result does not depend on the order members were written in, and
// normalizing an already-canonical union is a no-op.
func (ctx *Ctx) NormalizeUnion(members []Type, pos ast.Positioner) (res Type, err oserr.OsErr) {
	n := unionNormaliser{
		Logger: ctx.logger,
		Ctx:    ctx,
	}
	defer func() {
		if err == nil {
			n.Debug("normalised union", "members", len(members), "result", res.Display())
		}
	}()

	for _, m := range members {
		n.add(m)
	}
	if len(n.flat) == 0 {
		return nil, oserr.New(oserr.NewMalformedAnnotation{
			Positioner: ast.RangeOf(pos),
			Ctor:       "Union",
			Detail:     "cannot build a union of no types",
		})
	}

	sort.Sort(byCanonical(n.flat))
	flat := n.flat[:xset.Uniq(byCanonical(n.flat))]
	kept := ctx.absorb(flat)

	if len(kept) == 1 {
		return Intern(kept[0]), nil
	}
	if t, ok := asOptional(kept); ok {
		return Intern(t), nil
	}
	return Intern(&UnionType{members: kept}), nil
}

type unionNormaliser struct {
	*slog.Logger
	*Ctx
	flat []Type
}

// add inlines unions and optionals recursively; recursion is bounded by the
// literal nesting of the annotation.
func (n *unionNormaliser) add(t Type) {
	switch t := t.(type) {
	case *UnionType:
		for _, m := range t.members {
			n.add(m)
		}
	case *OptionalType:
		n.add(t.Elem)
		n.add(NoneType)
	default:
		n.flat = append(n.flat, t)
	}
}

// absorb drops every member that another member already subsumes. The input
// is sorted and duplicate-free; when two distinct members are mutually
// subtype-equivalent the earlier one in canonical order survives.
func (ctx *Ctx) absorb(flat []Type) []Type {
	dropped := set.New[int](0)
	for i := range flat {
		if dropped.Contains(i) {
			continue
		}
		for j := range flat {
			if i == j || dropped.Contains(j) {
				continue
			}
			if !ctx.IsSubtype(flat[i], flat[j]) {
				continue
			}
			if ctx.IsSubtype(flat[j], flat[i]) && i < j {
				continue
			}
			dropped.Insert(i)
			break
		}
	}
	kept := make([]Type, 0, len(flat)-dropped.Size())
	for i, t := range flat {
		if !dropped.Contains(i) {
			kept = append(kept, t)
		}
	}
	return kept
}

// asOptional recognises the canonical `{T, None}` pair.
func asOptional(members []Type) (Type, bool) {
	if len(members) != 2 {
		return nil, false
	}
	for i, m := range members {
		if p, ok := m.(*Primitive); ok && p.K == NoneKind {
			return &OptionalType{Elem: members[1-i]}, true
		}
	}
	return nil, false
}
