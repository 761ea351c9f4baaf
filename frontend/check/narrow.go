package check

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/osier-lang/osier/frontend/ast"
	"github.com/osier-lang/osier/frontend/oserr"
	"github.com/osier-lang/osier/frontend/types"
)

// Guard is a runtime check recognised as type-discriminating by the branch
// compiler. Each guard names the binding it tests.
type Guard interface {
	GuardedName() string
}

var (
	_ Guard = IsInstance{}
	_ Guard = IsNone{}
	_ Guard = NotNone{}
)

// IsInstance is an `isinstance`-style test of a binding against a type.
// Tested may itself be a union or optional to model testing against several
// alternatives at once.
type IsInstance struct {
	Name   string
	Tested types.Type
}

func (g IsInstance) GuardedName() string { return g.Name }

// IsNone is an explicit `x is None` test.
type IsNone struct {
	Name string
}

func (g IsNone) GuardedName() string { return g.Name }

// NotNone is an explicit `x is not None` test.
type NotNone struct {
	Name string
}

func (g NotNone) GuardedName() string { return g.Name }

// narrowFrame is the set of refinements active inside one guarded region.
// Frames stack: the innermost refinement of a name wins.
type narrowFrame struct {
	overrides map[string]types.Type
}

// EffectiveType is what the checker currently knows about name: the
// innermost active narrowing if there is one, else the declared type.
func (c *Checker) EffectiveType(name string) (types.Type, bool) {
	var found types.Type
	c.frames.All(func(f *narrowFrame) bool {
		if t, ok := f.overrides[name]; ok {
			found = t
			return false
		}
		return true
	})
	if found != nil {
		return found, true
	}
	b, ok := c.scope.lookup(name)
	if !ok {
		return nil, false
	}
	return b.Declared, true
}

// Narrow computes the refined types of the guarded binding on the true and
// false branches of a guard. The true branch keeps the members of the
// current type that satisfy the tested type; the false branch keeps the
// rest, re-normalised (and so possibly collapsed to a bare type). A guard
// that cannot discriminate leaves both branches at the current type.
func (c *Checker) Narrow(guard Guard) (trueBranch, falseBranch types.Type, err oserr.OsErr) {
	name := guard.GuardedName()
	current, ok := c.EffectiveType(name)
	if !ok {
		return nil, nil, c.record(oserr.New(oserr.NewUndefinedBinding{Positioner: ast.Range{}, Name: name}))
	}

	var tested []types.Type
	invert := false
	switch guard := guard.(type) {
	case IsInstance:
		tested = alternatives(guard.Tested)
	case IsNone:
		tested = []types.Type{types.NoneType}
	case NotNone:
		tested = []types.Type{types.NoneType}
		invert = true
	}

	members := alternatives(current)
	matched := set.NewHashSet[types.Type, uint64](len(members))
	for _, m := range members {
		for _, t := range tested {
			if c.ctx.IsSubtype(m, t) {
				matched.Insert(m)
				break
			}
		}
	}

	var trueSet, falseSet []types.Type
	for _, m := range members {
		if matched.Contains(m) {
			trueSet = append(trueSet, m)
		} else {
			falseSet = append(falseSet, m)
		}
	}
	if len(trueSet) == 0 || len(falseSet) == 0 {
		c.logger.Debug("guard does not discriminate", "name", name, "current", current.Display())
		return current, current, nil
	}

	trueBranch, err = c.ctx.NormalizeUnion(trueSet, nil)
	if err != nil {
		return nil, nil, err
	}
	falseBranch, err = c.ctx.NormalizeUnion(falseSet, nil)
	if err != nil {
		return nil, nil, err
	}
	if invert {
		trueBranch, falseBranch = falseBranch, trueBranch
	}
	c.logger.Debug("narrowed binding", "name", name,
		"current", current.Display(), "true", trueBranch.Display(), "false", falseBranch.Display())
	return trueBranch, falseBranch, nil
}

// EnterGuarded begins the lexical region guarded by guard, taking the true
// branch when takeTrue is set. The refinement stays active until the
// matching ExitGuarded, or until the binding is reassigned.
func (c *Checker) EnterGuarded(guard Guard, takeTrue bool) oserr.OsErr {
	trueBranch, falseBranch, err := c.Narrow(guard)
	if err != nil {
		return err
	}
	refined := falseBranch
	if takeTrue {
		refined = trueBranch
	}
	c.frames.Push(&narrowFrame{
		overrides: map[string]types.Type{guard.GuardedName(): refined},
	})
	return nil
}

// ExitGuarded pops the innermost guarded region; the binding reverts to
// whatever the enclosing region knew about it.
func (c *Checker) ExitGuarded() {
	_, _ = c.frames.Pop()
}

func (c *Checker) invalidateNarrowing(name string) {
	c.frames.All(func(f *narrowFrame) bool {
		delete(f.overrides, name)
		return true
	})
}

// alternatives unfolds the top level of a canonical type into the set of
// alternatives a guard can discriminate between.
func alternatives(t types.Type) []types.Type {
	switch t := t.(type) {
	case *types.UnionType:
		return t.Members()
	case *types.OptionalType:
		return []types.Type{t.Elem, types.NoneType}
	default:
		return []types.Type{t}
	}
}
