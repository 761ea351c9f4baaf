// Package check enforces declared types at assignment, call-argument
// binding and container insertion, and tracks flow-sensitive narrowing of
// union-typed bindings.
package check

import (
	"log/slog"

	"github.com/osier-lang/osier/frontend/ast"
	"github.com/osier-lang/osier/frontend/oserr"
	"github.com/osier-lang/osier/frontend/types"
	"github.com/osier-lang/osier/internal/log"
	"github.com/osier-lang/osier/util"
)

var logger = log.DefaultLogger.With("section", "check")

// Binding is a name with a declared static type. The declared type is fixed
// for the lexical scope; only narrowing may refine what the checker sees.
type Binding struct {
	Name     string
	Declared types.Type
}

// Scope is a lexical scope of bindings with access to its parents.
type Scope struct {
	parent   *Scope
	bindings map[string]*Binding
}

func (s *Scope) lookup(name string) (*Binding, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if b, ok := scope.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Checker checks one function or block at a time. It is not safe for
// concurrent use; run one Checker per goroutine and share the types.Ctx.
type Checker struct {
	ctx    *types.Ctx
	scope  *Scope
	frames util.Stack[*narrowFrame]
	errors *oserr.Errors
	logger *slog.Logger
}

func New(ctx *types.Ctx) *Checker {
	return &Checker{
		ctx:    ctx,
		scope:  &Scope{bindings: make(map[string]*Binding)},
		logger: logger,
	}
}

// Ctx exposes the type context the checker was built with.
func (c *Checker) Ctx() *types.Ctx { return c.ctx }

// Errors is every error this checker reported so far. A checked program
// only compiles when it stays empty.
func (c *Checker) Errors() *oserr.Errors { return c.errors }

// record accumulates err (when there is one) and hands it back, so check
// sites can both collect and propagate.
func (c *Checker) record(err oserr.OsErr) oserr.OsErr {
	if err != nil {
		c.errors = c.errors.With(err)
	}
	return err
}

// EnterScope opens a child lexical scope.
func (c *Checker) EnterScope() {
	c.scope = &Scope{parent: c.scope, bindings: make(map[string]*Binding)}
}

// ExitScope closes the innermost scope; the outermost scope stays open.
func (c *Checker) ExitScope() {
	if c.scope.parent != nil {
		c.scope = c.scope.parent
	}
}

// Declare introduces a binding with a declared type in the current scope.
func (c *Checker) Declare(name string, declared types.Type) *Binding {
	b := &Binding{Name: name, Declared: declared}
	c.scope.bindings[name] = b
	return b
}

func (c *Checker) Lookup(name string) (*Binding, bool) {
	return c.scope.lookup(name)
}

// Assignable checks that a value of type actual can be used where declared
// is expected. The returned error quotes both canonical signatures, so the
// message is identical for every spelling of the same declaration.
func (c *Checker) Assignable(declared, actual types.Type, pos ast.Positioner) oserr.OsErr {
	if c.ctx.IsSubtype(actual, declared) {
		return nil
	}
	return c.record(oserr.New(oserr.NewTypeMismatch{
		Positioner: ast.RangeOf(pos),
		Declared:   declared.Annotation(),
		Actual:     actual.Annotation(),
	}))
}

// Assign checks a reassignment of name against its declared type. A
// successful assignment invalidates any active narrowing of the name: the
// new value is only known to fit the declared type.
func (c *Checker) Assign(name string, actual types.Type, pos ast.Positioner) oserr.OsErr {
	b, ok := c.scope.lookup(name)
	if !ok {
		return c.record(oserr.New(oserr.NewUndefinedBinding{
			Positioner: ast.RangeOf(pos),
			Name:       name,
		}))
	}
	if err := c.Assignable(b.Declared, actual, pos); err != nil {
		return err
	}
	c.invalidateNarrowing(name)
	c.logger.Debug("assignment checked", "name", name, "declared", b.Declared.Display(), "actual", actual.Display())
	return nil
}

// BindArgument checks an actual argument against a declared parameter type.
func (c *Checker) BindArgument(param, actual types.Type, pos ast.Positioner) oserr.OsErr {
	return c.Assignable(param, actual, pos)
}

// Append checks insertion of a value into a list. The element type was
// fixed by the declaration and never widens, even while the list is empty.
func (c *Checker) Append(list *types.ListType, actual types.Type, pos ast.Positioner) oserr.OsErr {
	if c.ctx.IsSubtype(actual, list.Elem) {
		return nil
	}
	return c.record(oserr.New(oserr.NewElementTypeMismatch{
		Positioner: ast.RangeOf(pos),
		Actual:     actual.Annotation(),
		Element:    list.Elem.Annotation(),
		Container:  list.Annotation(),
	}))
}

// Insert checks insertion of a key/value pair into a dict.
func (c *Checker) Insert(dict *types.DictType, key, value types.Type, pos ast.Positioner) oserr.OsErr {
	if !c.ctx.IsSubtype(key, dict.Key) {
		return c.record(oserr.New(oserr.NewElementTypeMismatch{
			Positioner: ast.RangeOf(pos),
			Actual:     key.Annotation(),
			Element:    dict.Key.Annotation(),
			Container:  dict.Annotation(),
		}))
	}
	if !c.ctx.IsSubtype(value, dict.Value) {
		return c.record(oserr.New(oserr.NewElementTypeMismatch{
			Positioner: ast.RangeOf(pos),
			Actual:     value.Annotation(),
			Element:    dict.Value.Annotation(),
			Container:  dict.Annotation(),
		}))
	}
	return nil
}
