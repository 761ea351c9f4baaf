package types

import (
	"github.com/osier-lang/osier/internal/log"
	"log/slog"
)

var logger = log.DefaultLogger.With("section", "types")

// ClassHierarchy resolves nominal class subtyping. It is supplied by the
// surrounding compiler; the checker core never inspects class bodies.
type ClassHierarchy interface {
	IsSubclass(sub, super string) bool
}

// NominalRegistry resolves a qualified name to its nominal kind.
type NominalRegistry interface {
	KindOf(qualified string) (NominalKind, bool)
}

// Ctx carries the injected resolvers needed for subtype checks and
// annotation construction. It holds no mutable state: a single Ctx is safe
// to share across concurrent analyses.
type Ctx struct {
	hierarchy ClassHierarchy
	registry  NominalRegistry
	logger    *slog.Logger
}

// NewCtx builds a Ctx. Either resolver may be nil: with a nil hierarchy no
// two distinct classes are related, and with a nil registry every unknown
// type name resolves as a class.
func NewCtx(hierarchy ClassHierarchy, registry NominalRegistry) *Ctx {
	return &Ctx{
		hierarchy: hierarchy,
		registry:  registry,
		logger:    logger,
	}
}

// NewEmptyCtx is a Ctx with no nominal environment at all.
func NewEmptyCtx() *Ctx {
	return NewCtx(nil, nil)
}

// StaticHierarchy is a ClassHierarchy backed by a child-to-parent map.
type StaticHierarchy map[string]string

func (h StaticHierarchy) IsSubclass(sub, super string) bool {
	for name := sub; name != ""; name = h[name] {
		if name == super {
			return true
		}
	}
	return false
}

// StaticRegistry is a NominalRegistry backed by a plain map.
type StaticRegistry map[string]NominalKind

func (r StaticRegistry) KindOf(qualified string) (NominalKind, bool) {
	kind, ok := r[qualified]
	return kind, ok
}

var (
	_ ClassHierarchy  = (StaticHierarchy)(nil)
	_ NominalRegistry = (StaticRegistry)(nil)
)
