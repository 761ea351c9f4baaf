package check

import (
	"testing"

	"github.com/osier-lang/osier/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotNoneNarrowsOptional(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Optional[int]"))

	trueBranch, falseBranch, err := c.Narrow(NotNone{Name: "x"})
	require.Nil(t, err)
	assert.Equal(t, "int", trueBranch.Display())
	assert.Equal(t, "NoneType", falseBranch.Display())

	require.Nil(t, c.EnterGuarded(NotNone{Name: "x"}, true))
	effective, ok := c.EffectiveType("x")
	require.True(t, ok)
	assert.Equal(t, "int", effective.Display())

	c.ExitGuarded()
	effective, ok = c.EffectiveType("x")
	require.True(t, ok)
	assert.Equal(t, "int?", effective.Display(), "declared type is restored after the guarded region")
}

func TestIsNoneNarrowsOptional(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Optional[int]"))

	trueBranch, falseBranch, err := c.Narrow(IsNone{Name: "x"})
	require.Nil(t, err)
	assert.Equal(t, "NoneType", trueBranch.Display())
	assert.Equal(t, "int", falseBranch.Display())
}

func TestIsInstanceNarrowsUnion(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, str, float]"))

	trueBranch, falseBranch, err := c.Narrow(IsInstance{Name: "x", Tested: types.StrType})
	require.Nil(t, err)
	assert.Equal(t, "str", trueBranch.Display())
	assert.Equal(t, "Union[float, int]", falseBranch.Display(),
		"residual union re-normalises into canonical order")
}

func TestIsInstanceAgainstOptionalTestsBothAlternatives(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, float, None]"))

	tested := mustType(t, c.Ctx(), "Optional[int]")
	trueBranch, falseBranch, err := c.Narrow(IsInstance{Name: "x", Tested: tested})
	require.Nil(t, err)
	assert.Equal(t, "int?", trueBranch.Display())
	assert.Equal(t, "float", falseBranch.Display())
}

func TestFalseBranchCollapsesToBareType(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, str]"))

	require.Nil(t, c.EnterGuarded(IsInstance{Name: "x", Tested: types.IntType}, false))
	effective, ok := c.EffectiveType("x")
	require.True(t, ok)
	assert.Equal(t, "str", effective.Display())
	c.ExitGuarded()
}

func TestNestedNarrowingInnermostWins(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, str, None]"))

	require.Nil(t, c.EnterGuarded(NotNone{Name: "x"}, true))
	effective, _ := c.EffectiveType("x")
	assert.Equal(t, "Union[int, str]", effective.Display())

	require.Nil(t, c.EnterGuarded(IsInstance{Name: "x", Tested: types.StrType}, true))
	effective, _ = c.EffectiveType("x")
	assert.Equal(t, "str", effective.Display())

	c.ExitGuarded()
	effective, _ = c.EffectiveType("x")
	assert.Equal(t, "Union[int, str]", effective.Display())

	c.ExitGuarded()
	effective, _ = c.EffectiveType("x")
	assert.Equal(t, "Union[int, NoneType, str]", effective.Display())
}

func TestReassignmentInvalidatesNarrowing(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Optional[int]"))

	require.Nil(t, c.EnterGuarded(NotNone{Name: "x"}, true))
	effective, _ := c.EffectiveType("x")
	assert.Equal(t, "int", effective.Display())

	require.Nil(t, c.Assign("x", types.NoneType, nil))
	effective, _ = c.EffectiveType("x")
	assert.Equal(t, "int?", effective.Display(),
		"a reassigned binding is only known to fit its declared type")
	c.ExitGuarded()
}

func TestNonDiscriminatingGuardChangesNothing(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", types.IntType)

	trueBranch, falseBranch, err := c.Narrow(NotNone{Name: "x"})
	require.Nil(t, err)
	assert.Equal(t, "int", trueBranch.Display())
	assert.Equal(t, "int", falseBranch.Display())
}

func TestNarrowUndefinedBindingFails(t *testing.T) {
	c := New(types.NewEmptyCtx())
	_, _, err := c.Narrow(NotNone{Name: "missing"})
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "not defined")
}

func TestNarrowingGuardedByInstanceOfSubclass(t *testing.T) {
	ctx := types.NewCtx(
		types.StaticHierarchy{"pets.Cat": "pets.Animal"},
		types.StaticRegistry{"pets.Cat": types.KindClass, "pets.Animal": types.KindClass},
	)
	c := New(ctx)
	cat := mustType(t, ctx, "pets.Cat")
	c.Declare("x", mustType(t, ctx, "Union[pets.Cat, int]"))

	animal := mustType(t, ctx, "pets.Animal")
	trueBranch, falseBranch, err := c.Narrow(IsInstance{Name: "x", Tested: animal})
	require.Nil(t, err)
	assert.True(t, types.Equal(cat, trueBranch), "the declared member stays, not the tested supertype")
	assert.Equal(t, "int", falseBranch.Display())
}
