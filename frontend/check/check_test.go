package check

import (
	"testing"

	"github.com/osier-lang/osier/frontend/annot"
	"github.com/osier-lang/osier/frontend/oserr"
	"github.com/osier-lang/osier/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, ctx *types.Ctx, src string) types.Type {
	t.Helper()
	node, err := annot.Parse(src)
	require.NoError(t, err)
	typ, tErr := ctx.FromAnnotation(node)
	require.Nil(t, tErr, "constructing %q: %v", src, tErr)
	return typ
}

func TestUnionWithScalarValues(t *testing.T) {
	c := New(types.NewEmptyCtx())
	declared := mustType(t, c.Ctx(), "Union[int, float]")

	assert.Nil(t, c.BindArgument(declared, types.IntType, nil))
	assert.Nil(t, c.BindArgument(declared, types.FloatType, nil))

	err := c.BindArgument(declared, types.StrType, nil)
	require.NotNil(t, err)
	assert.Equal(t, oserr.TypeMismatch, err.Code())
	assert.Equal(t,
		"Expected a member of Union[float, int] but instead found type str",
		err.Error())
}

func TestUnionWithContainers(t *testing.T) {
	c := New(types.NewEmptyCtx())
	declared := mustType(t, c.Ctx(), "Union[Dict[str, int], List[int]]")

	assert.Nil(t, c.BindArgument(declared, mustType(t, c.Ctx(), "Dict[str, int]"), nil))
	assert.Nil(t, c.BindArgument(declared, mustType(t, c.Ctx(), "List[int]"), nil))

	testCases := []struct {
		actual   string
		expected string
	}{
		{
			"Dict[str, str]",
			"Expected a member of Union[List[int], Dict[str, int]] but instead found type Dict[str, str]",
		},
		{
			"List[str]",
			"Expected a member of Union[List[int], Dict[str, int]] but instead found type List[str]",
		},
		{
			"str",
			"Expected a member of Union[List[int], Dict[str, int]] but instead found type str",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.actual, func(t *testing.T) {
			err := c.BindArgument(declared, mustType(t, c.Ctx(), testCase.actual), nil)
			require.NotNil(t, err)
			assert.Equal(t, testCase.expected, err.Error())
		})
	}
}

func TestUnionWithEnum(t *testing.T) {
	ctx := types.NewCtx(nil, types.StaticRegistry{"Color": types.KindEnum})
	c := New(ctx)
	declared := mustType(t, ctx, "Union[str, Color]")

	assert.Nil(t, c.BindArgument(declared, mustType(t, ctx, "Color"), nil))
	assert.Nil(t, c.BindArgument(declared, types.StrType, nil))

	err := c.BindArgument(declared, types.IntType, nil)
	require.NotNil(t, err)
	assert.Equal(t,
		"Expected a member of Union[Color, str] but instead found type int",
		err.Error())
}

func TestUnionSubtypesLargerUnion(t *testing.T) {
	c := New(types.NewEmptyCtx())
	declared := mustType(t, c.Ctx(), "Union[int, str, Tensor]")
	actual := mustType(t, c.Ctx(), "Union[int, str]")
	assert.Nil(t, c.BindArgument(declared, actual, nil))
}

func TestAssignmentChecksDeclaredType(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, str]"))

	assert.Nil(t, c.Assign("x", types.StrType, nil))
	assert.Nil(t, c.Assign("x", types.IntType, nil), "reassignment across members is fine")

	err := c.Assign("x", types.FloatType, nil)
	require.NotNil(t, err)
	assert.Equal(t, oserr.TypeMismatch, err.Code())

	err = c.Assign("missing", types.IntType, nil)
	require.NotNil(t, err)
	assert.Equal(t, oserr.UndefinedBinding, err.Code())
}

func TestAppendDoesNotWidenElementType(t *testing.T) {
	c := New(types.NewEmptyCtx())

	intList := mustType(t, c.Ctx(), "List[int]").(*types.ListType)
	err := c.Append(intList, types.StrType, nil)
	require.NotNil(t, err)
	assert.Equal(t, oserr.ElementTypeMismatch, err.Code())
	assert.Contains(t, err.Error(), "Could not match type str")

	unionList := mustType(t, c.Ctx(), "List[Union[int, str]]").(*types.ListType)
	assert.Nil(t, c.Append(unionList, types.IntType, nil))
	assert.Nil(t, c.Append(unionList, types.StrType, nil))

	err = c.Append(unionList, types.FloatType, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Could not match type float")
}

func TestAppendToEmptyDeclaredListStillFails(t *testing.T) {
	// the element type comes from the declaration, never from contents:
	// an empty List[int] rejects a str exactly like a populated one
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "List[int]"))

	b, ok := c.Lookup("x")
	require.True(t, ok)
	list, ok := b.Declared.(*types.ListType)
	require.True(t, ok)

	err := c.Append(list, types.StrType, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Could not match type str")
}

func TestDictInsertChecksBothSides(t *testing.T) {
	c := New(types.NewEmptyCtx())
	dict := mustType(t, c.Ctx(), "Dict[str, Union[int, str]]").(*types.DictType)

	assert.Nil(t, c.Insert(dict, types.StrType, types.IntType, nil))
	assert.Nil(t, c.Insert(dict, types.StrType, types.StrType, nil))

	err := c.Insert(dict, types.StrType, types.FloatType, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Could not match type float")

	err = c.Insert(dict, types.IntType, types.IntType, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Could not match type int")
}

func TestScopesShadowAndRestore(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", types.IntType)

	c.EnterScope()
	c.Declare("x", types.StrType)
	b, ok := c.Lookup("x")
	require.True(t, ok)
	assert.True(t, types.Equal(types.StrType, b.Declared))
	c.ExitScope()

	b, ok = c.Lookup("x")
	require.True(t, ok)
	assert.True(t, types.Equal(types.IntType, b.Declared))
}

func TestCheckerAccumulatesErrors(t *testing.T) {
	c := New(types.NewEmptyCtx())
	c.Declare("x", mustType(t, c.Ctx(), "Union[int, str]"))

	assert.False(t, c.Errors().HasError())
	_ = c.Assign("x", types.FloatType, nil)
	_ = c.Assign("missing", types.IntType, nil)
	assert.Nil(t, c.Assign("x", types.IntType, nil))

	require.True(t, c.Errors().HasError())
	assert.Len(t, c.Errors().Errors(), 2)
}

func TestMismatchMessageIsStableAcrossSpellings(t *testing.T) {
	c := New(types.NewEmptyCtx())
	first := mustType(t, c.Ctx(), "Union[int, float]")
	second := mustType(t, c.Ctx(), "Union[float, Union[int, float]]")

	errFirst := c.BindArgument(first, types.StrType, nil)
	errSecond := c.BindArgument(second, types.StrType, nil)
	require.NotNil(t, errFirst)
	require.NotNil(t, errSecond)
	assert.Equal(t, errFirst.Error(), errSecond.Error())
}
