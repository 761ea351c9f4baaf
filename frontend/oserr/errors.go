package oserr

import (
	"fmt"
	"github.com/osier-lang/osier/frontend/ast"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	MalformedAnnotation
	TypeMismatch
	ElementTypeMismatch
	UnsupportedUnionUsage
	UndefinedBinding
)

type OsErr interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) OsErr
	getStack() []byte
}

func FormatWithCode(e OsErr) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E OsErr](err E) OsErr {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}

// NewMalformedAnnotation reports a type annotation whose shape is invalid,
// such as a Dict with one argument or an empty Union.
type NewMalformedAnnotation struct {
	ast.Positioner
	Ctor   string
	Detail string
	stack  []byte
}

func (e NewMalformedAnnotation) Error() string {
	return fmt.Sprintf("malformed annotation '%s': %s", e.Ctor, e.Detail)
}
func (e NewMalformedAnnotation) Code() ErrCode    { return MalformedAnnotation }
func (e NewMalformedAnnotation) getStack() []byte { return e.stack }
func (e NewMalformedAnnotation) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}

// NewTypeMismatch reports a value whose type is not a member of the declared
// type at an assignment, argument-binding or return site.
//
// Declared and Actual are canonical annotation renderings: the message is
// stable across semantically equivalent spellings of the same declaration.
type NewTypeMismatch struct {
	ast.Positioner
	Declared string
	Actual   string
	stack    []byte
}

func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("Expected a member of %s but instead found type %s", e.Declared, e.Actual)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}

// NewElementTypeMismatch reports a container insertion whose value does not
// match the container's declared element type. The declared element type
// never widens to admit the value, even when the container is still empty.
type NewElementTypeMismatch struct {
	ast.Positioner
	Actual    string
	Element   string
	Container string
	stack     []byte
}

func (e NewElementTypeMismatch) Error() string {
	return fmt.Sprintf("Could not match type %s to the element type %s of %s", e.Actual, e.Element, e.Container)
}
func (e NewElementTypeMismatch) Code() ErrCode    { return ElementTypeMismatch }
func (e NewElementTypeMismatch) getStack() []byte { return e.stack }
func (e NewElementTypeMismatch) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}

// NewUnsupportedUnionUsage reports a union in a position the checker does not
// support, like a mapping key.
type NewUnsupportedUnionUsage struct {
	ast.Positioner
	Found string
	stack []byte
}

func (e NewUnsupportedUnionUsage) Error() string {
	return fmt.Sprintf("found %s as a Dict key: only int, float, complex, Tensor and string keys are supported", e.Found)
}
func (e NewUnsupportedUnionUsage) Code() ErrCode    { return UnsupportedUnionUsage }
func (e NewUnsupportedUnionUsage) getStack() []byte { return e.stack }
func (e NewUnsupportedUnionUsage) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}

type NewUndefinedBinding struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedBinding) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedBinding) Code() ErrCode    { return UndefinedBinding }
func (e NewUndefinedBinding) getStack() []byte { return e.stack }
func (e NewUndefinedBinding) withStack(stack []byte) OsErr {
	e.stack = stack
	return e
}
