// Package annot reads source-form type annotations like
// `Union[int, Optional[float]]` into ast.Annot trees.
//
// The surrounding compiler hands annotation trees to the checker directly;
// this reader is the standalone input surface used by the CLI and tests.
package annot

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/osier-lang/osier/frontend/ast"
	"github.com/pkg/errors"
)

// Parse reads a single annotation, requiring the whole input to be consumed.
func Parse(src string) (ast.Annot, error) {
	r := &reader{src: src}
	node, err := r.annot()
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse annotation %q", src)
	}
	r.skipSpace()
	if r.pos != len(r.src) {
		return nil, errors.Errorf("could not parse annotation %q: trailing input at offset %d", src, r.pos)
	}
	return node, nil
}

type reader struct {
	src string
	pos int
}

// tokenPos converts a byte offset to the 1-based token.Pos the ast carries.
func (r *reader) tokenPos(offset int) token.Pos {
	return token.Pos(offset + 1)
}

func (r *reader) skipSpace() {
	for r.pos < len(r.src) && (r.src[r.pos] == ' ' || r.src[r.pos] == '\t') {
		r.pos++
	}
}

func (r *reader) peek() (byte, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// ident reads a possibly qualified name like `colors.Hue`.
func (r *reader) ident() (string, int, error) {
	r.skipSpace()
	start := r.pos
	for r.pos < len(r.src) && isIdentByte(r.src[r.pos]) {
		r.pos++
	}
	if r.pos == start {
		return "", start, errors.Errorf("expected a type name at offset %d", start)
	}
	name := r.src[start:r.pos]
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return "", start, errors.Errorf("malformed qualified name %q at offset %d", name, start)
	}
	return name, start, nil
}

func (r *reader) annot() (ast.Annot, error) {
	name, start, err := r.ident()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if c, ok := r.peek(); !ok || c != '[' {
		return &ast.Named{
			Name:  name,
			Range: ast.Range{PosStart: r.tokenPos(start), PosEnd: r.tokenPos(r.pos)},
		}, nil
	}
	r.pos++ // consume '['

	var args []ast.Annot
	for {
		arg, err := r.annot()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		r.skipSpace()
		c, ok := r.peek()
		if !ok {
			return nil, errors.Errorf("unterminated %q: expected ',' or ']'", name)
		}
		if c == ',' {
			r.pos++
			continue
		}
		if c == ']' {
			r.pos++
			break
		}
		return nil, errors.Errorf("unexpected character %q at offset %d", c, r.pos)
	}
	return &ast.Applied{
		Head:  name,
		Args:  args,
		Range: ast.Range{PosStart: r.tokenPos(start), PosEnd: r.tokenPos(r.pos)},
	}, nil
}
