// Package fixture reads and writes a small S-expression-shaped textual
// format for hand-assembling ast.Node trees. It exists for the CLI demo,
// the MCP server, and golden tests; it is a debug construction helper, not
// a language front end — the real lexer/parser and grammar live outside
// this repository, and nothing here tokenizes language syntax.
package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
)

// Parse reads one fixture document from src and returns the Module it
// describes. The top-level form must be (module ...). file is recorded in
// every node's source location.
func Parse(file string, src []byte) (*ast.Node, error) {
	p := &reader{file: file, src: string(src), line: 1, col: 1}
	x, err := p.readForm()
	if err != nil {
		return nil, domain.NewFixtureError(fmt.Sprintf("%s: malformed fixture", file), err)
	}
	p.skipSpace()
	if !p.eof() {
		return nil, domain.NewFixtureError(fmt.Sprintf("%s: trailing content after top-level form", file), nil)
	}
	node, err := build(x)
	if err != nil {
		return nil, domain.NewFixtureError(fmt.Sprintf("%s: invalid fixture", file), err)
	}
	if node.Tag != ast.TagModule {
		return nil, domain.NewFixtureError(fmt.Sprintf("%s: top-level form must be (module ...)", file), nil)
	}
	return node, nil
}

// form is the raw S-expression shape Parse reads before translating it into
// AST nodes: either a leaf atom (symbol, number, or quoted string) or a
// parenthesized list of sub-forms.
type form struct {
	atom   string
	quoted bool
	list   []*form
	isList bool
	loc    ast.Location
}

type reader struct {
	file string
	src  string
	pos  int
	line int
	col  int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() byte { return r.src[r.pos] }

func (r *reader) advance() byte {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) here() ast.Location {
	return ast.Location{File: r.file, StartLine: r.line, StartCol: r.col}
}

func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		if c == ';' {
			for !r.eof() && r.peek() != '\n' {
				r.advance()
			}
			continue
		}
		if !unicode.IsSpace(rune(c)) {
			return
		}
		r.advance()
	}
}

func (r *reader) readForm() (*form, error) {
	r.skipSpace()
	if r.eof() {
		return nil, fmt.Errorf("fixture: unexpected end of input at %s", r.here())
	}
	loc := r.here()
	switch r.peek() {
	case '(':
		r.advance()
		f := &form{isList: true, loc: loc}
		for {
			r.skipSpace()
			if r.eof() {
				return nil, fmt.Errorf("fixture: unclosed list started at %s", loc)
			}
			if r.peek() == ')' {
				r.advance()
				return f, nil
			}
			sub, err := r.readForm()
			if err != nil {
				return nil, err
			}
			f.list = append(f.list, sub)
		}
	case ')':
		return nil, fmt.Errorf("fixture: unexpected ')' at %s", loc)
	case '"':
		r.advance()
		var sb strings.Builder
		for {
			if r.eof() {
				return nil, fmt.Errorf("fixture: unclosed string at %s", loc)
			}
			c := r.advance()
			if c == '"' {
				return &form{atom: sb.String(), quoted: true, loc: loc}, nil
			}
			if c == '\\' && !r.eof() {
				switch e := r.advance(); e {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				default:
					sb.WriteByte(e)
				}
				continue
			}
			sb.WriteByte(c)
		}
	default:
		var sb strings.Builder
		for !r.eof() {
			c := r.peek()
			if c == '(' || c == ')' || c == '"' || c == ';' || unicode.IsSpace(rune(c)) {
				break
			}
			sb.WriteByte(r.advance())
		}
		return &form{atom: sb.String(), loc: loc}, nil
	}
}

// build translates one raw form into its ast.Node.
func build(x *form) (*ast.Node, error) {
	if !x.isList {
		return buildLeaf(x), nil
	}
	if len(x.list) == 0 || x.list[0].isList {
		return nil, fmt.Errorf("fixture: list at %s must start with a symbol", x.loc)
	}
	head := x.list[0].atom
	rest := x.list[1:]
	switch head {
	case "module":
		m := ast.NewModule(x.loc)
		if err := appendStatements(m, rest); err != nil {
			return nil, err
		}
		return m, nil
	case "scope":
		s := ast.NewScope(x.loc)
		if err := appendStatements(s, rest); err != nil {
			return nil, err
		}
		return s, nil
	case "def":
		if len(rest) != 2 || rest[0].isList || rest[0].quoted {
			return nil, fmt.Errorf("fixture: (def name target) expected at %s", x.loc)
		}
		target, err := build(rest[1])
		if err != nil {
			return nil, err
		}
		return ast.NewDefinition(rest[0].atom, target, x.loc), nil
	case "int":
		return buildIntType(x, rest)
	case "float":
		if len(rest) != 1 {
			return nil, fmt.Errorf("fixture: (float bits) expected at %s", x.loc)
		}
		bits, err := atomInt(rest[0])
		if err != nil {
			return nil, err
		}
		return &ast.Node{Tag: ast.TagFloatTypeSpec, Bits: bits, Location: x.loc}, nil
	case "ptr", "ref":
		if len(rest) != 1 {
			return nil, fmt.Errorf("fixture: (%s type) expected at %s", head, x.loc)
		}
		inner, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		tag := ast.TagPointerTypeSpec
		if head == "ref" {
			tag = ast.TagReferenceTypeSpec
		}
		n := &ast.Node{Tag: tag, Location: x.loc}
		n.SetOf(inner)
		return n, nil
	case "array":
		if len(rest) != 2 {
			return nil, fmt.Errorf("fixture: (array type length) expected at %s", x.loc)
		}
		inner, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		length, err := atomInt(rest[1])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagArrayTypeSpec, Length: length, Location: x.loc}
		n.SetOf(inner)
		return n, nil
	case "type":
		if len(rest) < 1 || rest[0].isList {
			return nil, fmt.Errorf("fixture: (type name member...) expected at %s", x.loc)
		}
		body := ast.NewScope(x.loc)
		if err := appendStatements(body, rest[1:]); err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagUserTypeSpec, Name: rest[0].atom, Location: x.loc}
		n.SetMemberScope(body)
		return n, nil
	case "func":
		return buildFunc(x, rest)
	case "=":
		if len(rest) != 2 {
			return nil, fmt.Errorf("fixture: (= lhs rhs) expected at %s", x.loc)
		}
		lhs, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		rhs, err := build(rest[1])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagAssignmentOperator, Location: x.loc}
		n.SetLeft(lhs)
		n.SetRight(rhs)
		return n, nil
	case "+", "-", "*", "/", "==", "!=", ">", ">=", "<", "<=":
		if head == "-" && len(rest) == 1 {
			operand, err := build(rest[0])
			if err != nil {
				return nil, err
			}
			return ast.NewPrefixOperator("-", operand, x.loc), nil
		}
		if len(rest) != 2 {
			return nil, fmt.Errorf("fixture: (%s a b) expected at %s", head, x.loc)
		}
		a, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		b, err := build(rest[1])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagInfixOperator, OpType: head, Location: x.loc}
		n.SetFirst(a)
		n.SetSecond(b)
		return n, nil
	case ".":
		if len(rest) != 2 {
			return nil, fmt.Errorf("fixture: (. a b) expected at %s", x.loc)
		}
		a, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		b, err := build(rest[1])
		if err != nil {
			return nil, err
		}
		return ast.NewLinkOperator(".", a, b, x.loc), nil
	case "call":
		if len(rest) < 1 {
			return nil, fmt.Errorf("fixture: (call callee arg...) expected at %s", x.loc)
		}
		callee, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagParamPass, Location: x.loc}
		n.SetCallee(callee)
		for _, a := range rest[1:] {
			arg, err := build(a)
			if err != nil {
				return nil, err
			}
			n.AppendParam(arg)
		}
		return n, nil
	case "@", "^", "size":
		if len(rest) != 1 {
			return nil, fmt.Errorf("fixture: (%s operand) expected at %s", head, x.loc)
		}
		operand, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		var tag ast.Tag
		switch head {
		case "@":
			tag = ast.TagPointerOp
		case "^":
			tag = ast.TagContentOp
		default:
			tag = ast.TagSizeOp
		}
		n := &ast.Node{Tag: tag, Location: x.loc}
		n.SetOperand(operand)
		return n, nil
	case "cast":
		if len(rest) != 2 {
			return nil, fmt.Errorf("fixture: (cast type operand) expected at %s", x.loc)
		}
		toType, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		operand, err := build(rest[1])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagCastOp, Location: x.loc}
		n.SetTargetType(toType)
		n.SetOperand(operand)
		return n, nil
	case "return":
		n := &ast.Node{Tag: ast.TagTerminateOp, Location: x.loc}
		switch len(rest) {
		case 0:
		case 1:
			operand, err := build(rest[0])
			if err != nil {
				return nil, err
			}
			n.SetOperand(operand)
		default:
			return nil, fmt.Errorf("fixture: (return [operand]) expected at %s", x.loc)
		}
		return n, nil
	case "bracket":
		if len(rest) != 1 {
			return nil, fmt.Errorf("fixture: (bracket operand) expected at %s", x.loc)
		}
		operand, err := build(rest[0])
		if err != nil {
			return nil, err
		}
		n := &ast.Node{Tag: ast.TagBracket, Kind: "round", Location: x.loc}
		n.SetOperand(operand)
		return n, nil
	case "list":
		n := &ast.Node{Tag: ast.TagExpressionList, Location: x.loc}
		for _, item := range rest {
			sub, err := build(item)
			if err != nil {
				return nil, err
			}
			n.AppendItem(sub)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("fixture: unknown form %q at %s", head, x.loc)
	}
}

func appendStatements(container *ast.Node, forms []*form) error {
	for _, f := range forms {
		child, err := build(f)
		if err != nil {
			return err
		}
		container.AppendChild(child)
	}
	return nil
}

func buildIntType(x *form, rest []*form) (*ast.Node, error) {
	if len(rest) < 1 || len(rest) > 2 {
		return nil, fmt.Errorf("fixture: (int bits [unsigned]) expected at %s", x.loc)
	}
	bits, err := atomInt(rest[0])
	if err != nil {
		return nil, err
	}
	signed := true
	if len(rest) == 2 {
		switch rest[1].atom {
		case "unsigned":
			signed = false
		case "signed":
		default:
			return nil, fmt.Errorf("fixture: (int bits [unsigned]) expected at %s", x.loc)
		}
	}
	return &ast.Node{Tag: ast.TagIntTypeSpec, Bits: bits, Signed: signed, Location: x.loc}, nil
}

// buildFunc reads (func name ((arg type)... [...]) ret stmt...). A trailing
// bare "..." in the argument list marks the function variadic.
func buildFunc(x *form, rest []*form) (*ast.Node, error) {
	if len(rest) < 3 || rest[0].isList || !rest[1].isList {
		return nil, fmt.Errorf("fixture: (func name (args) ret stmt...) expected at %s", x.loc)
	}
	name := rest[0].atom
	variadic := false
	var args []*ast.Param
	for _, a := range rest[1].list {
		if !a.isList {
			if a.atom == "..." {
				variadic = true
				continue
			}
			return nil, fmt.Errorf("fixture: argument at %s must be (name type) or ...", a.loc)
		}
		if len(a.list) != 2 || a.list[0].isList {
			return nil, fmt.Errorf("fixture: argument at %s must be (name type)", a.loc)
		}
		argType, err := build(a.list[1])
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.Param{Name: a.list[0].atom, TypeSpec: argType})
	}
	retType, err := build(rest[2])
	if err != nil {
		return nil, err
	}
	body := ast.NewScope(x.loc)
	if err := appendStatements(body, rest[3:]); err != nil {
		return nil, err
	}
	fn := ast.NewFunction(name, args, retType, body, false, x.loc)
	fn.Variadic = variadic
	return fn, nil
}

func buildLeaf(x *form) *ast.Node {
	if x.quoted {
		return &ast.Node{Tag: ast.TagStringLiteral, Raw: x.atom, Location: x.loc}
	}
	if looksLikeFloat(x.atom) {
		return &ast.Node{Tag: ast.TagFloatLiteral, Raw: x.atom, Location: x.loc}
	}
	if looksLikeInt(x.atom) {
		return &ast.Node{Tag: ast.TagIntegerLiteral, Raw: x.atom, Location: x.loc}
	}
	return ast.NewIdentifier(x.atom, x.loc)
}

func looksLikeInt(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// looksLikeFloat treats digit-leading atoms with a decimal point or an fN
// width suffix as float literals; prefixed integers (0b/0o/0h) never are,
// since hex digits legitimately contain 'f'.
func looksLikeFloat(s string) bool {
	if !looksLikeInt(s) {
		return false
	}
	if strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0h") {
		return false
	}
	return strings.ContainsAny(s, ".f")
}

func atomInt(f *form) (int, error) {
	if f.isList || f.quoted {
		return 0, fmt.Errorf("fixture: expected a number at %s", f.loc)
	}
	n, err := strconv.Atoi(f.atom)
	if err != nil {
		return 0, fmt.Errorf("fixture: expected a number at %s: %w", f.loc, err)
	}
	return n, nil
}
