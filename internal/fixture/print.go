package fixture

import (
	"fmt"
	"strings"

	"github.com/alusus/sppcore/internal/ast"
	"gopkg.in/yaml.v3"
)

// Print renders node back into the textual fixture format Parse reads. The
// output is deterministic, so golden tests can compare a re-print against a
// checked-in fixture after a parse round trip.
func Print(node *ast.Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n *ast.Node, depth int) {
	if n == nil {
		sb.WriteString("()")
		return
	}
	switch n.Tag {
	case ast.TagModule, ast.TagScope:
		head := "scope"
		if n.Tag == ast.TagModule {
			head = "module"
		}
		printBlock(sb, head, n.Children, depth)
	case ast.TagDefinition:
		sb.WriteString("(def " + n.Name + " ")
		printNode(sb, n.Target, depth)
		sb.WriteString(")")
	case ast.TagIdentifier:
		sb.WriteString(n.Text)
	case ast.TagIntegerLiteral, ast.TagFloatLiteral:
		sb.WriteString(n.Raw)
	case ast.TagStringLiteral:
		sb.WriteString(quote(n.Raw))
	case ast.TagIntTypeSpec:
		if n.Signed {
			fmt.Fprintf(sb, "(int %d)", n.Bits)
		} else {
			fmt.Fprintf(sb, "(int %d unsigned)", n.Bits)
		}
	case ast.TagFloatTypeSpec:
		fmt.Fprintf(sb, "(float %d)", n.Bits)
	case ast.TagPointerTypeSpec, ast.TagReferenceTypeSpec:
		head := "ptr"
		if n.Tag == ast.TagReferenceTypeSpec {
			head = "ref"
		}
		sb.WriteString("(" + head + " ")
		printNode(sb, n.Of, depth)
		sb.WriteString(")")
	case ast.TagArrayTypeSpec:
		sb.WriteString("(array ")
		printNode(sb, n.Of, depth)
		fmt.Fprintf(sb, " %d)", n.Length)
	case ast.TagUserTypeSpec:
		var members []*ast.Node
		if n.MemberScope != nil {
			members = n.MemberScope.Children
		}
		printBlock(sb, "type "+n.Name, members, depth)
	case ast.TagFunction:
		printFunction(sb, n, depth)
	case ast.TagAssignmentOperator:
		sb.WriteString("(= ")
		printNode(sb, n.Left, depth)
		sb.WriteString(" ")
		printNode(sb, n.Right, depth)
		sb.WriteString(")")
	case ast.TagInfixOperator:
		sb.WriteString("(" + n.OpType + " ")
		printNode(sb, n.First, depth)
		sb.WriteString(" ")
		printNode(sb, n.Second, depth)
		sb.WriteString(")")
	case ast.TagPrefixOperator:
		sb.WriteString("(" + n.OpType + " ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagLinkOperator:
		sb.WriteString("(. ")
		printNode(sb, n.First, depth)
		sb.WriteString(" ")
		printNode(sb, n.Second, depth)
		sb.WriteString(")")
	case ast.TagParamPass:
		sb.WriteString("(call ")
		printNode(sb, n.Callee, depth)
		for _, p := range n.Params {
			sb.WriteString(" ")
			printNode(sb, p, depth)
		}
		sb.WriteString(")")
	case ast.TagPointerOp:
		sb.WriteString("(@ ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagContentOp:
		sb.WriteString("(^ ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagSizeOp:
		sb.WriteString("(size ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagCastOp:
		sb.WriteString("(cast ")
		printNode(sb, n.TargetType, depth)
		sb.WriteString(" ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagTerminateOp:
		if n.Operand == nil {
			sb.WriteString("(return)")
		} else {
			sb.WriteString("(return ")
			printNode(sb, n.Operand, depth)
			sb.WriteString(")")
		}
	case ast.TagBracket:
		sb.WriteString("(bracket ")
		printNode(sb, n.Operand, depth)
		sb.WriteString(")")
	case ast.TagExpressionList:
		sb.WriteString("(list")
		for _, item := range n.Items {
			sb.WriteString(" ")
			printNode(sb, item, depth)
		}
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "(unknown %s)", n.Tag)
	}
}

// printBlock lays a scope-like form out one child per line, indented, the
// way fixtures are written by hand.
func printBlock(sb *strings.Builder, head string, children []*ast.Node, depth int) {
	sb.WriteString("(" + head)
	if len(children) == 0 {
		sb.WriteString(")")
		return
	}
	indent := strings.Repeat("  ", depth+1)
	for _, c := range children {
		sb.WriteString("\n" + indent)
		printNode(sb, c, depth+1)
	}
	sb.WriteString(")")
}

func printFunction(sb *strings.Builder, fn *ast.Node, depth int) {
	sb.WriteString("(func " + fn.Name + " (")
	for i, a := range fn.Args {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("(" + a.Name + " ")
		printNode(sb, a.TypeSpec, depth)
		sb.WriteString(")")
	}
	if fn.Variadic {
		if len(fn.Args) > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(") ")
	printNode(sb, fn.RetType, depth)
	if fn.Body != nil {
		indent := strings.Repeat("  ", depth+1)
		for _, stmt := range fn.Body.Children {
			sb.WriteString("\n" + indent)
			printNode(sb, stmt, depth+1)
		}
	}
	sb.WriteString(")")
}

func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}

// nodeDump is the YAML shape DumpYAML renders. Struct fields (not a map)
// keep the key order deterministic across runs.
type nodeDump struct {
	Tag      string      `yaml:"tag"`
	Name     string      `yaml:"name,omitempty"`
	Text     string      `yaml:"text,omitempty"`
	Raw      string      `yaml:"raw,omitempty"`
	Op       string      `yaml:"op,omitempty"`
	Bits     int         `yaml:"bits,omitempty"`
	Signed   *bool       `yaml:"signed,omitempty"`
	Length   int         `yaml:"length,omitempty"`
	Variadic bool        `yaml:"variadic,omitempty"`
	Location string      `yaml:"location,omitempty"`
	Args     []argDump   `yaml:"args,omitempty"`
	Children []*nodeDump `yaml:"children,omitempty"`
}

type argDump struct {
	Name string    `yaml:"name"`
	Type *nodeDump `yaml:"type"`
}

// DumpYAML renders node's subtree as YAML, for the MCP server's
// load_fixture tool and for structured golden assertions.
func DumpYAML(node *ast.Node) ([]byte, error) {
	return yaml.Marshal(dumpNode(node))
}

func dumpNode(n *ast.Node) *nodeDump {
	if n == nil {
		return nil
	}
	d := &nodeDump{
		Tag:      string(n.Tag),
		Name:     n.Name,
		Text:     n.Text,
		Raw:      n.Raw,
		Op:       n.OpType,
		Bits:     n.Bits,
		Length:   n.Length,
		Variadic: n.Variadic,
	}
	if n.Tag == ast.TagIntTypeSpec {
		signed := n.Signed
		d.Signed = &signed
	}
	if !n.Location.IsZero() {
		d.Location = n.Location.String()
	}
	for _, a := range n.Args {
		d.Args = append(d.Args, argDump{Name: a.Name, Type: dumpNode(a.TypeSpec)})
	}
	for _, c := range orderedChildren(n) {
		d.Children = append(d.Children, dumpNode(c))
	}
	return d
}

// orderedChildren mirrors the slots Print visits, so the YAML dump and the
// textual re-print agree on traversal order.
func orderedChildren(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	add := func(c *ast.Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	add(n.First)
	add(n.Second)
	add(n.Left)
	add(n.Right)
	add(n.Target)
	add(n.Callee)
	add(n.TargetType)
	add(n.Operand)
	add(n.Of)
	add(n.MemberScope)
	add(n.RetType)
	add(n.Body)
	out = append(out, n.Children...)
	out = append(out, n.Params...)
	out = append(out, n.Items...)
	return out
}
