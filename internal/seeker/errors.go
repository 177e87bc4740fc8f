package seeker

import (
	"fmt"

	"github.com/alusus/sppcore/internal/ast"
)

// InvalidReferenceError reports that a reference expression contained a
// node shape the seeker does not accept — reference expressions may only
// be built from Identifier, LinkOperator, round Bracket, and ParamPass
// nodes.
type InvalidReferenceError struct {
	Location ast.Location
	Detail   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference at %s: %s", e.Location, e.Detail)
}

func newInvalidReference(n *ast.Node, detail string) *InvalidReferenceError {
	var loc ast.Location
	if n != nil {
		loc = n.Location
	}
	return &InvalidReferenceError{Location: loc, Detail: detail}
}
