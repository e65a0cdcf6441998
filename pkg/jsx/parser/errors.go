package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// ErrParse is matched by every error the parser returns for malformed input.
var ErrParse = errors.New("parse error")

// ParseError represents a syntax error with position information.
type ParseError struct {
	Path    string
	Pos     jsx.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error: %s", e.Path, e.Pos.Line, e.Pos.Column, e.Message)
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Common error messages
const (
	msgUnexpected = "unexpected %q"
	msgMissing    = "missing %s"
)
