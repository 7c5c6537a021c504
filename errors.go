// errors.go: user-facing error wrapping and caret-snippet rendering
//
// This module turns the core's structured errors into readable one-screen
// snippets with a caret pointing at the offending column. The entry point is
// `WrapErrorWithSource`, which recognizes `*SyntaxError` (parser.go) and
// `*RuntimeError` (eval.go), formats them, and returns a new error:
//
//	SYNTAX ERROR at col 7: expected ')'
//
//	  | 1+2*(3
//	  |       ^
//
// Runtime errors carry no position (evaluation works on trees, not text), so
// they get a header line only. Any other error is returned unchanged.
//
// Input is a single REPL line, so the snippet never needs line numbers or
// context lines; the caret column is derived from the unconsumed remainder
// the SyntaxError carries.
package sp

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error whose message embeds a caret-annotated
// snippet of src when err is a core SP error, and err itself otherwise.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *SyntaxError:
		col := e.Offset([]byte(src))
		return fmt.Errorf("%s", prettySyntaxError(src, col, "expected "+e.Expected))
	case *RuntimeError:
		return fmt.Errorf("RUNTIME ERROR: %s", e.Msg)
	default:
		return err
	}
}

// prettySyntaxError builds the header plus a caret line under the 0-based
// column, clamped to the source bounds.
func prettySyntaxError(src string, col int, msg string) string {
	if col < 0 {
		col = 0
	}
	if col > len(src) {
		col = len(src)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "SYNTAX ERROR at col %d: %s\n\n", col+1, msg)
	fmt.Fprintf(&b, "  | %s\n", src)
	fmt.Fprintf(&b, "  | %s^\n", strings.Repeat(" ", col))
	return b.String()
}
