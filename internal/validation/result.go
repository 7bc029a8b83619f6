// =============================================================================
// Metadata Generator - Validation Results
// =============================================================================
//
// Validation never returns errors. Every failed check is appended to a
// Context owned by one command run, and the run decides at the end whether
// anything may be written.
//
// A Context is not safe for concurrent use. Create one per run.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/types"
)

// =============================================================================
// LOCATION
// =============================================================================

// Location points at one input cell. Both numbers are 1-based; the header is
// row 1. Col is 0 when the column is absent from the header.
type Location struct {
	Row int
	Col int
}

// String renders the location as shown in reports, e.g. "Row2Col3".
func (l Location) String() string {
	return fmt.Sprintf("Row%dCol%d", l.Row, l.Col)
}

// At returns the location of a named column in a row.
func At(row types.Row, header types.Header, column string) Location {
	return Location{Row: row.Line(), Col: header.Index(column) + 1}
}

// =============================================================================
// RESULT
// =============================================================================

// Result is one failed check.
type Result struct {
	Location Location
	Code     Code
	Message  string
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context accumulates results for a single run.
type Context struct {
	results []Result
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Add records a failure. Details are appended to the code's message,
// separated from it by a space and from each other by commas.
func (c *Context) Add(loc Location, code Code, details ...string) {
	message := code.Message()
	if len(details) > 0 {
		message += " " + strings.Join(details, ",")
	}
	c.results = append(c.results, Result{Location: loc, Code: code, Message: message})
}

// Results returns the recorded failures in the order they were added.
func (c *Context) Results() []Result {
	return append([]Result(nil), c.results...)
}

// Len returns the number of recorded failures.
func (c *Context) Len() int {
	return len(c.results)
}

// HasFailures reports whether anything has been recorded.
func (c *Context) HasFailures() bool {
	return len(c.results) > 0
}
