// =============================================================================
// Metadata Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - validation
//   - xmlwriter
//   - converter
//
// =============================================================================

package types

// =============================================================================
// TABULAR INPUT TYPES
// =============================================================================

// Header is the ordered list of column names from the first input line.
// Uniqueness is not enforced; lookups return the first matching column.
type Header []string

// Index returns the position of the named column, or -1 when the column is
// absent from the header.
func (h Header) Index(name string) int {
	for i, column := range h {
		if column == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column is present.
func (h Header) Has(name string) bool {
	return h.Index(name) != -1
}

// Row is a single data line aligned positionally to a Header.
type Row struct {
	// Cells contains the trimmed cell values.
	Cells []string

	// Index is the zero-based position of the line in the input, where the
	// header is line 0. Validation locations are reported as Index+1.
	Index int
}

// Cell returns the value of the named column, or "" when the column is
// absent from the header or the row is too short to hold it.
func (r Row) Cell(header Header, name string) string {
	return r.At(header.Index(name))
}

// At returns the cell at position i, or "" when i is out of range.
func (r Row) At(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Line returns the 1-based line number of the row in the input.
func (r Row) Line() int {
	return r.Index + 1
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// RenderedMetadata is one generated XML document, created after its row
// passed validation and never mutated afterwards.
type RenderedMetadata struct {
	// Identifier is the fullName of the rendered component.
	Identifier string

	// Content is the complete XML document.
	Content string
}
