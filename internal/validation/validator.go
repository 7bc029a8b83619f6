// =============================================================================
// Metadata Generator - Validation Engine
// =============================================================================
//
// This module applies the per-tag rules of every entity kind to input rows:
//   - Identifier rules for fullName
//   - Enumerated values (booleans, deploymentStatus, maskType, ...)
//   - Numeric ranges and the scale/precision pair
//   - Composite inputs (picklist value lists, the object name field)
//
// VALIDATION STRATEGY:
//   Every check runs, even after an earlier one failed, so a single report
//   lists every problem in the input. Each method returns true when it added
//   nothing to the Context.
//
//   A rule for a tag only fires for the entity types where the tag means
//   something; for other types the tag is left alone.
//
// =============================================================================

package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
)

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks rows against a schema catalog and records failures in a
// Context.
type Validator struct {
	catalog *schema.Catalog
	ctx     *Context
}

// New creates a Validator that records into ctx.
func New(catalog *schema.Catalog, ctx *Context) *Validator {
	return &Validator{catalog: catalog, ctx: ctx}
}

// Context returns the Context the validator records into.
func (v *Validator) Context() *Context {
	return v.ctx
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Type resolves the schema for a row.
//
// PARAMETERS:
//   - kind: The entity kind being generated.
//   - row: The input row. For fields and profiles its "type" column names the
//     entity type.
//   - header: The input header.
//
// RETURNS:
//   - The schema, or nil when the type is unknown. An unknown type is
//     recorded as validationTypeOptions at the type column.
func (v *Validator) Type(kind schema.Kind, row types.Row, header types.Header) *schema.EntityTypeSchema {
	s, err := v.catalog.Lookup(kind, row.Cell(header, "type"))
	if err != nil {
		var unknown *schema.UnknownTypeError
		if errors.As(err, &unknown) {
			v.ctx.Add(At(row, header, "type"), CodeTypeOptions, strings.Join(unknown.Allowed, ","))
		} else {
			v.ctx.Add(At(row, header, "type"), CodeTypeOptions)
		}
		return nil
	}
	return s
}

// Validate applies the rules of one tag to a row.
//
// PARAMETERS:
//   - s: The schema of the row's entity type.
//   - tag: The tag to check.
//   - row: The input row.
//   - header: The input header.
//
// RETURNS:
//   - true when the tag added no failures.
func (v *Validator) Validate(s *schema.EntityTypeSchema, tag string, row types.Row, header types.Header) bool {
	before := v.ctx.Len()

	switch s.Kind {
	case schema.KindField:
		v.field(s, tag, row, header)
	case schema.KindObject:
		v.object(s, tag, row, header)
	case schema.KindProfile:
		v.permission(s, tag, row, header)
	}

	return before == v.ctx.Len()
}

// IncompleteRow records a row that was dropped for having fewer cells than
// the header. The location points at the first missing column.
func (v *Validator) IncompleteRow(row types.Row) {
	v.ctx.Add(Location{Row: row.Line(), Col: len(row.Cells) + 1}, CodeIncompleteRow)
}

// =============================================================================
// SHARED RULES
// =============================================================================

var (
	identifierPattern   = regexp.MustCompile(`^[a-zA-Z][0-9a-zA-Z_]+[a-zA-Z]$`)
	singleLetterPattern = regexp.MustCompile(`^[a-zA-Z]$`)
)

const (
	identifierSuffix    = "__c"
	identifierMaxLength = 43
	labelMaxLength      = 40
	quotedLabelBudget   = 42
)

// identifier checks a fullName value. When singleLetter is set, a one-letter
// name passes the format check and an empty name skips it.
func (v *Validator) identifier(loc Location, value string, singleLetter bool) {
	n := utf8.RuneCountInString(value)

	switch {
	case singleLetter && n == 0:
	case singleLetter && n == 1:
		if !singleLetterPattern.MatchString(value) {
			v.ctx.Add(loc, CodeFullNameFormat)
		}
	default:
		if !identifierPattern.MatchString(value) {
			v.ctx.Add(loc, CodeFullNameFormat)
		}
	}
	if !strings.HasSuffix(value, identifierSuffix) {
		v.ctx.Add(loc, CodeFullNameTail)
	}
	if strings.Count(value, "__") > 1 {
		v.ctx.Add(loc, CodeFullNameUnderscore)
	}
	if n == 0 {
		v.ctx.Add(loc, CodeFullNameBlank)
	}
	if n > identifierMaxLength {
		v.ctx.Add(loc, CodeFullNameLength)
	}
}

// label checks a label value. A label holding a double quote gets a larger
// budget, since each CSV-escaped quote pair renders as one character.
func (v *Validator) label(loc Location, value string) {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		v.ctx.Add(loc, CodeLabelBlank)
	}

	budget := labelMaxLength
	if strings.Contains(value, `"`) {
		budget = quotedLabelBudget + strings.Count(value, `""`)
	}
	if n > budget {
		v.ctx.Add(loc, CodeLabelLength)
	}
}

// enum checks that a non-empty value is one of allowed. Boolean sets compare
// case-insensitively.
func (v *Validator) enum(loc Location, tag, value string, allowed []string) {
	if value == "" || len(allowed) == 0 {
		return
	}

	candidate := value
	if isBooleanSet(allowed) {
		candidate = strings.ToLower(value)
	}
	for _, a := range allowed {
		if a == candidate {
			return
		}
	}
	v.ctx.Add(loc, OptionsCode(tag), strings.Join(allowed, ","))
}

func isBooleanSet(values []string) bool {
	return len(values) == 2 &&
		((values[0] == "true" && values[1] == "false") || (values[0] == "false" && values[1] == "true"))
}

// =============================================================================
// NUMBERS
// =============================================================================

// parseNumber converts a cell to a number. An empty cell is 0 and a value
// that does not parse is NaN, so every comparison against it is false.
func parseNumber(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isInteger(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func typeIn(t string, candidates ...string) bool {
	for _, candidate := range candidates {
		if t == candidate {
			return true
		}
	}
	return false
}
