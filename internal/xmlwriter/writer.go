// =============================================================================
// Metadata Generator - XML Renderer
// =============================================================================
//
// This module assembles CustomField and CustomObject documents from input
// rows. Documents are built as strings so the output layout is exact:
//   - One tag per line, indented by a configured width per nesting level
//   - No trailing newline after the closing root tag
//   - Field tags keep schema order; object tags are sorted after assembly
//
// Validation runs while rendering: a tag that fails validation is left out,
// and the caller discards the document when the row recorded any failure.
//
// OUTPUT EXAMPLE (Text field, indentation 4):
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <CustomField xmlns="http://soap.sforce.com/2006/04/metadata">
//       <fullName>Test_Field__c</fullName>
//       <label>Test Field</label>
//       <type>Text</type>
//       ...
//   </CustomField>
//
// =============================================================================

package xmlwriter

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
)

// DefaultIndentation is the number of spaces per nesting level.
const DefaultIndentation = 4

// =============================================================================
// RENDERER
// =============================================================================

// Renderer builds metadata documents for one run. It shares the run's
// validator, so rendering a row also validates it.
type Renderer struct {
	catalog     *schema.Catalog
	validator   *validation.Validator
	indentation int
}

// NewRenderer creates a Renderer. A non-positive indentation falls back to
// DefaultIndentation.
func NewRenderer(catalog *schema.Catalog, validator *validation.Validator, indentation int) *Renderer {
	if indentation <= 0 {
		indentation = DefaultIndentation
	}
	return &Renderer{catalog: catalog, validator: validator, indentation: indentation}
}

// indent returns the whitespace for a nesting depth.
func (r *Renderer) indent(depth int) string {
	return strings.Repeat(" ", depth*r.indentation)
}

// prolog returns the XML declaration and the opening root tag.
func (r *Renderer) prolog(root string) string {
	settings := r.catalog.ObjectSettings()
	return fmt.Sprintf(`<?xml version="%s" encoding="%s"?>`+"\n"+`<%s xmlns="%s">`,
		settings.XMLVersion, settings.Encoding, root, settings.Namespace)
}

func element(tag, value string) string {
	return "<" + tag + ">" + value + "</" + tag + ">"
}

// =============================================================================
// CUSTOM FIELD
// =============================================================================

// Field renders one CustomField row.
//
// PARAMETERS:
//   - row: The input row.
//   - header: The input header.
//
// RETURNS:
//   - The rendered document, identified by the row's fullName.
//   - true when the row recorded no validation failures.
//
// TAG RULES (in schema order):
//   1. A tag that fails validation is skipped.
//   2. A tag that is not required and has no default is skipped.
//   3. A tag absent from the header is skipped unless required.
//   4. The cell value is used when non-empty, else the default. A tag with
//      neither is skipped.
func (r *Renderer) Field(row types.Row, header types.Header) (types.RenderedMetadata, bool) {
	before := r.validator.Context().Len()
	meta := types.RenderedMetadata{Identifier: row.Cell(header, "fullName")}

	s := r.validator.Type(schema.KindField, row, header)
	if s == nil {
		return meta, false
	}

	var tags []string
	for _, tag := range s.TagOrder {
		if !r.validator.Validate(s, tag, row, header) {
			continue
		}

		required := s.Required[tag] == schema.Required
		if _, hasDefault := s.Default(tag); !required && !hasDefault {
			continue
		}
		if !required && !header.Has(tag) {
			continue
		}

		if value, ok := r.value(s, tag, row, header); ok {
			tags = append(tags, element(tag, value))
		}
	}

	var b strings.Builder
	b.WriteString(r.prolog("CustomField"))
	b.WriteString("\n" + r.indent(1) + strings.Join(tags, "\n"+r.indent(1)))

	if schema.IsPicklist(s.Name) {
		if names, labels, ok := r.validator.Picklist(row, header); ok {
			b.WriteString("\n" + r.indent(1) + r.valueSet(names, labels))
		}
	}

	b.WriteString("\n</CustomField>")
	meta.Content = b.String()

	return meta, before == r.validator.Context().Len()
}

// value returns the output text of a cell, and false when the cell is
// empty and the tag has no default.
func (r *Renderer) value(s *schema.EntityTypeSchema, tag string, row types.Row, header types.Header) (string, bool) {
	value := CellValue(row.Cell(header, tag))
	if s.IsBoolean(tag) {
		value = strings.ToLower(value)
	}
	if value == "" {
		def, ok := s.Default(tag)
		return def, ok
	}
	return value, true
}

// valueSet renders the picklist block. names and labels have equal length.
func (r *Renderer) valueSet(names, labels []string) string {
	values := make([]string, len(names))
	for i := range names {
		values[i] = "<value>\n" +
			r.indent(4) + element("fullName", CellValue(names[i])) + "\n" +
			r.indent(4) + element("default", "false") + "\n" +
			r.indent(4) + element("label", CellValue(labels[i])) + "\n" +
			r.indent(3) + "</value>"
	}

	return "<valueSet>\n" +
		r.indent(2) + "<valueSetDefinition>\n" +
		r.indent(3) + element("sorted", "false") + "\n" +
		r.indent(3) + strings.Join(values, "\n"+r.indent(3)) + "\n" +
		r.indent(2) + "</valueSetDefinition>\n" +
		r.indent(1) + "</valueSet>"
}
