package xmlwriter

import (
	"sort"
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
)

// =============================================================================
// CUSTOM OBJECT
// =============================================================================

// Object renders one CustomObject row.
//
// The document opens with the fixed actionOverrides blocks. The row's tags,
// the nameField block and the fixed meta settings follow, sorted by their
// rendered text.
//
// RETURNS:
//   - The rendered document, identified by the row's fullName.
//   - true when the row recorded no validation failures.
func (r *Renderer) Object(row types.Row, header types.Header) (types.RenderedMetadata, bool) {
	before := r.validator.Context().Len()
	meta := types.RenderedMetadata{Identifier: row.Cell(header, "fullName")}

	s := r.validator.Type(schema.KindObject, row, header)
	settings := r.catalog.ObjectSettings()

	var tags []string
	for _, tag := range s.TagOrder {
		requirement := s.Required[tag]
		if !header.Has(tag) && requirement == schema.NotApplicable {
			continue
		}
		if !r.validator.Validate(s, tag, row, header) {
			continue
		}
		if tag == "fullName" {
			continue
		}

		_, hasDefault := s.Default(tag)
		if requirement == schema.NotApplicable && !hasDefault {
			continue
		}
		if requirement != schema.Required && !hasDefault && strings.TrimSpace(row.Cell(header, tag)) == "" {
			continue
		}

		value, _ := r.value(s, tag, row, header)
		tags = append(tags, element(tag, value))
	}

	if r.validator.NameField(row, header) {
		tags = append(tags, r.nameField(row, header))
	}
	for _, m := range settings.MetaSettings {
		tags = append(tags, element(m.Tag, m.Value))
	}
	sort.Strings(tags)

	var b strings.Builder
	b.WriteString(r.prolog("CustomObject"))
	b.WriteString(r.actionOverrides(settings.ActionOverrides))
	b.WriteString("\n" + r.indent(1) + strings.Join(tags, "\n"+r.indent(1)))
	b.WriteString("\n</CustomObject>")
	meta.Content = b.String()

	return meta, before == r.validator.Context().Len()
}

// actionOverrides renders one block per action, then one per form factor.
// Every block starts on a new line.
func (r *Renderer) actionOverrides(overrides []schema.ActionOverride) string {
	var b strings.Builder
	block := func(action, formFactor, overrideType string) {
		b.WriteString("\n" + r.indent(1) + "<actionOverrides>\n")
		b.WriteString(r.indent(2) + element("actionName", action) + "\n")
		if formFactor != "" {
			b.WriteString(r.indent(2) + element("formFactor", formFactor) + "\n")
		}
		b.WriteString(r.indent(2) + element("type", overrideType) + "\n")
		b.WriteString(r.indent(1) + "</actionOverrides>")
	}

	for _, o := range overrides {
		block(o.Action, "", o.Type)
		for _, f := range o.FormFactors {
			block(o.Action, f, o.Type)
		}
	}
	return b.String()
}

// nameField renders the nameField block. displayFormat is written only for
// AutoNumber name fields.
func (r *Renderer) nameField(row types.Row, header types.Header) string {
	nameFieldType := row.Cell(header, "nameFieldType")

	var b strings.Builder
	b.WriteString("<nameField>\n")
	b.WriteString(r.indent(2) + element("label", CellValue(row.Cell(header, "nameFieldLabel"))) + "\n")
	b.WriteString(r.indent(2) + element("trackHistory", "false") + "\n")
	if nameFieldType == validation.AutoNumber {
		b.WriteString(r.indent(2) + element("displayFormat", CellValue(row.Cell(header, "nameFieldDisplayFormat"))) + "\n")
	}
	b.WriteString(r.indent(2) + element("type", CellValue(nameFieldType)) + "\n")
	b.WriteString(r.indent(1) + "</nameField>")
	return b.String()
}
