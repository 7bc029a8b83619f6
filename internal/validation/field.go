package validation

import (
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
)

const maxScalePlusPrecision = 18

// field applies CustomField rules. The row's type has already been resolved
// to s.
func (v *Validator) field(s *schema.EntityTypeSchema, tag string, row types.Row, header types.Header) {
	fieldType := s.Name
	value := row.Cell(header, tag)
	loc := At(row, header, tag)

	switch tag {
	case "fullName":
		v.identifier(loc, value, false)
	case "label":
		v.label(loc, value)
	case "externalId":
		if typeIn(fieldType, "Number", "Email", "Text") {
			v.enum(loc, tag, value, s.AllowedValues[tag])
		}
	case "required", "trackTrending", "unique":
		v.enum(loc, tag, value, s.AllowedValues[tag])
	case "defaultValue":
		if fieldType == "Checkbox" {
			v.enum(loc, tag, value, s.AllowedValues[tag])
		}
	case "displayLocationInDecimal":
		if fieldType == "Location" {
			v.enum(loc, tag, value, s.AllowedValues[tag])
		}
	case "maskChar", "maskType":
		if fieldType == "EncryptedText" {
			v.enum(loc, tag, value, s.AllowedValues[tag])
		}
	case "scale":
		if typeIn(fieldType, "Number", "Percent", "Currency", "Location") && value != "" {
			v.scale(loc, value, row.Cell(header, "precision"))
		}
	case "precision":
		if typeIn(fieldType, "Number", "Percent", "Currency") && value != "" {
			v.precision(loc, value, row.Cell(header, "scale"))
		}
	case "visibleLines":
		if value != "" {
			v.visibleLines(loc, fieldType, value)
		}
	case "length":
		if value != "" {
			v.length(loc, fieldType, value)
		}
	}
}

// scale and precision are checked from both sides: each tag also reports a
// type failure of its partner, and both compare the scale against 8.
func (v *Validator) scale(loc Location, scaleValue, precisionValue string) {
	scale, precision := parseNumber(scaleValue), parseNumber(precisionValue)

	if !isInteger(scale) {
		v.ctx.Add(loc, CodeScaleType)
	}
	if !isInteger(precision) {
		v.ctx.Add(loc, CodePrecisionType)
	}
	if scale < 0 {
		v.ctx.Add(loc, CodeScaleNegative)
	}
	if scale+precision > maxScalePlusPrecision {
		v.ctx.Add(loc, CodeScaleSum)
	}
	if scale >= 8 {
		v.ctx.Add(loc, CodeScaleComparisonPrecision)
	}
}

func (v *Validator) precision(loc Location, precisionValue, scaleValue string) {
	precision, scale := parseNumber(precisionValue), parseNumber(scaleValue)

	if !isInteger(precision) {
		v.ctx.Add(loc, CodePrecisionType)
	}
	if !isInteger(scale) {
		v.ctx.Add(loc, CodeScaleType)
	}
	if precision < 0 {
		v.ctx.Add(loc, CodePrecisionNegative)
	}
	if scale+precision > maxScalePlusPrecision {
		v.ctx.Add(loc, CodePrecisionSum)
	}
	if scale >= 8 {
		v.ctx.Add(loc, CodePrecisionComparisonScale)
	}
}

func (v *Validator) visibleLines(loc Location, fieldType, value string) {
	n := parseNumber(value)

	if typeIn(fieldType, "MultiselectPicklist", "LongTextArea", "Html") && !isInteger(n) {
		v.ctx.Add(loc, CodeVisibleLinesType)
	}

	switch fieldType {
	case "LongTextArea":
		if n < 2 {
			v.ctx.Add(loc, CodeVisibleLinesLongTextMin)
		}
		if n > 50 {
			v.ctx.Add(loc, CodeVisibleLinesLongTextMax)
		}
	case "Html":
		if n < 10 {
			v.ctx.Add(loc, CodeVisibleLinesHtmlMin)
		}
		if n > 50 {
			v.ctx.Add(loc, CodeVisibleLinesLongTextMax)
		}
	case "MultiselectPicklist":
		if n < 3 {
			v.ctx.Add(loc, CodeVisibleLinesPicklistMin)
		}
		if n > 10 {
			v.ctx.Add(loc, CodeVisibleLinesPicklistMax)
		}
	}
}

func (v *Validator) length(loc Location, fieldType, value string) {
	n := parseNumber(value)

	if typeIn(fieldType, "Text", "LongTextArea", "Html", "EncryptedText") && !isInteger(n) {
		v.ctx.Add(loc, CodeLengthType)
	}

	switch fieldType {
	case "Text":
		if n < 1 {
			v.ctx.Add(loc, CodeLengthTextMin)
		}
		if n > 255 {
			v.ctx.Add(loc, CodeLengthTextMax)
		}
	case "LongTextArea", "Html":
		if n < 256 {
			v.ctx.Add(loc, CodeLengthLongTextMin)
		}
		if n > 131072 {
			v.ctx.Add(loc, CodeLengthLongTextMax)
		}
	case "EncryptedText":
		if n < 1 {
			v.ctx.Add(loc, CodeLengthTextMin)
		}
		if n > 175 {
			v.ctx.Add(loc, CodeLengthEncryptedTextMax)
		}
	}
}

// =============================================================================
// PICKLIST VALUES
// =============================================================================

// PicklistSeparator splits the picklistFullName and picklistLabel cells.
const PicklistSeparator = ";"

// Picklist checks the value lists of a Picklist or MultiselectPicklist row.
//
// PARAMETERS:
//   - row: The input row.
//   - header: The input header.
//
// RETURNS:
//   - The split full names and labels.
//   - true when the lists have the same length and no empty entry.
func (v *Validator) Picklist(row types.Row, header types.Header) ([]string, []string, bool) {
	before := v.ctx.Len()

	fullNames := strings.Split(row.Cell(header, "picklistFullName"), PicklistSeparator)
	labels := strings.Split(row.Cell(header, "picklistLabel"), PicklistSeparator)
	fullNameLoc := At(row, header, "picklistFullName")
	labelLoc := At(row, header, "picklistLabel")

	if len(fullNames) != len(labels) {
		v.ctx.Add(fullNameLoc, CodePicklistFullNameMax)
		v.ctx.Add(labelLoc, CodePicklistLabelMax)
	}
	for i, fullName := range fullNames {
		if fullName == "" {
			v.ctx.Add(fullNameLoc, CodePicklistFullNameBlank)
		}
		if i < len(labels) && labels[i] == "" {
			v.ctx.Add(labelLoc, CodePicklistLabelBlank)
		}
	}

	return fullNames, labels, before == v.ctx.Len()
}
