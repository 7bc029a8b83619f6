package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
)

const (
	descriptionMaxLength    = 1000
	nameFieldLabelMaxLength = 80
	displayFormatMaxLength  = 30
	displayFormatMaxDigits  = 10

	// AutoNumber is the name field type that needs a display format.
	AutoNumber = "AutoNumber"
)

var (
	displayFormatInvalidChars = []string{`"`, "'", "&", "<", ">", ";", ":", `\`}
	displayFormatNumber       = regexp.MustCompile(`\{(0+)\}`)
)

// object applies CustomObject rules. Tags whose column is absent are not
// checked.
func (v *Validator) object(s *schema.EntityTypeSchema, tag string, row types.Row, header types.Header) {
	if !header.Has(tag) {
		return
	}
	value := row.Cell(header, tag)
	loc := At(row, header, tag)

	switch tag {
	case "fullName":
		v.identifier(loc, value, true)
	case "label":
		v.label(loc, value)
	case "description":
		if utf8.RuneCountInString(value) > descriptionMaxLength {
			v.ctx.Add(loc, CodeDescriptionMax)
		}
	default:
		v.enum(loc, tag, value, s.AllowedValues[tag])
	}
}

// NameField checks the nameFieldType, nameFieldLabel and
// nameFieldDisplayFormat columns of an object row together.
//
// RETURNS:
//   - true when the name field block can be rendered.
func (v *Validator) NameField(row types.Row, header types.Header) bool {
	before := v.ctx.Len()

	typeLoc := At(row, header, "nameFieldType")
	labelLoc := At(row, header, "nameFieldLabel")
	formatLoc := At(row, header, "nameFieldDisplayFormat")
	nameFieldType := row.Cell(header, "nameFieldType")

	if nameFieldType == "" {
		allowed := v.catalog.Object().AllowedValues["nameFieldType"]
		v.ctx.Add(typeLoc, CodeNameFieldTypeOptions, strings.Join(allowed, ","))
	}

	if !header.Has("nameFieldLabel") {
		v.ctx.Add(typeLoc, CodeNoNameFieldLabel)
	} else {
		label := row.Cell(header, "nameFieldLabel")
		n := utf8.RuneCountInString(label)
		if n == 0 {
			v.ctx.Add(labelLoc, CodeNameFieldLabelBlank)
		}
		if n > nameFieldLabelMaxLength {
			v.ctx.Add(labelLoc, CodeNameFieldLabelLength)
		}
	}

	if nameFieldType == AutoNumber {
		if !header.Has("nameFieldDisplayFormat") {
			v.ctx.Add(typeLoc, CodeNoNameFieldDisplayFormat)
		} else {
			v.displayFormat(formatLoc, row.Cell(header, "nameFieldDisplayFormat"))
		}
	}

	return before == v.ctx.Len()
}

func (v *Validator) displayFormat(loc Location, format string) {
	for _, c := range displayFormatInvalidChars {
		if strings.Contains(format, c) {
			v.ctx.Add(loc, CodeNameFieldDisplayFormatInvalidChar, strings.Join(displayFormatInvalidChars, ","))
			break
		}
	}

	match := displayFormatNumber.FindStringSubmatch(format)
	switch {
	case match == nil:
		v.ctx.Add(loc, CodeNameFieldDisplayFormatFormat)
	case len(match[1]) > displayFormatMaxDigits:
		v.ctx.Add(loc, CodeNameFieldDisplayFormatDigits)
	}

	if utf8.RuneCountInString(format) > displayFormatMaxLength {
		v.ctx.Add(loc, CodeNameFieldDisplayFormatLength)
	}
}

// =============================================================================
// PROFILE PERMISSIONS
// =============================================================================

// permission applies the rules of one permission tag. Every permission tag
// is enumerated.
func (v *Validator) permission(s *schema.EntityTypeSchema, tag string, row types.Row, header types.Header) {
	v.enum(At(row, header, tag), tag, row.Cell(header, tag), s.AllowedValues[tag])
}

// PermissionNotFound records a row whose key does not match any permission
// block of its type in the source profile.
func (v *Validator) PermissionNotFound(row types.Row, header types.Header, key string) {
	v.ctx.Add(At(row, header, "fullName"), CodePermissionNotFound, key)
}
