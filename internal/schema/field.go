package schema

// Field tag order shared by every field type.
var fieldTagOrder = []string{
	"fullName",
	"externalId",
	"label",
	"required",
	"type",
	"trackTrending",
	"unique",
	"defaultValue",
	"displayLocationInDecimal",
	"scale",
	"precision",
	"visibleLines",
	"length",
	"maskChar",
	"maskType",
}

// fieldType describes how one field type departs from the common table:
// every tag defaults to no value and Optional, except fullName, label and
// type which are Required, and type which defaults to the type name.
type fieldType struct {
	name          string
	defaults      map[string]string
	required      []string
	notApplicable []string
}

var fieldTypes = []fieldType{
	{
		name:     "Checkbox",
		defaults: map[string]string{"trackTrending": "false", "defaultValue": "false"},
		required: []string{"defaultValue"},
	},
	{
		name:     "Currency",
		defaults: map[string]string{"required": "false", "trackTrending": "false", "scale": "0", "precision": "18"},
		required: []string{"scale", "precision"},
	},
	{
		name:     "Date",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
	{
		name:          "DateTime",
		defaults:      map[string]string{"trackTrending": "false"},
		notApplicable: []string{"required", "unique"},
	},
	{
		name:     "Email",
		defaults: map[string]string{"externalId": "false", "required": "false", "trackTrending": "false"},
	},
	{
		name:     "Location",
		defaults: map[string]string{"required": "false", "trackTrending": "false", "displayLocationInDecimal": "false", "scale": "0"},
		required: []string{"displayLocationInDecimal", "scale"},
	},
	{
		name: "Number",
		defaults: map[string]string{
			"externalId": "false", "required": "false", "trackTrending": "false",
			"unique": "false", "scale": "0", "precision": "18",
		},
		required: []string{"scale", "precision"},
	},
	{
		name:     "Percent",
		defaults: map[string]string{"required": "false", "trackTrending": "false", "scale": "0", "precision": "18"},
		required: []string{"scale", "precision"},
	},
	{
		name:     "Phone",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
	{
		name:     "Picklist",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
	{
		name:     "MultiselectPicklist",
		defaults: map[string]string{"required": "false", "trackTrending": "false", "visibleLines": "4"},
		required: []string{"visibleLines"},
	},
	{
		name: "Text",
		defaults: map[string]string{
			"externalId": "false", "required": "false", "trackTrending": "false",
			"unique": "false", "length": "255",
		},
		required: []string{"length"},
	},
	{
		name:     "TextArea",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
	{
		name:     "LongTextArea",
		defaults: map[string]string{"trackTrending": "false", "visibleLines": "3", "length": "32768"},
		required: []string{"visibleLines", "length"},
	},
	{
		name:     "Html",
		defaults: map[string]string{"trackTrending": "false", "visibleLines": "25", "length": "32768"},
		required: []string{"visibleLines", "length"},
	},
	{
		name: "EncryptedText",
		defaults: map[string]string{
			"required": "false", "trackTrending": "false", "length": "175",
			"maskChar": "asterisk", "maskType": "all",
		},
		required: []string{"length", "maskChar", "maskType"},
	},
	{
		name:     "Time",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
	{
		name:     "Url",
		defaults: map[string]string{"required": "false", "trackTrending": "false"},
	},
}

// PicklistTypes are the field types rendered with a nested valueSet block.
var PicklistTypes = []string{"Picklist", "MultiselectPicklist"}

// IsPicklist reports whether the field type carries a valueSet.
func IsPicklist(fieldType string) bool {
	for _, t := range PicklistTypes {
		if t == fieldType {
			return true
		}
	}
	return false
}

func fieldOptions(types []string) map[string][]string {
	boolean := []string{"true", "false"}
	return map[string][]string{
		"externalId":               boolean,
		"required":                 boolean,
		"type":                     types,
		"trackTrending":            boolean,
		"unique":                   boolean,
		"defaultValue":             boolean,
		"displayLocationInDecimal": boolean,
		"maskChar":                 {"asterisk", "X"},
		"maskType":                 {"all", "lastFour", "creditCard", "nino", "ssn", "sin"},
	}
}

func buildFieldSchemas() (map[string]*EntityTypeSchema, []string) {
	names := make([]string, 0, len(fieldTypes))
	for _, ft := range fieldTypes {
		names = append(names, ft.name)
	}
	options := fieldOptions(names)

	schemas := make(map[string]*EntityTypeSchema, len(fieldTypes))
	for _, ft := range fieldTypes {
		s := &EntityTypeSchema{
			Kind:          KindField,
			Name:          ft.name,
			TagOrder:      fieldTagOrder,
			Defaults:      make(map[string]*string, len(fieldTagOrder)),
			Required:      make(map[string]Requirement, len(fieldTagOrder)),
			AllowedValues: options,
		}
		for _, tag := range fieldTagOrder {
			s.Required[tag] = Optional
			s.Defaults[tag] = nil
			if v, ok := ft.defaults[tag]; ok {
				v := v
				s.Defaults[tag] = &v
			}
		}
		name := ft.name
		s.Defaults["type"] = &name
		for _, tag := range []string{"fullName", "label", "type"} {
			s.Required[tag] = Required
		}
		for _, tag := range ft.required {
			s.Required[tag] = Required
		}
		for _, tag := range ft.notApplicable {
			s.Required[tag] = NotApplicable
		}
		schemas[ft.name] = s
	}
	return schemas, names
}

// FieldValueSet is the CustomField element that carries picklist values.
const FieldValueSet = "valueSet"

// FieldMergeElements returns the CustomField child elements replaced when an
// existing field is updated: every rendered tag except fullName, then the
// picklist block.
func FieldMergeElements() []string {
	elements := make([]string, 0, len(fieldTagOrder))
	for _, tag := range fieldTagOrder {
		if tag != "fullName" {
			elements = append(elements, tag)
		}
	}
	return append(elements, FieldValueSet)
}
