package validation_test

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
	"github.com/stretchr/testify/require"
)

// validateRow runs every tag of the row's schema and returns the recorded
// failures as "Location Code" strings.
func validateRow(t *testing.T, kind schema.Kind, header []string, cells ...string) []string {
	t.Helper()

	ctx := validation.NewContext()
	v := validation.New(schema.Default(), ctx)
	row := types.Row{Cells: cells, Index: 1}

	s := v.Type(kind, row, header)
	if s != nil {
		for _, tag := range s.TagOrder {
			v.Validate(s, tag, row, header)
		}
	}
	return codes(ctx)
}

func codes(ctx *validation.Context) []string {
	var out []string
	for _, r := range ctx.Results() {
		out = append(out, r.Location.String()+" "+string(r.Code))
	}
	return out
}

func TestLocationString(t *testing.T) {
	require.Equal(t, "Row2Col3", validation.Location{Row: 2, Col: 3}.String())

	header := types.Header{"fullName", "label"}
	row := types.Row{Cells: []string{"A__c", "A"}, Index: 4}
	require.Equal(t, validation.Location{Row: 5, Col: 2}, validation.At(row, header, "label"))
	require.Equal(t, validation.Location{Row: 5, Col: 0}, validation.At(row, header, "type"))
}

func TestContextAdd(t *testing.T) {
	ctx := validation.NewContext()
	require.False(t, ctx.HasFailures())

	ctx.Add(validation.Location{Row: 2, Col: 1}, validation.CodeFullNameBlank)
	ctx.Add(validation.Location{Row: 2, Col: 5}, validation.CodeTypeOptions, "Text", "Number")

	require.True(t, ctx.HasFailures())
	require.Equal(t, 2, ctx.Len())

	results := ctx.Results()
	require.Equal(t, validation.CodeFullNameBlank.Message(), results[0].Message)
	require.Equal(t, validation.CodeTypeOptions.Message()+" Text,Number", results[1].Message)
}

func TestOptionsCode(t *testing.T) {
	require.Equal(t, validation.Code("validationTrackTrendingOptions"), validation.OptionsCode("trackTrending"))
	require.Equal(t, validation.CodeNameFieldTypeOptions, validation.OptionsCode("nameFieldType"))
	require.Equal(t, "The visibility must be one of:", validation.OptionsCode("visibility").Message())
}

// =============================================================================
// FIELDS
// =============================================================================

func TestFieldValidRow(t *testing.T) {
	header := []string{"fullName", "type", "label", "length"}
	got := validateRow(t, schema.KindField, header, "Test_Field__c", "Text", "Test Field", "255")
	require.Empty(t, got)
}

func TestFieldUnknownType(t *testing.T) {
	ctx := validation.NewContext()
	v := validation.New(schema.Default(), ctx)
	header := types.Header{"fullName", "label", "type"}
	row := types.Row{Cells: []string{"A__c", "A", "Textual"}, Index: 1}

	require.Nil(t, v.Type(schema.KindField, row, header))

	results := ctx.Results()
	require.Len(t, results, 1)
	require.Equal(t, "Row2Col3", results[0].Location.String())
	require.Equal(t, validation.CodeTypeOptions, results[0].Code)
	require.True(t, strings.HasSuffix(results[0].Message, strings.Join(schema.Default().FieldTypes(), ",")))
}

func TestFieldFullName(t *testing.T) {
	header := []string{"fullName", "type", "label"}

	tests := []struct {
		name     string
		fullName string
		expected []string
	}{
		{name: "valid", fullName: "Test_Field__c"},
		{name: "bad characters", fullName: "bad-name", expected: []string{
			"Row2Col1 validationFullNameFormat",
			"Row2Col1 validationFullNameTail",
		}},
		{name: "missing suffix", fullName: "Amount", expected: []string{
			"Row2Col1 validationFullNameTail",
		}},
		{name: "second double underscore", fullName: "ns__Amount__c", expected: []string{
			"Row2Col1 validationFullNameUnderscore",
		}},
		{name: "blank", fullName: "", expected: []string{
			"Row2Col1 validationFullNameFormat",
			"Row2Col1 validationFullNameTail",
			"Row2Col1 validationFullNameBlank",
		}},
		{name: "too long", fullName: strings.Repeat("a", 41) + "__c", expected: []string{
			"Row2Col1 validationFullNameLength",
		}},
		{name: "longest allowed", fullName: strings.Repeat("a", 40) + "__c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRow(t, schema.KindField, header, tt.fullName, "Text", "Label")
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestFieldLabel(t *testing.T) {
	header := []string{"fullName", "type", "label"}

	tests := []struct {
		name     string
		label    string
		expected []string
	}{
		{name: "forty characters", label: strings.Repeat("x", 40)},
		{name: "forty one characters", label: strings.Repeat("x", 41), expected: []string{
			"Row2Col3 validationLabelLength",
		}},
		{name: "quoted uses larger budget", label: `"` + strings.Repeat("x", 40) + `"`},
		{name: "quoted pairs extend the budget", label: `"` + strings.Repeat("x", 37) + `""y"""`},
		{name: "quoted over budget", label: `"` + strings.Repeat("x", 42) + `"`, expected: []string{
			"Row2Col3 validationLabelLength",
		}},
		{name: "blank", label: "", expected: []string{
			"Row2Col3 validationLabelBlank",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRow(t, schema.KindField, header, "A_b__c", "Text", tt.label)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestFieldEnumerations(t *testing.T) {
	header := []string{"fullName", "type", "label", "required", "unique", "externalId", "defaultValue"}

	got := validateRow(t, schema.KindField, header, "A_b__c", "Checkbox", "A", "TRUE", "False", "maybe", "yes")
	require.Equal(t, []string{
		// externalId only applies to Number, Email and Text.
		"Row2Col7 validationDefaultValueOptions",
	}, got)

	got = validateRow(t, schema.KindField, header, "A_b__c", "Text", "A", "no", "", "maybe", "yes")
	require.Equal(t, []string{
		"Row2Col6 validationExternalIdOptions",
		"Row2Col4 validationRequiredOptions",
	}, got)
}

func TestFieldMaskTypeIsCaseSensitive(t *testing.T) {
	header := []string{"fullName", "type", "label", "maskChar", "maskType"}

	got := validateRow(t, schema.KindField, header, "A_b__c", "EncryptedText", "A", "x", "ALL")
	require.Equal(t, []string{
		"Row2Col4 validationMaskCharOptions",
		"Row2Col5 validationMaskTypeOptions",
	}, got)
}

func TestFieldScaleAndPrecision(t *testing.T) {
	header := []string{"fullName", "type", "label", "scale", "precision"}

	tests := []struct {
		name      string
		scale     string
		precision string
		expected  []string
	}{
		{name: "defaults", scale: "", precision: ""},
		{name: "valid", scale: "2", precision: "16"},
		{name: "scale 8 precision 10", scale: "8", precision: "10", expected: []string{
			"Row2Col4 validationScaleComparisonPrecision",
			"Row2Col5 validationPrecisionComparisonScale",
		}},
		{name: "scale 9 precision 9", scale: "9", precision: "9", expected: []string{
			"Row2Col4 validationScaleComparisonPrecision",
			"Row2Col5 validationPrecisionComparisonScale",
		}},
		{name: "sum over 18", scale: "4", precision: "15", expected: []string{
			"Row2Col4 validationScaleSum",
			"Row2Col5 validationPrecisionSum",
		}},
		{name: "negative scale", scale: "-1", precision: "10", expected: []string{
			"Row2Col4 validationScaleNegative",
		}},
		{name: "decimal forms are integers", scale: "2.0", precision: "1e1"},
		{name: "not a number", scale: "two", precision: "10", expected: []string{
			"Row2Col4 validationScaleType",
			"Row2Col5 validationScaleType",
		}},
		{name: "fraction", scale: "1.5", precision: "10", expected: []string{
			"Row2Col4 validationScaleType",
			"Row2Col5 validationScaleType",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRow(t, schema.KindField, header, "A_b__c", "Number", "A", tt.scale, tt.precision)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestFieldScaleIgnoredForText(t *testing.T) {
	header := []string{"fullName", "type", "label", "scale", "precision"}
	got := validateRow(t, schema.KindField, header, "A_b__c", "Text", "A", "99", "99")
	require.Empty(t, got)
}

func TestFieldLengthAndVisibleLines(t *testing.T) {
	header := []string{"fullName", "type", "label", "length", "visibleLines"}

	tests := []struct {
		name         string
		fieldType    string
		length       string
		visibleLines string
		expected     []string
	}{
		{name: "text bounds", fieldType: "Text", length: "256", expected: []string{
			"Row2Col4 validationLengthTextMax",
		}},
		{name: "text zero", fieldType: "Text", length: "0", expected: []string{
			"Row2Col4 validationLengthTextMin",
		}},
		{name: "long text", fieldType: "LongTextArea", length: "255", visibleLines: "51", expected: []string{
			"Row2Col5 validationVisibleLinesLongTextMax",
			"Row2Col4 validationLengthLongTextMin",
		}},
		{name: "html", fieldType: "Html", length: "131073", visibleLines: "9", expected: []string{
			"Row2Col5 validationVisibleLinesHtmlMin",
			"Row2Col4 validationLengthLongTextMax",
		}},
		{name: "encrypted", fieldType: "EncryptedText", length: "176", expected: []string{
			"Row2Col4 validationLengthEncryptedTextMax",
		}},
		{name: "multiselect", fieldType: "MultiselectPicklist", visibleLines: "2", expected: []string{
			"Row2Col5 validationVisibleLinesPicklistMin",
		}},
		{name: "not an integer", fieldType: "LongTextArea", length: "1000.5", visibleLines: "abc", expected: []string{
			"Row2Col5 validationVisibleLinesType",
			"Row2Col4 validationLengthType",
		}},
		{name: "valid long text", fieldType: "LongTextArea", length: "32768", visibleLines: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRow(t, schema.KindField, header, "A_b__c", tt.fieldType, "A", tt.length, tt.visibleLines)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestPicklist(t *testing.T) {
	header := types.Header{"fullName", "type", "label", "picklistFullName", "picklistLabel"}

	tests := []struct {
		name     string
		names    string
		labels   string
		valid    bool
		expected []string
	}{
		{name: "matching", names: "A;B", labels: "Alpha;Beta", valid: true},
		{name: "mismatched counts", names: "A;B", labels: "X", expected: []string{
			"Row2Col4 validationPicklistFullNameMax",
			"Row2Col5 validationPicklistLabelMax",
		}},
		{name: "blank entries", names: "A;", labels: ";B", expected: []string{
			"Row2Col5 validationPicklistLabelBlank",
			"Row2Col4 validationPicklistFullNameBlank",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := validation.NewContext()
			v := validation.New(schema.Default(), ctx)
			row := types.Row{Cells: []string{"P__c", "Picklist", "P", tt.names, tt.labels}, Index: 1}

			names, labels, ok := v.Picklist(row, header)
			require.Equal(t, tt.valid, ok)
			require.Equal(t, strings.Split(tt.names, ";"), names)
			require.Equal(t, strings.Split(tt.labels, ";"), labels)
			require.Equal(t, tt.expected, codes(ctx))
		})
	}
}

// =============================================================================
// OBJECTS
// =============================================================================

func TestObjectTags(t *testing.T) {
	header := []string{"fullName", "label", "deploymentStatus", "enableSearch", "nameFieldType"}

	tests := []struct {
		name     string
		cells    []string
		expected []string
	}{
		{name: "valid", cells: []string{"Account__c", "Account", "Deployed", "TRUE", "Text"}},
		{name: "single letter format", cells: []string{"A", "A", "", "", ""}, expected: []string{
			"Row2Col1 validationFullNameTail",
		}},
		{name: "single digit", cells: []string{"1", "A", "", "", ""}, expected: []string{
			"Row2Col1 validationFullNameFormat",
			"Row2Col1 validationFullNameTail",
		}},
		{name: "blank name", cells: []string{"", "A", "", "", ""}, expected: []string{
			"Row2Col1 validationFullNameTail",
			"Row2Col1 validationFullNameBlank",
		}},
		{name: "case sensitive enums", cells: []string{"Account__c", "Account", "deployed", "yes", "text"}, expected: []string{
			"Row2Col3 validationDeploymentStatusOptions",
			"Row2Col4 validationEnableSearchOptions",
			"Row2Col5 validationNameFieldTypeOptions",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRow(t, schema.KindObject, header, tt.cells...)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestObjectAbsentColumnsAreNotChecked(t *testing.T) {
	got := validateRow(t, schema.KindObject, []string{"fullName"}, "Account__c")
	require.Empty(t, got)
}

func TestObjectDescription(t *testing.T) {
	header := []string{"fullName", "description"}
	got := validateRow(t, schema.KindObject, header, "Account__c", strings.Repeat("d", 1001))
	require.Equal(t, []string{"Row2Col2 validationDescriptionMax"}, got)
}

func TestNameField(t *testing.T) {
	full := types.Header{"fullName", "nameFieldType", "nameFieldLabel", "nameFieldDisplayFormat"}

	tests := []struct {
		name     string
		header   types.Header
		cells    []string
		expected []string
	}{
		{name: "text", header: full, cells: []string{"A__c", "Text", "Name", ""}},
		{name: "auto number", header: full, cells: []string{"A__c", "AutoNumber", "Number", "A-{0000}"}},
		{name: "no label column", header: types.Header{"fullName", "nameFieldType"}, cells: []string{"A__c", "Text"}, expected: []string{
			"Row2Col2 validationNoNameFieldLabel",
		}},
		{name: "blank type", header: full, cells: []string{"A__c", "", "Name", ""}, expected: []string{
			"Row2Col2 validationNameFieldTypeOptions",
		}},
		{name: "blank label", header: full, cells: []string{"A__c", "Text", "", ""}, expected: []string{
			"Row2Col3 validationNameFieldLabelBlank",
		}},
		{name: "long label", header: full, cells: []string{"A__c", "Text", strings.Repeat("n", 81), ""}, expected: []string{
			"Row2Col3 validationNameFieldLabelLengthFormat",
		}},
		{name: "no display format column", header: types.Header{"fullName", "nameFieldType", "nameFieldLabel"}, cells: []string{"A__c", "AutoNumber", "N"}, expected: []string{
			"Row2Col2 validationNoNameFieldDisplayFormat",
		}},
		{name: "invalid characters", header: full, cells: []string{"A__c", "AutoNumber", "N", "A:{000}"}, expected: []string{
			"Row2Col4 validationNameFieldDisplayFormatInvalidChar",
		}},
		{name: "no placeholder", header: full, cells: []string{"A__c", "AutoNumber", "N", "A-{}"}, expected: []string{
			"Row2Col4 validationNameFieldDisplayFormatFormat",
		}},
		{name: "too many digits", header: full, cells: []string{"A__c", "AutoNumber", "N", "{00000000000}"}, expected: []string{
			"Row2Col4 validationNameFieldDisplayFormatDigits",
		}},
		{name: "too long", header: full, cells: []string{"A__c", "AutoNumber", "N", strings.Repeat("A", 25) + "{0000}"}, expected: []string{
			"Row2Col4 validationNameFieldDisplayFormatLength",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := validation.NewContext()
			v := validation.New(schema.Default(), ctx)
			ok := v.NameField(types.Row{Cells: tt.cells, Index: 1}, tt.header)
			require.Equal(t, len(tt.expected) == 0, ok)
			require.Equal(t, tt.expected, codes(ctx))
		})
	}
}

// =============================================================================
// PROFILES
// =============================================================================

func TestPermissions(t *testing.T) {
	header := []string{"fullName", "type", "editable", "readable", "visibility", "enabled"}

	got := validateRow(t, schema.KindProfile, header, "Account.Name", "fieldPermissions", "TRUE", "nope", "Hidden", "x")
	require.Equal(t, []string{"Row2Col4 validationReadableOptions"}, got)

	got = validateRow(t, schema.KindProfile, header, "Account", "tabVisibilities", "", "", "hidden", "")
	require.Equal(t, []string{"Row2Col5 validationVisibilityOptions"}, got)

	got = validateRow(t, schema.KindProfile, header, "Account", "teamPermissions", "", "", "", "")
	require.Equal(t, []string{"Row2Col2 validationTypeOptions"}, got)
}

func TestIncompleteRowAndPermissionNotFound(t *testing.T) {
	ctx := validation.NewContext()
	v := validation.New(schema.Default(), ctx)
	header := types.Header{"fullName", "type", "enabled"}

	v.IncompleteRow(types.Row{Cells: []string{"A", "B"}, Index: 3})
	v.PermissionNotFound(types.Row{Cells: []string{"Missing", "classAccesses", "true"}, Index: 4}, header, "Missing")

	require.Equal(t, []string{
		"Row4Col3 validationIncompleteRow",
		"Row5Col1 validationPermissionNotFound",
	}, codes(ctx))
	require.True(t, strings.HasSuffix(ctx.Results()[1].Message, " Missing"))
}
