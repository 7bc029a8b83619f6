package validation

import (
	"unicode"
	"unicode/utf8"
)

// Code identifies a validation message.
type Code string

// Message returns the English text for the code. Unknown codes render as
// the code itself.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return string(c)
}

const (
	CodeTypeOptions        Code = "validationTypeOptions"
	CodeIncompleteRow      Code = "validationIncompleteRow"
	CodePermissionNotFound Code = "validationPermissionNotFound"

	CodeFullNameFormat     Code = "validationFullNameFormat"
	CodeFullNameTail       Code = "validationFullNameTail"
	CodeFullNameUnderscore Code = "validationFullNameUnderscore"
	CodeFullNameBlank      Code = "validationFullNameBlank"
	CodeFullNameLength     Code = "validationFullNameLength"

	CodeLabelBlank     Code = "validationLabelBlank"
	CodeLabelLength    Code = "validationLabelLength"
	CodeDescriptionMax Code = "validationDescriptionMax"

	CodeScaleType                Code = "validationScaleType"
	CodeScaleNegative            Code = "validationScaleNegative"
	CodeScaleSum                 Code = "validationScaleSum"
	CodeScaleComparisonPrecision Code = "validationScaleComparisonPrecision"
	CodePrecisionType            Code = "validationPrecisionType"
	CodePrecisionNegative        Code = "validationPrecisionNegative"
	CodePrecisionSum             Code = "validationPrecisionSum"
	CodePrecisionComparisonScale Code = "validationPrecisionComparisonScale"

	CodeVisibleLinesType        Code = "validationVisibleLinesType"
	CodeVisibleLinesLongTextMin Code = "validationVisibleLinesLongTextMin"
	CodeVisibleLinesLongTextMax Code = "validationVisibleLinesLongTextMax"
	CodeVisibleLinesHtmlMin     Code = "validationVisibleLinesHtmlMin"
	CodeVisibleLinesPicklistMin Code = "validationVisibleLinesPicklistMin"
	CodeVisibleLinesPicklistMax Code = "validationVisibleLinesPicklistMax"

	CodeLengthType             Code = "validationLengthType"
	CodeLengthTextMin          Code = "validationLengthTextMin"
	CodeLengthTextMax          Code = "validationLengthTextMax"
	CodeLengthLongTextMin      Code = "validationLengthLongTextMin"
	CodeLengthLongTextMax      Code = "validationLengthLongTextMax"
	CodeLengthEncryptedTextMax Code = "validationLengthEncryptedTextMax"

	CodePicklistFullNameMax   Code = "validationPicklistFullNameMax"
	CodePicklistLabelMax      Code = "validationPicklistLabelMax"
	CodePicklistFullNameBlank Code = "validationPicklistFullNameBlank"
	CodePicklistLabelBlank    Code = "validationPicklistLabelBlank"

	CodeNoNameFieldLabel                  Code = "validationNoNameFieldLabel"
	CodeNoNameFieldDisplayFormat          Code = "validationNoNameFieldDisplayFormat"
	CodeNameFieldTypeOptions              Code = "validationNameFieldTypeOptions"
	CodeNameFieldLabelBlank               Code = "validationNameFieldLabelBlank"
	CodeNameFieldLabelLength              Code = "validationNameFieldLabelLengthFormat"
	CodeNameFieldDisplayFormatInvalidChar Code = "validationNameFieldDisplayFormatInvalidChar"
	CodeNameFieldDisplayFormatFormat      Code = "validationNameFieldDisplayFormatFormat"
	CodeNameFieldDisplayFormatDigits      Code = "validationNameFieldDisplayFormatDigits"
	CodeNameFieldDisplayFormatLength      Code = "validationNameFieldDisplayFormatLength"
)

// OptionsCode returns the code reported when a tag's value is not one of its
// allowed values, e.g. "validationTrackTrendingOptions" for trackTrending.
func OptionsCode(tag string) Code {
	r, size := utf8.DecodeRuneInString(tag)
	return Code("validation" + string(unicode.ToUpper(r)) + tag[size:] + "Options")
}

var messages = map[Code]string{
	CodeTypeOptions:        "The type must be one of:",
	CodeIncompleteRow:      "The row has fewer cells than the header and was skipped.",
	CodePermissionNotFound: "No permission with this name exists in the source profile:",

	CodeFullNameFormat:     "The fullName must start with a letter, end with a letter before the suffix, and use only letters, digits and underscores.",
	CodeFullNameTail:       "The fullName must end with __c.",
	CodeFullNameUnderscore: "The fullName must not contain consecutive underscores other than the __c suffix.",
	CodeFullNameBlank:      "The fullName is required.",
	CodeFullNameLength:     "The fullName must be 43 characters or fewer, including the __c suffix.",

	CodeLabelBlank:     "The label is required.",
	CodeLabelLength:    "The label must be 40 characters or fewer.",
	CodeDescriptionMax: "The description must be 1000 characters or fewer.",

	CodeScaleType:                "The scale must be an integer.",
	CodeScaleNegative:            "The scale must not be negative.",
	CodeScaleSum:                 "The sum of scale and precision must be 18 or less.",
	CodeScaleComparisonPrecision: "The scale must be less than 8.",
	CodePrecisionType:            "The precision must be an integer.",
	CodePrecisionNegative:        "The precision must not be negative.",
	CodePrecisionSum:             "The sum of precision and scale must be 18 or less.",
	CodePrecisionComparisonScale: "The precision requires a scale less than 8.",

	CodeVisibleLinesType:        "The visibleLines must be an integer.",
	CodeVisibleLinesLongTextMin: "The visibleLines must be 2 or more.",
	CodeVisibleLinesLongTextMax: "The visibleLines must be 50 or less.",
	CodeVisibleLinesHtmlMin:     "The visibleLines must be 10 or more.",
	CodeVisibleLinesPicklistMin: "The visibleLines must be 3 or more.",
	CodeVisibleLinesPicklistMax: "The visibleLines must be 10 or less.",

	CodeLengthType:             "The length must be an integer.",
	CodeLengthTextMin:          "The length must be 1 or more.",
	CodeLengthTextMax:          "The length must be 255 or less.",
	CodeLengthLongTextMin:      "The length must be 256 or more.",
	CodeLengthLongTextMax:      "The length must be 131072 or less.",
	CodeLengthEncryptedTextMax: "The length must be 175 or less.",

	CodePicklistFullNameMax:   "The number of picklistFullName values must match the number of picklistLabel values.",
	CodePicklistLabelMax:      "The number of picklistLabel values must match the number of picklistFullName values.",
	CodePicklistFullNameBlank: "Each picklistFullName value is required.",
	CodePicklistLabelBlank:    "Each picklistLabel value is required.",

	CodeNoNameFieldLabel:                  "The nameFieldLabel column is required.",
	CodeNoNameFieldDisplayFormat:          "The nameFieldDisplayFormat column is required for AutoNumber name fields.",
	CodeNameFieldTypeOptions:              "The nameFieldType must be one of:",
	CodeNameFieldLabelBlank:               "The nameFieldLabel is required.",
	CodeNameFieldLabelLength:              "The nameFieldLabel must be 80 characters or fewer.",
	CodeNameFieldDisplayFormatInvalidChar: "The nameFieldDisplayFormat must not contain:",
	CodeNameFieldDisplayFormatFormat:      "The nameFieldDisplayFormat must contain a number placeholder such as {0000}.",
	CodeNameFieldDisplayFormatDigits:      "The number placeholder of nameFieldDisplayFormat must have 10 digits or fewer.",
	CodeNameFieldDisplayFormatLength:      "The nameFieldDisplayFormat must be 30 characters or fewer.",
}

// optionsMessage is used for enumerated tags that have no dedicated text.
func optionsMessage(tag string) string {
	return "The " + tag + " must be one of:"
}

func init() {
	for _, tag := range []string{
		"externalId", "required", "trackTrending", "unique", "defaultValue",
		"displayLocationInDecimal", "maskChar", "maskType",
		"allowInChatterGroups", "deploymentStatus", "enableActivities", "enableBulkApi",
		"enableHistory", "enableReports", "enableSearch", "enableSharing", "enableStreamingApi",
		"editable", "readable", "allowCreate", "allowDelete", "allowEdit", "allowRead",
		"modifyAllRecords", "viewAllRecords", "enabled", "default", "visible", "visibility",
	} {
		code := OptionsCode(tag)
		if _, ok := messages[code]; !ok {
			messages[code] = optionsMessage(tag)
		}
	}
}
