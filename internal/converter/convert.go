package converter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ginjaninja78/metadata-generator/internal/merger"
	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
	"github.com/ginjaninja78/metadata-generator/internal/xlsxparser"
	"github.com/ginjaninja78/metadata-generator/internal/xmlwriter"
	"github.com/ginjaninja78/metadata-generator/pkg/utils"
)

// =============================================================================
// OUTPUT FORMAT
// =============================================================================

// Format is the file type written by convert and template commands.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a flag value to a Format. An empty value is CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(value)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown format %q (want csv or xlsx)", value)
	}
}

// ConvertOptions are the flags of a convert command.
type ConvertOptions struct {
	// Source is the metadata directory, or the profile file.
	Source string

	// OutputDir receives the table.
	OutputDir string

	// Format selects CSV or XLSX output.
	Format Format
}

// writeTable writes header and rows to <dir>/<base>.<format>.
func writeTable(dir, base string, format Format, header []string, rows [][]string) (string, error) {
	if format == "" {
		format = FormatCSV
	}
	path := filepath.Join(dir, base+"."+string(format))

	if format == FormatXLSX {
		if err := xlsxparser.WriteRows(path, header, rows); err != nil {
			return "", errors.Wrapf(err, "failed to write %s", path)
		}
		return path, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", errors.Wrap(err, "failed to encode header")
	}
	if err := w.WriteAll(rows); err != nil {
		return "", errors.Wrap(err, "failed to encode rows")
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Converter) checkConvertPaths(opts ConvertOptions, sourceIsDir bool) error {
	if sourceIsDir && !utils.DirExists(opts.Source) || !sourceIsDir && !utils.FileExists(opts.Source) {
		return errors.Wrapf(ErrSourceNotFound, "failed to open %s", opts.Source)
	}
	if !utils.DirExists(opts.OutputDir) {
		return errors.Wrapf(ErrOutputNotFound, "failed to open %s", opts.OutputDir)
	}
	return nil
}

func readDocument(path string) (*merger.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	doc, err := merger.Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return doc, nil
}

// value returns the unescaped content of a direct child, or "".
func value(doc *merger.Document, tag string) string {
	v, _ := doc.Value(tag)
	return xmlwriter.Unescape(strings.TrimSpace(v))
}

// =============================================================================
// FIELDS
// =============================================================================

// ConvertFields turns every *.field-meta.xml under opts.Source whose
// fullName ends in __c into one row of field-meta.csv (or .xlsx).
//
// RETURNS:
//   - The path of the written table.
//   - ErrSourceNotFound or ErrOutputNotFound when a directory is missing.
func (c *Converter) ConvertFields(opts ConvertOptions) (string, error) {
	if err := c.checkConvertPaths(opts, true); err != nil {
		return "", err
	}

	files, err := utils.FindFiles(opts.Source, "**/*"+FieldExtension)
	if err != nil {
		return "", err
	}

	tags := c.catalog.FieldTagOrder()
	header := append(append([]string(nil), tags...), "picklistFullName", "picklistLabel")

	var rows [][]string
	for _, path := range files {
		doc, err := readDocument(path)
		if err != nil {
			return "", err
		}
		if !strings.HasSuffix(value(doc, "fullName"), "__c") {
			c.logger.Debug("skipping standard field", "path", path)
			continue
		}

		row := make([]string, 0, len(header))
		for _, tag := range tags {
			row = append(row, value(doc, tag))
		}
		names, labels, err := picklistValues(doc)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", path)
		}
		row = append(row,
			strings.Join(names, validation.PicklistSeparator),
			strings.Join(labels, validation.PicklistSeparator))
		rows = append(rows, row)
	}

	path, err := writeTable(opts.OutputDir, "field-meta", opts.Format, header, rows)
	if err != nil {
		return "", err
	}
	c.logger.Info("converted fields", "files", len(files), "rows", len(rows), "output", path)
	return path, nil
}

// picklistValues reads valueSet/valueSetDefinition/value entries.
func picklistValues(doc *merger.Document) ([]string, []string, error) {
	vs, ok := doc.Child(schema.FieldValueSet)
	if !ok {
		return nil, nil, nil
	}
	valueSet, err := doc.Sub(vs)
	if err != nil {
		return nil, nil, err
	}
	def, ok := valueSet.Child("valueSetDefinition")
	if !ok {
		return nil, nil, nil
	}
	definition, err := valueSet.Sub(def)
	if err != nil {
		return nil, nil, err
	}

	var names, labels []string
	for _, e := range definition.ChildrenNamed("value") {
		v, err := definition.Sub(e)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, value(v, "fullName"))
		labels = append(labels, value(v, "label"))
	}
	return names, labels, nil
}

// =============================================================================
// OBJECTS
// =============================================================================

// ConvertObjects turns every <dir>/<dir>.object-meta.xml under opts.Source,
// where dir contains __c, into one row of object-meta.csv (or .xlsx).
func (c *Converter) ConvertObjects(opts ConvertOptions) (string, error) {
	if err := c.checkConvertPaths(opts, true); err != nil {
		return "", err
	}

	dirs, err := utils.SubDirs(opts.Source)
	if err != nil {
		return "", err
	}

	header := c.catalog.Object().TagOrder
	extension := "." + c.catalog.ObjectSettings().Extension

	var rows [][]string
	for _, dir := range dirs {
		if !strings.Contains(dir, "__c") {
			continue
		}
		path := filepath.Join(opts.Source, dir, dir+extension)
		if !utils.FileExists(path) {
			c.logger.Debug("skipping directory without object file", "dir", dir)
			continue
		}

		doc, err := readDocument(path)
		if err != nil {
			return "", err
		}
		nameField, err := subDocument(doc, "nameField")
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", path)
		}

		row := make([]string, 0, len(header))
		for _, tag := range header {
			switch tag {
			case "fullName":
				row = append(row, dir)
			case "nameFieldType":
				row = append(row, value(nameField, "type"))
			case "nameFieldLabel":
				row = append(row, value(nameField, "label"))
			case "nameFieldDisplayFormat":
				row = append(row, value(nameField, "displayFormat"))
			default:
				row = append(row, value(doc, tag))
			}
		}
		rows = append(rows, row)
	}

	path, err := writeTable(opts.OutputDir, "object-meta", opts.Format, header, rows)
	if err != nil {
		return "", err
	}
	c.logger.Info("converted objects", "rows", len(rows), "output", path)
	return path, nil
}

// subDocument parses the first child with the given name. A missing child
// yields an empty document.
func subDocument(doc *merger.Document, name string) (*merger.Document, error) {
	e, ok := doc.Child(name)
	if !ok {
		return merger.Parse("<" + name + "/>")
	}
	return doc.Sub(e)
}

// =============================================================================
// PROFILES
// =============================================================================

// ConvertProfile turns every permission block of opts.Source into one row
// of profile-meta.csv (or .xlsx): fullName is the block key, type the
// block name, then one column per permission tag.
func (c *Converter) ConvertProfile(opts ConvertOptions) (string, error) {
	if err := c.checkConvertPaths(opts, false); err != nil {
		return "", err
	}

	text, err := os.ReadFile(opts.Source)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", opts.Source)
	}
	set, err := merger.NewPermissionSet(string(text), c.catalog.PermissionKeyTags())
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", opts.Source)
	}

	tags := c.catalog.PermissionTags()
	header := append([]string{"fullName", "type"}, tags...)

	var rows [][]string
	for _, b := range set.Blocks() {
		row := []string{b.Key, b.Type}
		for _, tag := range tags {
			v, _ := b.Value(tag)
			row = append(row, xmlwriter.Unescape(strings.TrimSpace(v)))
		}
		rows = append(rows, row)
	}

	path, err := writeTable(opts.OutputDir, "profile-meta", opts.Format, header, rows)
	if err != nil {
		return "", err
	}
	c.logger.Info("converted profile", "blocks", len(rows), "output", path)
	return path, nil
}

// =============================================================================
// TEMPLATE
// =============================================================================

// Template writes the sample object input to <outputDir>/template.csv (or
// .xlsx).
func (c *Converter) Template(outputDir string, format Format) (string, error) {
	if !utils.DirExists(outputDir) {
		return "", errors.Wrapf(ErrOutputNotFound, "failed to open %s", outputDir)
	}

	tpl := c.catalog.Template()
	path, err := writeTable(outputDir, "template", format, tpl.Header, tpl.Rows)
	if err != nil {
		return "", err
	}
	c.printer.Message("Successfully created template in %s.", outputDir)
	return path, nil
}
