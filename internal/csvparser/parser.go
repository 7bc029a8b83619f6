// =============================================================================
// Metadata Generator - Delimited Input Parser
// =============================================================================
//
// This module turns a delimited text file into a header and data rows:
//   - Split on newline and trim each line
//   - Split each line on the delimiter and trim each cell
//   - Drop rows shorter than the header (incomplete rows)
//
// Quotes are NOT interpreted here. A cell keeps any surrounding double quotes
// and doubled quotes exactly as written; the renderer normalizes them. This
// keeps label length checks working on the raw cell text.
//
// Workbook inputs (.xlsx) are read through xlsxparser and go through the same
// row rules, except that short rows are padded to the header width because
// workbooks do not store trailing empty cells.
//
// =============================================================================

package csvparser

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/xlsxparser"
)

// DefaultDelimiter separates cells when no delimiter is configured.
const DefaultDelimiter = ","

// =============================================================================
// INCOMPLETE ROW POLICY
// =============================================================================

// IncompleteRowPolicy decides what happens to a row with fewer cells than
// the header.
type IncompleteRowPolicy string

const (
	// SkipSilent drops incomplete rows without recording anything.
	SkipSilent IncompleteRowPolicy = "skip-silent"

	// Report drops incomplete rows and records a validation failure for each.
	Report IncompleteRowPolicy = "report"
)

// ParsePolicy converts a configuration value to an IncompleteRowPolicy.
func ParsePolicy(value string) (IncompleteRowPolicy, error) {
	switch IncompleteRowPolicy(value) {
	case SkipSilent, Report:
		return IncompleteRowPolicy(value), nil
	case "":
		return SkipSilent, nil
	default:
		return "", fmt.Errorf("unknown incomplete row policy %q (want %q or %q)", value, SkipSilent, Report)
	}
}

// =============================================================================
// TABLE
// =============================================================================

// Table is a parsed input file.
type Table struct {
	// Header contains the trimmed cells of the first line.
	Header types.Header

	// Rows contains every data row with at least as many cells as Header,
	// in input order.
	Rows []types.Row

	// Incomplete contains the non-blank rows that were dropped because they
	// have fewer cells than Header.
	Incomplete []types.Row

	// SourceFile is the path the table was read from, empty for Parse.
	SourceFile string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse splits delimited text into a Table.
//
// PARAMETERS:
//   - text: The full input text.
//   - delimiter: The cell separator. Aliases are resolved with
//     ResolveDelimiter; an empty value means DefaultDelimiter.
//
// RETURNS:
//   - The parsed table. Blank lines are ignored but still count towards row
//     line numbers.
//   - An error if the text has no header line.
func Parse(text, delimiter string) (*Table, error) {
	delimiter = ResolveDelimiter(delimiter)
	lines := strings.Split(text, "\n")

	table := &Table{}
	headerSeen := false

	for index, line := range lines {
		line = strings.TrimSpace(line)

		if !headerSeen {
			if line == "" {
				return nil, fmt.Errorf("input has no header line")
			}
			table.Header = splitCells(line, delimiter)
			headerSeen = true
			continue
		}

		if line == "" {
			continue
		}

		row := types.Row{Cells: splitCells(line, delimiter), Index: index}
		if len(row.Cells) < len(table.Header) {
			table.Incomplete = append(table.Incomplete, row)
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if !headerSeen {
		return nil, fmt.Errorf("input has no header line")
	}
	return table, nil
}

// ParseFile reads an input file and parses it into a Table.
//
// PARAMETERS:
//   - path: A delimited text file, or an .xlsx workbook.
//   - delimiter: The cell separator for text files. Ignored for workbooks.
//
// RETURNS:
//   - The parsed table with SourceFile set.
//   - An error if the file cannot be read or has no header.
func ParseFile(path, delimiter string) (*Table, error) {
	var (
		table *Table
		err   error
	)

	if xlsxparser.IsWorkbook(path) {
		table, err = parseWorkbook(path)
	} else {
		var content []byte
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		table, err = Parse(string(content), delimiter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	table.SourceFile = path
	return table, nil
}

// parseWorkbook builds a Table from the first sheet of a workbook.
func parseWorkbook(path string) (*Table, error) {
	rows, err := xlsxparser.ReadRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || isRowEmpty(rows[0]) {
		return nil, fmt.Errorf("input has no header line")
	}

	table := &Table{Header: trimCells(rows[0])}
	for index := 1; index < len(rows); index++ {
		if isRowEmpty(rows[index]) {
			continue
		}
		cells := trimCells(rows[index])
		for len(cells) < len(table.Header) {
			cells = append(cells, "")
		}
		table.Rows = append(table.Rows, types.Row{Cells: cells, Index: index})
	}
	return table, nil
}

// ResolveDelimiter maps delimiter aliases to the literal separator.
//
// Recognized aliases are "tab" and "\t", "pipe", "semicolon" and "comma"
// (case-insensitive). Any other non-empty value is used as-is, so
// multi-character separators are allowed.
func ResolveDelimiter(delimiter string) string {
	switch strings.ToLower(delimiter) {
	case "":
		return DefaultDelimiter
	case "\\t", "tab":
		return "\t"
	case "pipe":
		return "|"
	case "semicolon":
		return ";"
	case "comma":
		return ","
	default:
		return delimiter
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func splitCells(line, delimiter string) []string {
	return trimCells(strings.Split(line, delimiter))
}

func trimCells(cells []string) []string {
	trimmed := make([]string, len(cells))
	for i, cell := range cells {
		trimmed[i] = strings.TrimSpace(cell)
	}
	return trimmed
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
