// =============================================================================
// Metadata Generator - XLSX Workbook Reader/Writer
// =============================================================================
//
// This module moves tables in and out of Excel workbooks so the generate
// commands can take an .xlsx input in place of a CSV file, and the convert
// and template commands can write their output as a workbook.
//
// Only the first sheet of a workbook is read. Written workbooks hold a single
// sheet named DefaultSheet.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the name of the sheet created by excelize.NewFile.
const DefaultSheet = "Sheet1"

// Extension is the file extension recognized as a workbook.
const Extension = ".xlsx"

// IsWorkbook reports whether the path names an .xlsx workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(extensionOf(path), Extension)
}

func extensionOf(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}

// =============================================================================
// READING
// =============================================================================

// ReadRows returns every row of the first sheet of a workbook.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//
// RETURNS:
//   - The rows as returned by excelize. Trailing empty cells of a row are
//     not included, so rows may be shorter than the header.
//   - An error if the workbook cannot be opened or has no sheets.
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteRows writes a header and data rows to a new single-sheet workbook.
//
// PARAMETERS:
//   - path: The destination path. An existing file is overwritten.
//   - header: The first row.
//   - rows: The data rows, written below the header in order.
//
// RETURNS:
//   - An error if a cell reference cannot be built or the file cannot be saved.
func WriteRows(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)

	for i := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build cell reference for row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(all[i]))
		for j, v := range all[i] {
			values[j] = v
		}
		if err := f.SetSheetRow(DefaultSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
