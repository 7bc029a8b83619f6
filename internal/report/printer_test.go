package report_test

import (
	"bytes"
	"testing"

	"github.com/ginjaninja78/metadata-generator/internal/report"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf)

	p.Table([]string{"NAME", "PATH"}, [][]string{
		{"A__c", "out/A__c"},
		{"Longer__c", "out/Longer__c"},
	})

	want := "NAME     \tPATH\n" +
		"─────────\t─────────────\t\n" +
		"A__c     \tout/A__c\n" +
		"Longer__c\tout/Longer__c\n"
	require.Equal(t, want, buf.String())
}

func TestTableHeaderWiderThanCells(t *testing.T) {
	var buf bytes.Buffer
	report.NewPrinter(&buf).Table([]string{"FULLNAME", "PATH"}, [][]string{{"A", "p"}})

	want := "FULLNAME\tPATH\n" +
		"────────\t────\t\n" +
		"A       \tp\n"
	require.Equal(t, want, buf.String())
}

func TestValidationFailures(t *testing.T) {
	ctx := validation.NewContext()
	ctx.Add(validation.Location{Row: 2, Col: 1}, validation.CodeFullNameBlank)

	var buf bytes.Buffer
	report.NewPrinter(&buf).ValidationFailures(ctx.Results())

	want := "INDEX   \tPROBLEM\n" +
		"────────\t─────────────────────────\t\n" +
		"Row2Col1\tThe fullName is required.\n"
	require.Equal(t, want, buf.String())
}

func TestGeneratedAndFailures(t *testing.T) {
	var buf bytes.Buffer
	p := report.NewPrinter(&buf)

	p.Generated([]report.Saved{{Name: "A__c.field-meta.xml", Path: "out/A__c.field-meta.xml"}})
	p.Failures(nil)
	p.Failures([]string{"Failed to save B__c.field-meta.xml. The file already exists."})

	want := "=== Generated Source\n" +
		"FULLNAME           \tPATH\n" +
		"───────────────────\t───────────────────────\t\n" +
		"A__c.field-meta.xml\tout/A__c.field-meta.xml\n" +
		"\n=== Failure\n" +
		"Failed to save B__c.field-meta.xml. The file already exists.\n"
	require.Equal(t, want, buf.String())
}
