// =============================================================================
// Metadata Generator - Command Orchestration
// =============================================================================
//
// This module runs the generate and convert commands end to end. Every
// command owns its state for exactly one invocation; nothing is shared
// between runs.
//
// GENERATE PIPELINE:
//   1. Check that the input file and output directory exist
//   2. Parse the input into a header and rows
//   3. Validate and render every row, collecting failures
//   4. If any row failed validation, print every failure and stop before
//      writing anything
//   5. Write (or merge) one file per rendered row
//   6. Print the saved files, then the per-row save failures
//
// A save failure (for example, a file that already exists without
// --updates) does not stop the remaining rows.
//
// =============================================================================

package converter

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ginjaninja78/metadata-generator/internal/config"
	"github.com/ginjaninja78/metadata-generator/internal/csvparser"
	"github.com/ginjaninja78/metadata-generator/internal/merger"
	"github.com/ginjaninja78/metadata-generator/internal/report"
	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/validation"
	"github.com/ginjaninja78/metadata-generator/internal/xmlwriter"
	"github.com/ginjaninja78/metadata-generator/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInputNotFound is returned when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrOutputNotFound is returned when the output directory does not exist.
	ErrOutputNotFound = errors.New("output directory not found")

	// ErrSourceNotFound is returned when the source file or directory does
	// not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrValidation is returned after the validation report of a run with
	// at least one failure has been printed.
	ErrValidation = errors.New("validation failed")
)

// failureSave follows the name of a file that could not be saved.
const failureSave = "The file already exists. Use --updates to merge into it."

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface used by the commands. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter runs generate and convert commands.
type Converter struct {
	catalog *schema.Catalog
	cfg     *config.Config
	logger  Logger
	printer *report.Printer
}

// New creates a Converter.
//
// PARAMETERS:
//   - cfg: The run configuration. nil uses config.Default().
//   - logger: Receives progress logs. nil discards them.
//   - out: Receives the console report.
func New(cfg *config.Config, logger Logger, out io.Writer) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Converter{
		catalog: schema.Default(),
		cfg:     cfg,
		logger:  logger,
		printer: report.NewPrinter(out),
	}
}

// GenerateOptions are the flags of a generate command.
type GenerateOptions struct {
	// Input is the CSV or XLSX file.
	Input string

	// OutputDir receives the generated files.
	OutputDir string

	// Delimiter overrides the configured delimiter when set.
	Delimiter string

	// Updates merges into existing files instead of failing on them.
	Updates bool

	// Source is the profile to update. Profile generation only.
	Source string
}

// Summary lists the outcome of the save phase of a generate run.
type Summary struct {
	Saved    []report.Saved
	Failures []string
}

// =============================================================================
// RUN STATE
// =============================================================================

// run holds the state of one command invocation.
type run struct {
	id        string
	ctx       *validation.Context
	validator *validation.Validator
	renderer  *xmlwriter.Renderer
	table     *csvparser.Table
	rendered  []types.RenderedMetadata
	summary   Summary
}

// begin checks the generate preconditions, parses the input and returns
// the state of a new run.
func (c *Converter) begin(kind schema.Kind, opts GenerateOptions) (*run, error) {
	if !utils.FileExists(opts.Input) {
		return nil, errors.Wrapf(ErrInputNotFound, "failed to open %s", opts.Input)
	}
	if !utils.DirExists(opts.OutputDir) {
		return nil, errors.Wrapf(ErrOutputNotFound, "failed to open %s", opts.OutputDir)
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = c.cfg.Delimiter
	}
	table, err := csvparser.ParseFile(opts.Input, csvparser.ResolveDelimiter(delimiter))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	ctx := validation.NewContext()
	v := validation.New(c.catalog, ctx)
	r := &run{
		id:        uuid.New().String(),
		ctx:       ctx,
		validator: v,
		renderer:  xmlwriter.NewRenderer(c.catalog, v, c.cfg.Indentation),
		table:     table,
	}

	c.logger.Info("generating metadata",
		"run_id", r.id,
		"kind", string(kind),
		"input", opts.Input,
		"rows", len(table.Rows),
		"incomplete_rows", len(table.Incomplete))

	if c.cfg.Policy() == csvparser.Report {
		for _, row := range table.Incomplete {
			v.IncompleteRow(row)
		}
	}
	return r, nil
}

// checkValidation prints the validation report and returns ErrValidation
// when the run recorded any failure.
func (c *Converter) checkValidation(r *run) error {
	if !r.ctx.HasFailures() {
		return nil
	}
	c.logger.Warn("validation failed", "run_id", r.id, "problems", r.ctx.Len())
	c.printer.ValidationFailures(r.ctx.Results())
	return errors.Wrapf(ErrValidation, "%d problems found", r.ctx.Len())
}

// finish prints the save summary of a run.
func (c *Converter) finish(r *run) *Summary {
	c.printer.Generated(r.summary.Saved)
	c.printer.Failures(r.summary.Failures)
	c.logger.Info("generation complete",
		"run_id", r.id,
		"saved", len(r.summary.Saved),
		"failed", len(r.summary.Failures))
	return &r.summary
}

// saved records a successful save.
func (r *run) saved(name, path string) {
	r.summary.Saved = append(r.summary.Saved, report.Saved{Name: name, Path: path})
}

// failed records a per-row save failure.
func (r *run) failed(name, reason string) {
	r.summary.Failures = append(r.summary.Failures, "Failed to save "+name+". "+reason)
}

// save writes content to path, merging into an existing file when updates
// is set. It returns false with a reason when the row could not be saved.
func save(path, content string, updates bool, elements []string) (bool, string) {
	if !utils.FileExists(path) {
		if err := utils.WriteFileAtomic(path, []byte(content)); err != nil {
			return false, err.Error()
		}
		return true, ""
	}
	if !updates {
		return false, failureSave
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return false, err.Error()
	}
	merged, err := merger.Merge(string(existing), content, elements)
	if err != nil {
		return false, err.Error()
	}
	if merged == string(existing) {
		return true, ""
	}
	if err := utils.WriteFileAtomic(path, []byte(merged)); err != nil {
		return false, err.Error()
	}
	return true, ""
}
