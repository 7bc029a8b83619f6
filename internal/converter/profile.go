package converter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ginjaninja78/metadata-generator/internal/merger"
	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/internal/types"
	"github.com/ginjaninja78/metadata-generator/internal/xmlwriter"
	"github.com/ginjaninja78/metadata-generator/pkg/utils"
)

// GenerateProfile applies permission rows to a profile and writes the
// result to <OutputDir>/<basename of Source>.
//
// Each row names a permission block by its "type" and "fullName" columns.
// Every non-empty permission tag of the row replaces the block's value; a
// tag the block does not have yet is appended to it.
//
// RETURNS:
//   - The saved profile, or a save failure when the target exists and
//     opts.Updates is not set. With opts.Updates the existing target is
//     updated instead of the source.
//   - ErrInputNotFound, ErrOutputNotFound or ErrSourceNotFound when a path
//     is missing.
//   - ErrValidation when any row failed validation; nothing is written.
func (c *Converter) GenerateProfile(opts GenerateOptions) (*Summary, error) {
	if !utils.FileExists(opts.Source) {
		return nil, errors.Wrapf(ErrSourceNotFound, "failed to open %s", opts.Source)
	}
	r, err := c.begin(schema.KindProfile, opts)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(opts.Source)
	target := filepath.Join(opts.OutputDir, name)
	base := opts.Source

	exists := utils.FileExists(target)
	if exists && opts.Updates {
		base = target
	}

	text, err := os.ReadFile(base)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", base)
	}
	set, err := merger.NewPermissionSet(string(text), c.catalog.PermissionKeyTags())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", base)
	}

	for _, row := range r.table.Rows {
		if err := c.applyPermission(r, set, row); err != nil {
			return nil, err
		}
	}
	if err := c.checkValidation(r); err != nil {
		return nil, err
	}

	if exists && !opts.Updates {
		r.failed(name, failureSave)
		c.printer.Failures(r.summary.Failures)
		return &r.summary, nil
	}

	if err := utils.WriteFileAtomic(target, []byte(set.Render())); err != nil {
		r.failed(name, err.Error())
		c.printer.Failures(r.summary.Failures)
		return &r.summary, nil
	}
	r.saved(name, target)

	c.printer.Message("Successfully saved %s in %s", name, opts.OutputDir)
	c.logger.Info("generation complete", "run_id", r.id, "saved", 1, "failed", 0)
	return &r.summary, nil
}

// applyPermission validates one row and writes its values into the matching
// block.
func (c *Converter) applyPermission(r *run, set *merger.PermissionSet, row types.Row) error {
	header := r.table.Header

	s := r.validator.Type(schema.KindProfile, row, header)
	if s == nil {
		return nil
	}

	key := xmlwriter.NormalizeCell(row.Cell(header, "fullName"))
	block, ok := set.Lookup(s.Name, key)
	if !ok {
		r.validator.PermissionNotFound(row, header, key)
		return nil
	}

	for _, tag := range s.TagOrder {
		if !r.validator.Validate(s, tag, row, header) {
			continue
		}
		value := xmlwriter.CellValue(row.Cell(header, tag))
		if value == "" {
			continue
		}
		if s.IsBoolean(tag) {
			value = strings.ToLower(value)
		}
		if err := block.Set(tag, value); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
	}
	return nil
}
