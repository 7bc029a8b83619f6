package converter

import (
	"path/filepath"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
)

// FieldExtension is the suffix of generated CustomField files.
const FieldExtension = ".field-meta.xml"

// GenerateFields writes one <fullName>.field-meta.xml per input row.
//
// PARAMETERS:
//   - opts: Input file, output directory, delimiter and update mode.
//
// RETURNS:
//   - The saved files and per-row save failures.
//   - ErrInputNotFound or ErrOutputNotFound when a path is missing.
//   - ErrValidation when any row failed validation; nothing is written.
func (c *Converter) GenerateFields(opts GenerateOptions) (*Summary, error) {
	r, err := c.begin(schema.KindField, opts)
	if err != nil {
		return nil, err
	}

	for _, row := range r.table.Rows {
		if meta, ok := r.renderer.Field(row, r.table.Header); ok {
			r.rendered = append(r.rendered, meta)
		}
	}
	if err := c.checkValidation(r); err != nil {
		return nil, err
	}

	elements := schema.FieldMergeElements()
	for _, meta := range r.rendered {
		name := meta.Identifier + FieldExtension
		path := filepath.Join(opts.OutputDir, name)

		if ok, reason := save(path, meta.Content, opts.Updates, elements); !ok {
			c.logger.Warn("failed to save field", "run_id", r.id, "path", path, "reason", reason)
			r.failed(name, reason)
			continue
		}
		c.logger.Debug("saved field", "run_id", r.id, "path", path)
		r.saved(name, path)
	}

	return c.finish(r), nil
}
