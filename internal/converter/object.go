package converter

import (
	"path/filepath"

	"github.com/ginjaninja78/metadata-generator/internal/schema"
	"github.com/ginjaninja78/metadata-generator/pkg/utils"
)

// GenerateObjects writes <fullName>/<fullName>.object-meta.xml per input
// row, creating the object directory.
//
// An existing object directory is a save failure unless opts.Updates is
// set, in which case the object file inside it is merged.
func (c *Converter) GenerateObjects(opts GenerateOptions) (*Summary, error) {
	r, err := c.begin(schema.KindObject, opts)
	if err != nil {
		return nil, err
	}

	for _, row := range r.table.Rows {
		if meta, ok := r.renderer.Object(row, r.table.Header); ok {
			r.rendered = append(r.rendered, meta)
		}
	}
	if err := c.checkValidation(r); err != nil {
		return nil, err
	}

	settings := c.catalog.ObjectSettings()
	elements := settings.MergeElements()
	for _, meta := range r.rendered {
		name := meta.Identifier + "." + settings.Extension
		dir := filepath.Join(opts.OutputDir, meta.Identifier)
		path := filepath.Join(dir, name)

		if utils.DirExists(dir) && !opts.Updates {
			r.failed(name, failureSave)
			continue
		}
		if err := utils.EnsureDir(dir); err != nil {
			r.failed(name, err.Error())
			continue
		}

		if ok, reason := save(path, meta.Content, opts.Updates, elements); !ok {
			c.logger.Warn("failed to save object", "run_id", r.id, "path", path, "reason", reason)
			r.failed(name, reason)
			continue
		}
		c.logger.Debug("saved object", "run_id", r.id, "path", path)
		r.saved(name, path)
	}

	return c.finish(r), nil
}
