package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// =============================================================================
// OBJECT SETTINGS
// =============================================================================

// ObjectSettings holds the CustomObject values that do not come from input
// rows: the XML prolog, the file extension, the update tag list and the
// fixed blocks appended to every object.
type ObjectSettings struct {
	XMLVersion string
	Encoding   string
	Namespace  string
	Extension  string

	// UpdateTags are the input tags copied into an existing document when
	// updating.
	UpdateTags []string

	// Composites maps an input tag to the block element that carries it.
	Composites map[string]string

	ActionOverrides []ActionOverride
	MetaSettings    []MetaSetting
}

// ActionOverride renders one override per action plus one per form factor.
type ActionOverride struct {
	Action      string   `yaml:"action"`
	Type        string   `yaml:"type"`
	FormFactors []string `yaml:"form_factors"`
}

// MetaSetting is a fixed top-level tag appended to every object.
type MetaSetting struct {
	Tag   string `yaml:"tag"`
	Value string `yaml:"value"`
}

// MergeElements returns the direct-child element names replaced when an
// object is updated, in UpdateTags order and without duplicates.
func (s ObjectSettings) MergeElements() []string {
	seen := make(map[string]bool, len(s.UpdateTags))
	elements := make([]string, 0, len(s.UpdateTags))
	for _, tag := range s.UpdateTags {
		element := tag
		if composite, ok := s.Composites[tag]; ok {
			element = composite
		}
		if seen[element] {
			continue
		}
		seen[element] = true
		elements = append(elements, element)
	}
	return elements
}

// =============================================================================
// TEMPLATE
// =============================================================================

// Template is the sample object input written by the template command.
type Template struct {
	Header []string   `yaml:"header"`
	Rows   [][]string `yaml:"rows"`
}

// =============================================================================
// YAML DOCUMENT
// =============================================================================

type tablesDoc struct {
	Version  int        `yaml:"version"`
	Object   objectDoc  `yaml:"object"`
	Profile  profileDoc `yaml:"profile"`
	Template Template   `yaml:"template"`
}

type objectDoc struct {
	XML struct {
		Version  string `yaml:"version"`
		Encoding string `yaml:"encoding"`
		Xmlns    string `yaml:"xmlns"`
	} `yaml:"xml"`
	Extension       string            `yaml:"extension"`
	Tags            []tagDoc          `yaml:"tags"`
	UpdateTags      []string          `yaml:"update_tags"`
	Composites      map[string]string `yaml:"composites"`
	ActionOverrides []ActionOverride  `yaml:"action_overrides"`
	MetaSettings    []MetaSetting     `yaml:"meta_settings"`
}

type tagDoc struct {
	Name     string   `yaml:"name"`
	Default  *string  `yaml:"default"`
	Required *bool    `yaml:"required"`
	Options  []string `yaml:"options"`
}

type profileDoc struct {
	Options     map[string][]string `yaml:"options"`
	Permissions []permissionDoc     `yaml:"permissions"`
}

type permissionDoc struct {
	Type   string   `yaml:"type"`
	KeyTag string   `yaml:"key_tag"`
	Tags   []string `yaml:"tags"`
}

func loadTables() (*tablesDoc, error) {
	var doc tablesDoc
	if err := yaml.Unmarshal(tablesYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded tables: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid embedded tables: %w", err)
	}
	return &doc, nil
}

func (d *tablesDoc) validate() error {
	if len(d.Object.Tags) == 0 {
		return fmt.Errorf("object has no tags")
	}
	known := make(map[string]bool, len(d.Object.Tags))
	for _, t := range d.Object.Tags {
		known[t.Name] = true
	}
	for _, tag := range d.Object.UpdateTags {
		if !known[tag] {
			return fmt.Errorf("update tag %q is not an object tag", tag)
		}
	}
	for _, p := range d.Profile.Permissions {
		if p.KeyTag == "" {
			return fmt.Errorf("permission %q has no key tag", p.Type)
		}
	}
	for i, row := range d.Template.Rows {
		if len(row) != len(d.Template.Header) {
			return fmt.Errorf("template row %d has %d cells, header has %d", i+1, len(row), len(d.Template.Header))
		}
	}
	return nil
}

func (o objectDoc) schema() *EntityTypeSchema {
	s := &EntityTypeSchema{
		Kind:          KindObject,
		Name:          "CustomObject",
		TagOrder:      make([]string, 0, len(o.Tags)),
		Defaults:      make(map[string]*string, len(o.Tags)),
		Required:      make(map[string]Requirement, len(o.Tags)),
		AllowedValues: make(map[string][]string),
	}
	for _, t := range o.Tags {
		s.TagOrder = append(s.TagOrder, t.Name)
		s.Defaults[t.Name] = t.Default
		s.Required[t.Name] = requirementOf(t.Required)
		if len(t.Options) > 0 {
			s.AllowedValues[t.Name] = t.Options
		}
	}
	return s
}

func (o objectDoc) settings() ObjectSettings {
	return ObjectSettings{
		XMLVersion:      o.XML.Version,
		Encoding:        o.XML.Encoding,
		Namespace:       o.XML.Xmlns,
		Extension:       o.Extension,
		UpdateTags:      o.UpdateTags,
		Composites:      o.Composites,
		ActionOverrides: o.ActionOverrides,
		MetaSettings:    o.MetaSettings,
	}
}

func (p permissionDoc) schema(options map[string][]string) *EntityTypeSchema {
	s := &EntityTypeSchema{
		Kind:          KindProfile,
		Name:          p.Type,
		TagOrder:      p.Tags,
		Defaults:      make(map[string]*string, len(p.Tags)),
		Required:      make(map[string]Requirement, len(p.Tags)),
		AllowedValues: make(map[string][]string, len(p.Tags)),
		KeyTag:        p.KeyTag,
	}
	for _, tag := range p.Tags {
		s.Defaults[tag] = nil
		s.Required[tag] = Optional
		if values, ok := options[tag]; ok {
			s.AllowedValues[tag] = values
		}
	}
	return s
}

func requirementOf(b *bool) Requirement {
	switch {
	case b == nil:
		return NotApplicable
	case *b:
		return Required
	default:
		return Optional
	}
}
