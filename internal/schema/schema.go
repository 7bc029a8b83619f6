// =============================================================================
// Metadata Generator - Schema Catalog
// =============================================================================
//
// This module holds the static, per-entity-kind tables that drive validation
// and rendering:
//   - Field types (Checkbox, Currency, ..., Url)
//   - The CustomObject schema and its fixed meta settings
//   - Profile permission kinds (fieldPermissions, objectPermissions, ...)
//
// Every table answers the same four questions for a tag: where it goes in
// the tag order, what its default is, whether it is required, and which
// literal values are allowed.
//
// The catalog is built once per process and never mutated. Create and update
// code paths both read the same *Catalog returned by Default.
//
// =============================================================================

package schema

import (
	"fmt"
	"sync"
)

// CatalogVersion identifies the revision of the built-in tables.
const CatalogVersion = 1

// =============================================================================
// ENTITY KINDS
// =============================================================================

// Kind is one of the three metadata domains handled by the generator.
type Kind string

const (
	// KindField covers CustomField metadata, one schema per field type.
	KindField Kind = "field"

	// KindObject covers CustomObject metadata, a single schema.
	KindObject Kind = "object"

	// KindProfile covers Profile permissions, one schema per permission block.
	KindProfile Kind = "profile"
)

// =============================================================================
// REQUIREMENT
// =============================================================================

// Requirement is the tri-state required-ness of a tag.
type Requirement int

const (
	// NotApplicable marks a tag that carries no required-ness for the type.
	NotApplicable Requirement = iota

	// Optional marks a tag that may be omitted.
	Optional

	// Required marks a tag that is always rendered.
	Required
)

// String implements fmt.Stringer.
func (r Requirement) String() string {
	switch r {
	case Required:
		return "true"
	case Optional:
		return "false"
	default:
		return "null"
	}
}

// =============================================================================
// ENTITY TYPE SCHEMA
// =============================================================================

// EntityTypeSchema is the table for one field type, the object, or one
// profile permission kind.
//
// Every tag in TagOrder has an entry in Defaults and Required.
type EntityTypeSchema struct {
	// Kind is the entity kind the schema belongs to.
	Kind Kind

	// Name is the field type, "CustomObject", or the permission block name.
	Name string

	// TagOrder is the render order of the tags.
	TagOrder []string

	// Defaults maps a tag to its default value. A nil value means the tag
	// has no default.
	Defaults map[string]*string

	// Required maps a tag to its required-ness.
	Required map[string]Requirement

	// AllowedValues maps a tag to the literal values it accepts. Tags with
	// no entry accept any value.
	AllowedValues map[string][]string

	// KeyTag is the child tag whose value identifies a permission block.
	// Empty for fields and objects.
	KeyTag string
}

// HasTag reports whether the tag belongs to the schema.
func (s *EntityTypeSchema) HasTag(tag string) bool {
	_, ok := s.Required[tag]
	return ok
}

// Default returns the default value for a tag and whether one exists.
func (s *EntityTypeSchema) Default(tag string) (string, bool) {
	v := s.Defaults[tag]
	if v == nil {
		return "", false
	}
	return *v, true
}

// IsBoolean reports whether the tag's allowed set is exactly {true, false}.
// Values of such tags are lower-cased on output.
func (s *EntityTypeSchema) IsBoolean(tag string) bool {
	return isBooleanSet(s.AllowedValues[tag])
}

func isBooleanSet(values []string) bool {
	if len(values) != 2 {
		return false
	}
	hasTrue, hasFalse := false, false
	for _, v := range values {
		switch v {
		case "true":
			hasTrue = true
		case "false":
			hasFalse = true
		}
	}
	return hasTrue && hasFalse
}

// =============================================================================
// ERRORS
// =============================================================================

// UnknownTypeError is returned by Lookup when the entity type is not part of
// the closed set for its kind.
type UnknownTypeError struct {
	Kind    Kind
	Type    string
	Allowed []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Type)
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the immutable set of schemas for every entity kind.
type Catalog struct {
	version int

	fields     map[string]*EntityTypeSchema
	fieldTypes []string

	object   *EntityTypeSchema
	settings ObjectSettings
	template Template

	permissions     map[string]*EntityTypeSchema
	permissionTypes []string

	options map[string][]string
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the process-wide catalog, building it on first use.
//
// The embedded tables are part of the binary, so a failure to decode them
// is a programming error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := build()
		if err != nil {
			panic(fmt.Sprintf("failed to build schema catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func build() (*Catalog, error) {
	c := &Catalog{
		version: CatalogVersion,
		options: map[string][]string{},
	}
	c.fields, c.fieldTypes = buildFieldSchemas()

	tables, err := loadTables()
	if err != nil {
		return nil, err
	}
	if tables.Version != CatalogVersion {
		return nil, fmt.Errorf("embedded tables have version %d, want %d", tables.Version, CatalogVersion)
	}

	c.object = tables.Object.schema()
	c.settings = tables.Object.settings()
	c.template = tables.Template

	c.permissions = make(map[string]*EntityTypeSchema, len(tables.Profile.Permissions))
	for _, p := range tables.Profile.Permissions {
		s := p.schema(tables.Profile.Options)
		c.permissions[s.Name] = s
		c.permissionTypes = append(c.permissionTypes, s.Name)
	}

	// Global enumerations, independent of the entity type.
	for tag, values := range fieldOptions(c.fieldTypes) {
		c.options[tag] = values
	}
	for tag, values := range c.object.AllowedValues {
		c.options[tag] = values
	}
	for tag, values := range tables.Profile.Options {
		if _, ok := c.options[tag]; !ok {
			c.options[tag] = values
		}
	}

	return c, nil
}

// Version returns the revision of the tables.
func (c *Catalog) Version() int {
	return c.version
}

// Lookup returns the schema for an entity type of the given kind.
//
// PARAMETERS:
//   - kind: The entity kind.
//   - entityType: The field type or permission block name. Ignored for
//     KindObject.
//
// RETURNS:
//   - The schema.
//   - An *UnknownTypeError when entityType is not part of the closed set.
func (c *Catalog) Lookup(kind Kind, entityType string) (*EntityTypeSchema, error) {
	switch kind {
	case KindField:
		if s, ok := c.fields[entityType]; ok {
			return s, nil
		}
		return nil, &UnknownTypeError{Kind: kind, Type: entityType, Allowed: c.fieldTypes}
	case KindObject:
		return c.object, nil
	case KindProfile:
		if s, ok := c.permissions[entityType]; ok {
			return s, nil
		}
		return nil, &UnknownTypeError{Kind: kind, Type: entityType, Allowed: c.permissionTypes}
	default:
		return nil, &UnknownTypeError{Kind: kind, Type: entityType}
	}
}

// AllowedValues returns the type-independent enumeration for a tag, or nil
// when the tag accepts any value.
func (c *Catalog) AllowedValues(tag string) []string {
	return c.options[tag]
}

// FieldTypes returns the field types in catalog order.
func (c *Catalog) FieldTypes() []string {
	return append([]string(nil), c.fieldTypes...)
}

// PermissionTypes returns the permission block names in catalog order.
func (c *Catalog) PermissionTypes() []string {
	return append([]string(nil), c.permissionTypes...)
}

// Object returns the CustomObject schema.
func (c *Catalog) Object() *EntityTypeSchema {
	return c.object
}

// ObjectSettings returns the fixed CustomObject settings.
func (c *Catalog) ObjectSettings() ObjectSettings {
	return c.settings
}

// Template returns the sample object input table.
func (c *Catalog) Template() Template {
	return c.template
}

// FieldTagOrder returns the tag order shared by every field type.
func (c *Catalog) FieldTagOrder() []string {
	return append([]string(nil), fieldTagOrder...)
}

// PermissionKeyTags maps every permission block name to its key tag.
func (c *Catalog) PermissionKeyTags() map[string]string {
	keys := make(map[string]string, len(c.permissions))
	for name, s := range c.permissions {
		keys[name] = s.KeyTag
	}
	return keys
}

// PermissionTags returns the tags of every permission block, in catalog
// order and without duplicates.
func (c *Catalog) PermissionTags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, name := range c.permissionTypes {
		for _, tag := range c.permissions[name].TagOrder {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
