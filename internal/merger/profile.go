package merger

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/metadata-generator/internal/xmlwriter"
)

// =============================================================================
// PROFILE PERMISSIONS
// =============================================================================

// PermissionSet is a profile document split into permission blocks. Blocks
// are indexed once, keyed by permission type and key tag value, and edited
// in memory until Render splices them back.
//
// A PermissionSet belongs to one run and is not safe for concurrent use.
type PermissionSet struct {
	doc     *Document
	keyTags map[string]string
	blocks  []*Block
	index   map[string]*Block
}

// Block is one permission block, for example a fieldPermissions element.
type Block struct {
	// Type is the block element name.
	Type string

	// Key is the unescaped value of the block's key tag.
	Key string

	element Element
	text    string
	changed bool
}

// NewPermissionSet indexes every direct child of the profile whose name is
// a key of keyTags.
//
// PARAMETERS:
//   - text: The profile document.
//   - keyTags: Maps a permission type to the child tag identifying a block.
//
// RETURNS:
//   - The indexed permission set.
//   - An error if the document or one of its blocks cannot be parsed.
func NewPermissionSet(text string, keyTags map[string]string) (*PermissionSet, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}

	p := &PermissionSet{
		doc:     doc,
		keyTags: keyTags,
		index:   make(map[string]*Block),
	}
	for _, child := range doc.Children {
		keyTag, ok := keyTags[child.Name]
		if !ok {
			continue
		}
		sub, err := doc.Sub(child)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s block: %w", child.Name, err)
		}
		key, _ := sub.Value(keyTag)

		b := &Block{
			Type:    child.Name,
			Key:     xmlwriter.Unescape(strings.TrimSpace(key)),
			element: child,
			text:    doc.Text(child),
		}
		p.blocks = append(p.blocks, b)

		// The first block with a key wins.
		id := blockID(b.Type, b.Key)
		if _, ok := p.index[id]; !ok {
			p.index[id] = b
		}
	}
	return p, nil
}

func blockID(permType, key string) string {
	return permType + "\x00" + key
}

// Lookup returns the block of a type with the given key.
func (p *PermissionSet) Lookup(permType, key string) (*Block, bool) {
	b, ok := p.index[blockID(permType, key)]
	return b, ok
}

// Blocks returns every indexed block in document order.
func (p *PermissionSet) Blocks() []*Block {
	return p.blocks
}

// Render returns the profile with every edited block spliced back in.
func (p *PermissionSet) Render() string {
	var edits []edit
	for _, b := range p.blocks {
		if b.changed {
			edits = append(edits, edit{start: b.element.Start, end: b.element.End, text: b.text})
		}
	}
	return apply(p.doc.String(), edits)
}

// Value returns the raw content of a child tag of the block.
func (b *Block) Value(tag string) (string, bool) {
	doc, err := Parse(b.text)
	if err != nil {
		return "", false
	}
	return doc.Value(tag)
}

// Set replaces the content of a child tag. A tag missing from the block is
// appended after its last child.
//
// PARAMETERS:
//   - tag: The child tag name.
//   - value: The escaped content to write.
func (b *Block) Set(tag, value string) error {
	doc, err := Parse(b.text)
	if err != nil {
		return fmt.Errorf("failed to read %s block %q: %w", b.Type, b.Key, err)
	}

	element := "<" + tag + ">" + value + "</" + tag + ">"

	var e edit
	c, ok := doc.Child(tag)
	switch {
	case !ok:
		e = appendEdit(doc, []string{element}, "")
	case c.InnerEnd == c.End:
		// <tag/>
		e = edit{start: c.Start, end: c.End, text: element}
	case doc.Inner(c) == value:
		return nil
	default:
		e = edit{start: c.InnerStart, end: c.InnerEnd, text: value}
	}

	b.text = apply(b.text, []edit{e})
	b.changed = true
	return nil
}
