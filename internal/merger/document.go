// =============================================================================
// Metadata Generator - XML Merger
// =============================================================================
//
// This module updates existing metadata documents in place. Instead of
// rewriting a document from a parsed tree, it records the byte offsets of
// every direct child of the root element and splices new fragments into the
// original text, so everything it does not touch (comments, spacing, unknown
// elements, attribute order) survives unchanged.
//
// DOCUMENT MODEL:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <CustomField xmlns="...">        <- Root
//       <fullName>A__c</fullName>    <- Children[0]
//       <label>A</label>             <- Children[1]
//   </CustomField>
//
// Only one level is indexed. A nested block is addressed by parsing the
// child's text as a Document of its own (see Sub).
//
// =============================================================================

package merger

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Element is the location of one element inside a document's text.
type Element struct {
	// Name is the local element name.
	Name string

	// Start and End delimit the whole element, tags included.
	Start, End int

	// InnerStart and InnerEnd delimit the content between the tags.
	InnerStart, InnerEnd int

	// Indent is the whitespace between the preceding newline and Start.
	Indent string
}

// Document is an XML text with its root element and the root's direct
// children indexed by offset.
type Document struct {
	text     string
	Root     Element
	Children []Element
}

// Parse indexes an XML document.
//
// PARAMETERS:
//   - text: The complete document.
//
// RETURNS:
//   - The indexed document.
//   - An error if the text is not well-formed or has no root element.
func Parse(text string) (*Document, error) {
	d := &Document{text: text}
	dec := xml.NewDecoder(strings.NewReader(text))

	var (
		depth    int
		rootSeen bool
		rootDone bool
		current  Element
	)
	for {
		before := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			after := int(dec.InputOffset())
			switch depth {
			case 1:
				if rootSeen {
					return nil, fmt.Errorf("failed to parse document: more than one root element")
				}
				rootSeen = true
				d.Root = Element{Name: t.Name.Local, Start: before, InnerStart: after}
			case 2:
				current = Element{
					Name:       t.Name.Local,
					Start:      before,
					InnerStart: after,
					Indent:     indentBefore(text, before),
				}
			}
		case xml.EndElement:
			after := int(dec.InputOffset())
			switch depth {
			case 1:
				d.Root.InnerEnd = before
				d.Root.End = after
				rootDone = true
			case 2:
				current.InnerEnd = before
				current.End = after
				d.Children = append(d.Children, current)
			}
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("failed to parse document: unexpected </%s>", t.Name.Local)
			}
		}
	}

	if !rootSeen {
		return nil, fmt.Errorf("failed to parse document: no root element")
	}
	if !rootDone || depth != 0 {
		return nil, fmt.Errorf("failed to parse document: <%s> is not closed", d.Root.Name)
	}
	return d, nil
}

// indentBefore returns the whitespace between the last newline before pos
// and pos, or "" when other text sits on that line.
func indentBefore(text string, pos int) string {
	line := text[strings.LastIndex(text[:pos], "\n")+1 : pos]
	if strings.TrimSpace(line) != "" {
		return ""
	}
	return line
}

// String returns the document text.
func (d *Document) String() string {
	return d.text
}

// Text returns the full text of an element, tags included.
func (d *Document) Text(e Element) string {
	return d.text[e.Start:e.End]
}

// Inner returns the content of an element without its tags.
func (d *Document) Inner(e Element) string {
	return d.text[e.InnerStart:e.InnerEnd]
}

// Child returns the first direct child with the given name.
func (d *Document) Child(name string) (Element, bool) {
	for _, c := range d.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Element{}, false
}

// ChildrenNamed returns every direct child with the given name, in document
// order.
func (d *Document) ChildrenNamed(name string) []Element {
	var out []Element
	for _, c := range d.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Value returns the raw content of the first direct child with the given
// name.
func (d *Document) Value(name string) (string, bool) {
	c, ok := d.Child(name)
	if !ok {
		return "", false
	}
	return d.Inner(c), true
}

// Sub parses a child element as a document of its own.
func (d *Document) Sub(e Element) (*Document, error) {
	return Parse(d.Text(e))
}

// =============================================================================
// SPLICING
// =============================================================================

// edit replaces text[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// apply splices non-overlapping edits into text.
func apply(text string, edits []edit) string {
	if len(edits) == 0 {
		return text
	}

	// Edits are applied back to front so earlier offsets stay valid.
	sorted := append([]edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start > sorted[j].start
	})

	out := text
	for _, e := range sorted {
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out
}
