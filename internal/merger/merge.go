package merger

import (
	"fmt"
	"regexp"
	"strings"
)

// Merge copies elements from a generated document into an existing one.
//
// PARAMETERS:
//   - existing: The document on disk.
//   - generated: The freshly rendered document for the same component.
//   - elements: The direct-child element names to copy, in order.
//
// RETURNS:
//   - The updated document text.
//   - An error if either document cannot be parsed.
//
// MERGE RULES:
//  1. An element missing from the generated document is left untouched.
//  2. The first existing child with the name is replaced by the generated
//     one, unless both hold the same values.
//  3. An element missing from the existing document is appended after its
//     last child, at that child's indentation.
//
// Merging a document that already holds every generated value returns
// existing unchanged, byte for byte.
func Merge(existing, generated string, elements []string) (string, error) {
	old, err := Parse(existing)
	if err != nil {
		return "", fmt.Errorf("failed to read existing document: %w", err)
	}
	gen, err := Parse(generated)
	if err != nil {
		return "", fmt.Errorf("failed to read generated document: %w", err)
	}

	var (
		edits    []edit
		appended []string
		indent   string
	)
	for _, name := range elements {
		g, ok := gen.Child(name)
		if !ok {
			continue
		}
		fragment := gen.Text(g)

		if e, ok := old.Child(name); ok {
			if sameValues(old.Text(e), fragment) {
				continue
			}
			edits = append(edits, edit{start: e.Start, end: e.End, text: fragment})
			continue
		}

		if indent == "" {
			indent = g.Indent
		}
		appended = append(appended, fragment)
	}

	if len(appended) > 0 {
		edits = append(edits, appendEdit(old, appended, indent))
	}
	return apply(existing, edits), nil
}

// appendEdit inserts fragments after the last child of the root, or at the
// start of an empty root.
func appendEdit(d *Document, fragments []string, fallbackIndent string) edit {
	if n := len(d.Children); n > 0 {
		last := d.Children[n-1]
		indent := last.Indent
		if indent == "" {
			indent = fallbackIndent
		}
		return edit{
			start: last.End,
			end:   last.End,
			text:  "\n" + indent + strings.Join(fragments, "\n"+indent),
		}
	}

	at := d.Root.InnerStart
	return edit{
		start: at,
		end:   d.Root.InnerEnd,
		text:  "\n" + fallbackIndent + strings.Join(fragments, "\n"+fallbackIndent) + "\n",
	}
}

var betweenTags = regexp.MustCompile(`>\s+<`)

// sameValues reports whether two fragments differ only in the whitespace
// between tags.
func sameValues(a, b string) bool {
	return compact(a) == compact(b)
}

func compact(s string) string {
	return betweenTags.ReplaceAllString(strings.TrimSpace(s), "><")
}
