// Package notes renders classified spec changes as a Markdown release-notes
// fragment.
package notes

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ariel-frischer/oasnotes/internal/classify"
	"github.com/ariel-frischer/oasnotes/internal/openapi"
)

// Heading is the first line of every release-notes document.
const Heading = "## Release Notes"

// httpMethods lists the path item keys that are operations.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Input holds everything needed to render release notes.
type Input struct {
	Buckets *classify.Buckets
	// Current is used to describe added schemas and endpoints.
	Current *openapi.Document
	// Previous is used to describe deleted schemas and endpoints.
	Previous *openapi.Document
}

// Render writes the release-notes document to w.
// Given the same input it produces identical output.
func Render(w io.Writer, in Input) error {
	if _, err := io.WriteString(w, Heading+"\n"); err != nil {
		return fmt.Errorf("rendering heading: %w", err)
	}

	if in.Buckets == nil {
		return nil
	}

	for _, t := range classify.ChangeTypes() {
		if in.Buckets.Empty(t) {
			continue
		}
		if err := renderChangeType(w, in, t); err != nil {
			return fmt.Errorf("rendering %s section: %w", t, err)
		}
	}

	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(in Input) (string, error) {
	var b strings.Builder
	if err := Render(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderChangeType writes one "### <Type>:" section and its category sub-sections.
func renderChangeType(w io.Writer, in Input, t classify.ChangeType) error {
	if _, err := io.WriteString(w, "\n### "+sectionTitle(string(t))+":\n"); err != nil {
		return err
	}

	for _, category := range classify.Categories() {
		entries := in.Buckets.Entries(t, category)
		if len(entries) == 0 {
			continue
		}

		if _, err := io.WriteString(w, "\n#### "+sectionTitle(string(category))+":\n"); err != nil {
			return err
		}

		for _, line := range renderEntries(in, t, category, entries) {
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderEntries picks the template for a bucket and renders its lines.
func renderEntries(in Input, t classify.ChangeType, category classify.Category, entries []classify.Entry) []string {
	var lines []string

	for _, entry := range entries {
		switch t {
		case classify.TypeAdded:
			lines = append(lines, describe(in.Current, category, entry.Identifier)...)
		case classify.TypeDeleted:
			lines = append(lines, describe(in.Previous, category, entry.Identifier)...)
		case classify.TypeChanged:
			lines = append(lines, changedLines(entry)...)
		}
	}

	return lines
}

// describe renders a schema or endpoint from the document it exists in.
func describe(doc *openapi.Document, category classify.Category, id string) []string {
	if category == classify.CategorySchemas {
		return []string{schemaLine(doc, id)}
	}
	return endpointLines(doc, id)
}

// schemaLine renders "- <title>: <description>".
func schemaLine(doc *openapi.Document, name string) string {
	var schema map[string]any
	if doc != nil {
		schema, _ = doc.Schema(name)
	}

	title, ok := openapi.StringField(schema, "title")
	if !ok {
		title = trailingSegment(name)
	}

	if desc, ok := openapi.StringField(schema, "description"); ok {
		return fmt.Sprintf("- %s: %s", title, desc)
	}
	return "- " + title
}

// endpointLines renders one "- <path> [<METHOD>]: <description>" line per
// HTTP method of the endpoint, in document order. The description may be
// empty. An endpoint without operations renders as its bare path.
func endpointLines(doc *openapi.Document, path string) []string {
	if doc == nil {
		return []string{"- " + path}
	}
	item, _ := doc.PathItem(path)

	var lines []string
	for _, key := range doc.PathItemKeys(path) {
		if !slices.Contains(httpMethods, key) {
			continue
		}
		opMap, _ := item[key].(map[string]any)
		desc, _ := openapi.StringField(opMap, "description")
		lines = append(lines, fmt.Sprintf("- %s [%s]: %s", path, strings.ToUpper(key), desc))
	}

	if len(lines) == 0 {
		return []string{"- " + path}
	}
	return lines
}

// changedLines renders the change path and, when the change carries a value
// pair, tab-indented Old Value and New Value sub-bullets.
func changedLines(entry classify.Entry) []string {
	lines := []string{"- " + entry.Identifier}
	if entry.Change.HasValues() {
		lines = append(lines,
			"\t- Old Value: "+FormatValue(entry.Change.Old),
			"\t- New Value: "+FormatValue(entry.Change.New))
	}
	return lines
}

// trailingSegment returns the part of a dotted identifier after the last dot.
func trailingSegment(id string) string {
	return id[strings.LastIndex(id, ".")+1:]
}

// sectionTitle capitalizes the first letter of a string.
func sectionTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
