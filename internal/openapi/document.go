// Package openapi loads OpenAPI specification documents into generic nested
// mappings for structural comparison.
//
// Documents are deliberately not decoded into a typed OpenAPI model: the
// differ must see every key (including vendor extensions) so that changes
// outside the schema and path maps can be detected and rejected. No OpenAPI
// validation is performed.
package openapi

import (
	"maps"
	"slices"
)

// Document is a parsed OpenAPI specification.
// All mapping keys are normalized to strings.
type Document struct {
	// Source describes where the document was read from: a file path,
	// or "<rev>:<path>" for documents read from git.
	Source string

	root map[string]any
	// pathKeys holds each path item's keys in document order.
	pathKeys map[string][]string
}

// NewDocument wraps an already-decoded mapping. Keys are normalized.
func NewDocument(source string, root map[string]any) *Document {
	return &Document{Source: source, root: normalizeMap(root)}
}

// Root returns the top-level mapping of the document.
func (d *Document) Root() map[string]any {
	return d.root
}

// Schemas returns the components.schemas mapping, or nil when absent.
func (d *Document) Schemas() map[string]any {
	components, _ := d.root["components"].(map[string]any)
	schemas, _ := components["schemas"].(map[string]any)
	return schemas
}

// Schema returns a single schema object by name.
// The second result is false if the schema is missing or is not a mapping.
func (d *Document) Schema(name string) (map[string]any, bool) {
	schema, ok := d.Schemas()[name].(map[string]any)
	return schema, ok
}

// Paths returns the paths mapping, or nil when absent.
func (d *Document) Paths() map[string]any {
	paths, _ := d.root["paths"].(map[string]any)
	return paths
}

// PathItem returns the path item (method → operation) for an endpoint path.
func (d *Document) PathItem(path string) (map[string]any, bool) {
	item, ok := d.Paths()[path].(map[string]any)
	return item, ok
}

// PathItemKeys returns the keys of a path item in document order. Keys with
// no recorded position (documents built with NewDocument, YAML merge keys)
// follow in sorted order.
func (d *Document) PathItemKeys(path string) []string {
	item, ok := d.PathItem(path)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(item))
	seen := make(map[string]bool, len(item))
	for _, k := range d.pathKeys[path] {
		if _, ok := item[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(item)) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// StringField returns obj[key] when it is a non-empty string.
func StringField(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
