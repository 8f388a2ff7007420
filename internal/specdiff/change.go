// Package specdiff computes a typed structural diff between two OpenAPI
// documents.
//
// The diff understands exactly two substructures: the schema map
// (components.schemas) and the path map (paths). Whole-entry additions and
// removals in those maps become SchemaAdded/SchemaRemoved and
// EndpointAdded/EndpointRemoved; differences inside an entry become
// SchemaFieldChanged or OperationFieldChanged. Any difference elsewhere in
// the document is reported as Unrecognized so that callers can refuse it.
package specdiff

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Change.
type Kind int

const (
	SchemaAdded Kind = iota
	SchemaRemoved
	SchemaFieldChanged
	EndpointAdded
	EndpointRemoved
	OperationFieldChanged
	// Unrecognized is a difference outside components.schemas and paths,
	// or a schema/endpoint entry whose shape is not a mapping.
	Unrecognized
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case SchemaAdded:
		return "SchemaAdded"
	case SchemaRemoved:
		return "SchemaRemoved"
	case SchemaFieldChanged:
		return "SchemaFieldChanged"
	case EndpointAdded:
		return "EndpointAdded"
	case EndpointRemoved:
		return "EndpointRemoved"
	case OperationFieldChanged:
		return "OperationFieldChanged"
	case Unrecognized:
		return "Unrecognized"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action describes what happened to the node a field-level change points at.
type Action int

const (
	// Added means the node exists only in the current document.
	Added Action = iota
	// Removed means the node exists only in the previous document.
	Removed
	// Modified means the node exists in both with different values.
	Modified
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Change is a single difference between two documents.
type Change struct {
	Kind   Kind
	Action Action

	// Name is the schema name or endpoint path. Empty for Unrecognized.
	Name string
	// Method is the key directly below the endpoint path (usually an HTTP
	// method). Only set for OperationFieldChanged.
	Method string
	// Field holds the key segments below the schema, or below the method
	// for operation changes.
	Field []string
	// Segments is the full key path from the document root. Only set for
	// Unrecognized; other kinds derive it.
	Segments []string

	// Old and New hold the previous and current values for Modified changes.
	Old, New any
}

// HasValues reports whether the change carries an old/new value pair.
func (c Change) HasValues() bool {
	return c.Action == Modified
}

// Keys returns the key segments from the document root to the changed node.
func (c Change) Keys() []string {
	switch c.Kind {
	case SchemaAdded, SchemaRemoved, SchemaFieldChanged:
		keys := []string{"components", "schemas", c.Name}
		return append(keys, c.Field...)
	case EndpointAdded, EndpointRemoved:
		return []string{"paths", c.Name}
	case OperationFieldChanged:
		keys := []string{"paths", c.Name}
		if c.Method != "" {
			keys = append(keys, c.Method)
		}
		return append(keys, c.Field...)
	default:
		return append([]string(nil), c.Segments...)
	}
}

// Path renders the change location as a root-relative path of bracketed,
// quoted keys, e.g. root['components']['schemas']['c1.apiFoo']['type'].
func (c Change) Path() string {
	return FormatPath(c.Keys())
}

// Leaf returns the last key segment of the change location.
func (c Change) Leaf() string {
	keys := c.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[len(keys)-1]
}

// FormatPath renders key segments as a change path string.
func FormatPath(keys []string) string {
	var b strings.Builder
	b.WriteString("root")
	for _, k := range keys {
		b.WriteString("['")
		b.WriteString(strings.ReplaceAll(k, "'", `\'`))
		b.WriteString("']")
	}
	return b.String()
}
