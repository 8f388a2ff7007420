package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document parses to an empty or falsy value.
var ErrEmptyDocument = errors.New("document is empty")

// ErrNotMapping is returned when the top level of a document is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// LoadError reports a document that could not be read or parsed.
// Any LoadError aborts processing before a diff is computed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError returns true if err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Load reads and parses the YAML document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return LoadBytes(path, data)
}

// LoadFromReader parses a YAML document from r. source is used in errors
// and recorded on the returned Document.
func LoadFromReader(source string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return LoadBytes(source, data)
}

// LoadBytes parses a YAML document held in memory.
// Only the first YAML document of a multi-document stream is used.
func LoadBytes(source string, data []byte) (*Document, error) {
	var node yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Err: ErrEmptyDocument}
		}
		return nil, &LoadError{Source: source, Err: fmt.Errorf("parsing YAML: %w", err)}
	}

	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("parsing YAML: %w", err)}
	}

	if isFalsy(raw) {
		return nil, &LoadError{Source: source, Err: ErrEmptyDocument}
	}

	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &LoadError{Source: source, Err: ErrNotMapping}
	}

	return &Document{Source: source, root: root, pathKeys: pathKeyOrder(&node)}, nil
}

// pathKeyOrder records the key order of every path item under paths.
func pathKeyOrder(doc *yaml.Node) map[string][]string {
	paths := mappingValue(resolveNode(doc), "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return nil
	}

	order := make(map[string][]string, len(paths.Content)/2)
	for i := 0; i+1 < len(paths.Content); i += 2 {
		item := resolveNode(paths.Content[i+1])
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}
		keys := make([]string, 0, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			keys = append(keys, item.Content[j].Value)
		}
		order[paths.Content[i].Value] = keys
	}
	return order
}

// resolveNode steps through document and alias nodes.
func resolveNode(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveNode(m.Content[i+1])
		}
	}
	return nil
}

// isFalsy matches the values a YAML document can decode to that carry no content.
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	case float64:
		return t == 0
	case map[string]any:
		return len(t) == 0
	case map[any]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// normalize converts yaml.v3 output so that every mapping is map[string]any.
// yaml.v3 decodes mappings with non-string keys (e.g. HTTP status codes)
// into map[any]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = normalize(val)
	}
	return out
}
