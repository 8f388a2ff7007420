package specdiff

import (
	"maps"
	"reflect"
	"slices"

	"github.com/ariel-frischer/oasnotes/internal/openapi"
)

// Diff compares two documents and returns every difference as a typed Change.
//
// Changes are ordered schemas first, then paths, then unrecognized
// differences; within each group entries are sorted by key so the result is
// deterministic for identical inputs.
func Diff(previous, current *openapi.Document) []Change {
	var changes []Change
	changes = append(changes, diffSchemas(previous.Schemas(), current.Schemas())...)
	changes = append(changes, diffPaths(previous.Paths(), current.Paths())...)
	changes = append(changes, diffOutside(previous.Root(), current.Root())...)
	return changes
}

func diffSchemas(prev, cur map[string]any) []Change {
	var changes []Change
	for _, name := range unionKeys(prev, cur) {
		p, inPrev := prev[name]
		c, inCur := cur[name]

		switch {
		case !inPrev:
			changes = append(changes, Change{Kind: SchemaAdded, Action: Added, Name: name, New: c})
		case !inCur:
			changes = append(changes, Change{Kind: SchemaRemoved, Action: Removed, Name: name, Old: p})
		default:
			pm, pOK := p.(map[string]any)
			cm, cOK := c.(map[string]any)
			if !pOK || !cOK {
				if !reflect.DeepEqual(p, c) {
					changes = append(changes, unrecognized([]string{"components", "schemas", name}, p, c))
				}
				continue
			}
			walk(nil, pm, cm, func(field []string, action Action, before, after any) {
				changes = append(changes, Change{
					Kind:   SchemaFieldChanged,
					Action: action,
					Name:   name,
					Field:  field,
					Old:    before,
					New:    after,
				})
			})
		}
	}
	return changes
}

func diffPaths(prev, cur map[string]any) []Change {
	var changes []Change
	for _, path := range unionKeys(prev, cur) {
		p, inPrev := prev[path]
		c, inCur := cur[path]

		switch {
		case !inPrev:
			changes = append(changes, Change{Kind: EndpointAdded, Action: Added, Name: path, New: c})
		case !inCur:
			changes = append(changes, Change{Kind: EndpointRemoved, Action: Removed, Name: path, Old: p})
		default:
			pm, pOK := p.(map[string]any)
			cm, cOK := c.(map[string]any)
			if !pOK || !cOK {
				if !reflect.DeepEqual(p, c) {
					changes = append(changes, unrecognized([]string{"paths", path}, p, c))
				}
				continue
			}
			changes = append(changes, diffPathItem(path, pm, cm)...)
		}
	}
	return changes
}

// diffPathItem compares the keys of one endpoint present in both documents.
func diffPathItem(path string, prev, cur map[string]any) []Change {
	var changes []Change
	for _, method := range unionKeys(prev, cur) {
		p, inPrev := prev[method]
		c, inCur := cur[method]

		change := Change{Kind: OperationFieldChanged, Name: path, Method: method}
		switch {
		case !inPrev:
			change.Action, change.New = Added, c
			changes = append(changes, change)
		case !inCur:
			change.Action, change.Old = Removed, p
			changes = append(changes, change)
		default:
			walk(nil, p, c, func(field []string, action Action, before, after any) {
				changes = append(changes, Change{
					Kind:   OperationFieldChanged,
					Action: action,
					Name:   path,
					Method: method,
					Field:  field,
					Old:    before,
					New:    after,
				})
			})
		}
	}
	return changes
}

// diffOutside reports every difference that is not inside components.schemas
// or paths. A paths, components, or components.schemas value that is not a
// mapping is itself reported.
func diffOutside(prev, cur map[string]any) []Change {
	var changes []Change
	emit := func(field []string, action Action, before, after any) {
		change := unrecognized(field, before, after)
		change.Action = action
		changes = append(changes, change)
	}

	for _, key := range unionKeys(prev, cur) {
		p, c := prev[key], cur[key]
		switch key {
		case "paths":
			if !isMapOrNil(p) || !isMapOrNil(c) {
				walk([]string{key}, p, c, emit)
			}
		case "components":
			if !isMapOrNil(p) || !isMapOrNil(c) {
				walk([]string{key}, p, c, emit)
				continue
			}
			pm, _ := p.(map[string]any)
			cm, _ := c.(map[string]any)
			for _, sub := range unionKeys(pm, cm) {
				ps, cs := pm[sub], cm[sub]
				if sub == "schemas" && isMapOrNil(ps) && isMapOrNil(cs) {
					continue
				}
				walkKey([]string{key}, sub, pm, cm, emit)
			}
		default:
			walkKey(nil, key, prev, cur, emit)
		}
	}
	return changes
}

// walkKey compares a single key of two mappings, treating a key present on
// only one side as an addition or removal.
func walkKey(prefix []string, key string, prev, cur map[string]any, emit emitFunc) {
	p, inPrev := prev[key]
	c, inCur := cur[key]
	field := appendKey(prefix, key)
	switch {
	case !inPrev:
		emit(field, Added, nil, c)
	case !inCur:
		emit(field, Removed, p, nil)
	default:
		walk(field, p, c, emit)
	}
}

type emitFunc func(field []string, action Action, before, after any)

// walk recursively compares two values. Mappings are compared key by key;
// everything else, including sequences, is compared as a whole leaf.
func walk(field []string, prev, cur any, emit emitFunc) {
	pm, pOK := prev.(map[string]any)
	cm, cOK := cur.(map[string]any)
	if !pOK || !cOK {
		if !reflect.DeepEqual(prev, cur) {
			emit(field, Modified, prev, cur)
		}
		return
	}

	for _, key := range unionKeys(pm, cm) {
		walkKey(field, key, pm, cm, emit)
	}
}

func unrecognized(keys []string, before, after any) Change {
	return Change{
		Kind:     Unrecognized,
		Action:   Modified,
		Segments: keys,
		Old:      before,
		New:      after,
	}
}

func isMapOrNil(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(map[string]any)
	return ok
}

// appendKey returns a new slice so sibling paths never share backing arrays.
func appendKey(prefix []string, key string) []string {
	out := make([]string, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, key)
}

func unionKeys(a, b map[string]any) []string {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keys))
}
