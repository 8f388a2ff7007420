// Package classify sorts typed spec changes into release-note buckets.
//
// Every change gets exactly one tagged Classification: bucketed under a
// change type and object category, ignored (a cosmetic leaf edit such as a
// description), or unhandled. Unhandled changes are fatal for callers: the
// classifier never guesses at a change shape it does not recognize.
package classify

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ariel-frischer/oasnotes/internal/specdiff"
)

// ChangeType is the release-note section a change belongs to.
type ChangeType string

const (
	TypeAdded   ChangeType = "added"
	TypeDeleted ChangeType = "deleted"
	TypeChanged ChangeType = "changed"
)

// ChangeTypes returns all change types in rendering order.
func ChangeTypes() []ChangeType {
	return []ChangeType{TypeAdded, TypeDeleted, TypeChanged}
}

// Category is the kind of object a change applies to.
type Category string

const (
	CategorySchemas   Category = "schemas"
	CategoryEndpoints Category = "endpoints"
)

// Categories returns all categories in rendering order.
func Categories() []Category {
	return []Category{CategorySchemas, CategoryEndpoints}
}

// DefaultIgnoredFields lists leaf names whose edits never appear in notes.
var DefaultIgnoredFields = []string{"description"}

// Outcome tags a Classification.
type Outcome int

const (
	Bucketed Outcome = iota
	Ignored
	Unhandled
)

func (o Outcome) String() string {
	switch o {
	case Bucketed:
		return "bucketed"
	case Ignored:
		return "ignored"
	case Unhandled:
		return "unhandled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Classification is the result of classifying one change.
type Classification struct {
	Outcome Outcome
	Change  specdiff.Change

	// Set when Outcome is Bucketed.
	Type       ChangeType
	Category   Category
	Identifier string

	// Field is the ignored leaf name when Outcome is Ignored.
	Field string
	// Reason explains an Unhandled outcome.
	Reason string
}

// Path returns the change path of the classified change.
func (c Classification) Path() string {
	return c.Change.Path()
}

// Err returns an *UnhandledChangeError for unhandled outcomes and nil otherwise.
func (c Classification) Err() error {
	if c.Outcome != Unhandled {
		return nil
	}
	return &UnhandledChangeError{Path: c.Path(), Reason: c.Reason}
}

// UnhandledChangeError reports a change whose shape the classifier does not
// recognize.
type UnhandledChangeError struct {
	Path   string
	Reason string
}

func (e *UnhandledChangeError) Error() string {
	return fmt.Sprintf("unhandled change at %s: %s", e.Path, e.Reason)
}

// IsUnhandledChange returns true if err is or wraps an UnhandledChangeError.
func IsUnhandledChange(err error) bool {
	var ue *UnhandledChangeError
	return errors.As(err, &ue)
}

// Classifier assigns changes to buckets.
type Classifier struct {
	// IgnoredFields are leaf names whose field-level edits are dropped.
	IgnoredFields []string
}

// New returns a Classifier. A nil ignored list uses DefaultIgnoredFields.
func New(ignoredFields []string) *Classifier {
	if ignoredFields == nil {
		ignoredFields = DefaultIgnoredFields
	}
	return &Classifier{IgnoredFields: ignoredFields}
}

// Classify returns the tagged classification for a single change.
func (c *Classifier) Classify(change specdiff.Change) Classification {
	result := Classification{Change: change}

	switch change.Kind {
	case specdiff.SchemaAdded:
		return bucket(result, TypeAdded, CategorySchemas, change.Name)
	case specdiff.SchemaRemoved:
		return bucket(result, TypeDeleted, CategorySchemas, change.Name)
	case specdiff.EndpointAdded:
		return bucket(result, TypeAdded, CategoryEndpoints, change.Name)
	case specdiff.EndpointRemoved:
		return bucket(result, TypeDeleted, CategoryEndpoints, change.Name)
	case specdiff.SchemaFieldChanged:
		if len(change.Field) == 0 {
			return unhandled(result, "schema field change without a field")
		}
		return c.classifyField(result, CategorySchemas)
	case specdiff.OperationFieldChanged:
		if change.Method == "" {
			return unhandled(result, "endpoint field change without a method")
		}
		return c.classifyField(result, CategoryEndpoints)
	case specdiff.Unrecognized:
		return unhandled(result, "change is outside components.schemas and paths")
	default:
		return unhandled(result, fmt.Sprintf("unknown change kind %s", change.Kind))
	}
}

// classifyField handles leaf-level edits inside an existing schema or endpoint.
func (c *Classifier) classifyField(result Classification, category Category) Classification {
	leaf := result.Change.Leaf()
	if slices.Contains(c.IgnoredFields, leaf) {
		result.Outcome = Ignored
		result.Field = leaf
		return result
	}
	return bucket(result, TypeChanged, category, result.Change.Path())
}

func bucket(result Classification, t ChangeType, category Category, id string) Classification {
	result.Outcome = Bucketed
	result.Type = t
	result.Category = category
	result.Identifier = id
	return result
}

func unhandled(result Classification, reason string) Classification {
	result.Outcome = Unhandled
	result.Reason = reason
	return result
}

// ClassifyAll classifies changes in order and fills a bucket set.
// It stops at the first unhandled change and returns its error; the
// classifications gathered so far are returned alongside it.
func (c *Classifier) ClassifyAll(changes []specdiff.Change) (*Buckets, []Classification, error) {
	buckets := NewBuckets()
	results := make([]Classification, 0, len(changes))

	for _, change := range changes {
		result := c.Classify(change)
		results = append(results, result)

		switch result.Outcome {
		case Unhandled:
			return nil, results, result.Err()
		case Bucketed:
			buckets.Add(result)
		}
	}

	return buckets, results, nil
}
