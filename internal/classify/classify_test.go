package classify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ariel-frischer/oasnotes/internal/specdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		change       specdiff.Change
		wantOutcome  Outcome
		wantType     ChangeType
		wantCategory Category
		wantID       string
	}{
		"schema added": {
			change:       specdiff.Change{Kind: specdiff.SchemaAdded, Name: "c1.apiWidget"},
			wantOutcome:  Bucketed,
			wantType:     TypeAdded,
			wantCategory: CategorySchemas,
			wantID:       "c1.apiWidget",
		},
		"schema removed": {
			change:       specdiff.Change{Kind: specdiff.SchemaRemoved, Name: "c1.apiWidget"},
			wantOutcome:  Bucketed,
			wantType:     TypeDeleted,
			wantCategory: CategorySchemas,
			wantID:       "c1.apiWidget",
		},
		"endpoint added": {
			change:       specdiff.Change{Kind: specdiff.EndpointAdded, Name: "/api/v1/items"},
			wantOutcome:  Bucketed,
			wantType:     TypeAdded,
			wantCategory: CategoryEndpoints,
			wantID:       "/api/v1/items",
		},
		"endpoint removed": {
			change:       specdiff.Change{Kind: specdiff.EndpointRemoved, Name: "/api/v1/items"},
			wantOutcome:  Bucketed,
			wantType:     TypeDeleted,
			wantCategory: CategoryEndpoints,
			wantID:       "/api/v1/items",
		},
		"schema type changed": {
			change: specdiff.Change{
				Kind: specdiff.SchemaFieldChanged, Action: specdiff.Modified,
				Name: "c1.apiWidget", Field: []string{"type"}, Old: "object", New: "string",
			},
			wantOutcome:  Bucketed,
			wantType:     TypeChanged,
			wantCategory: CategorySchemas,
			wantID:       "root['components']['schemas']['c1.apiWidget']['type']",
		},
		"operation field changed": {
			change: specdiff.Change{
				Kind: specdiff.OperationFieldChanged, Action: specdiff.Modified,
				Name: "/api/v1/items", Method: "get", Field: []string{"operationId"},
			},
			wantOutcome:  Bucketed,
			wantType:     TypeChanged,
			wantCategory: CategoryEndpoints,
			wantID:       "root['paths']['/api/v1/items']['get']['operationId']",
		},
		"method added to existing endpoint": {
			change: specdiff.Change{
				Kind: specdiff.OperationFieldChanged, Action: specdiff.Added,
				Name: "/api/v1/items", Method: "post",
			},
			wantOutcome:  Bucketed,
			wantType:     TypeChanged,
			wantCategory: CategoryEndpoints,
			wantID:       "root['paths']['/api/v1/items']['post']",
		},
		"schema description ignored": {
			change: specdiff.Change{
				Kind: specdiff.SchemaFieldChanged, Action: specdiff.Modified,
				Name: "c1.apiWidget", Field: []string{"description"},
			},
			wantOutcome: Ignored,
		},
		"nested property description ignored": {
			change: specdiff.Change{
				Kind: specdiff.SchemaFieldChanged, Action: specdiff.Added,
				Name: "c1.apiWidget", Field: []string{"properties", "id", "description"},
			},
			wantOutcome: Ignored,
		},
		"operation description ignored": {
			change: specdiff.Change{
				Kind: specdiff.OperationFieldChanged, Action: specdiff.Modified,
				Name: "/api/v1/items", Method: "get", Field: []string{"description"},
			},
			wantOutcome: Ignored,
		},
		"unrecognized": {
			change: specdiff.Change{
				Kind: specdiff.Unrecognized, Segments: []string{"info", "version"},
			},
			wantOutcome: Unhandled,
		},
		"schema field change without field": {
			change:      specdiff.Change{Kind: specdiff.SchemaFieldChanged, Name: "c1.apiWidget"},
			wantOutcome: Unhandled,
		},
		"operation change without method": {
			change:      specdiff.Change{Kind: specdiff.OperationFieldChanged, Name: "/api/v1/items"},
			wantOutcome: Unhandled,
		},
	}

	c := New(nil)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(tt.change)
			assert.Equal(t, tt.wantOutcome, got.Outcome)
			if tt.wantOutcome == Bucketed {
				assert.Equal(t, tt.wantType, got.Type)
				assert.Equal(t, tt.wantCategory, got.Category)
				assert.Equal(t, tt.wantID, got.Identifier)
				assert.NoError(t, got.Err())
			}
			if tt.wantOutcome == Ignored {
				assert.Equal(t, "description", got.Field)
				assert.NoError(t, got.Err())
			}
		})
	}
}

func TestClassify_UnhandledCarriesPath(t *testing.T) {
	t.Parallel()

	got := New(nil).Classify(specdiff.Change{
		Kind:     specdiff.Unrecognized,
		Segments: []string{"info", "version"},
	})

	err := got.Err()
	require.Error(t, err)

	var ue *UnhandledChangeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "root['info']['version']", ue.Path)
	assert.Contains(t, err.Error(), "root['info']['version']")
	assert.True(t, IsUnhandledChange(fmt.Errorf("wrapped: %w", err)))
}

func TestClassify_CustomIgnoredFields(t *testing.T) {
	t.Parallel()

	change := specdiff.Change{
		Kind: specdiff.SchemaFieldChanged, Action: specdiff.Modified,
		Name: "c1.apiWidget", Field: []string{"example"},
	}

	assert.Equal(t, Bucketed, New(nil).Classify(change).Outcome)
	assert.Equal(t, Ignored, New([]string{"example"}).Classify(change).Outcome)

	// An explicitly empty list ignores nothing, not even descriptions.
	desc := change
	desc.Field = []string{"description"}
	assert.Equal(t, Bucketed, New([]string{}).Classify(desc).Outcome)
}

func TestClassifyAll(t *testing.T) {
	t.Parallel()

	changes := []specdiff.Change{
		{Kind: specdiff.SchemaAdded, Name: "c1.apiA"},
		{Kind: specdiff.SchemaAdded, Name: "c1.apiB"},
		{Kind: specdiff.EndpointRemoved, Name: "/api/v1/old"},
		{Kind: specdiff.SchemaFieldChanged, Action: specdiff.Modified, Name: "c1.apiC", Field: []string{"description"}},
		{Kind: specdiff.SchemaFieldChanged, Action: specdiff.Modified, Name: "c1.apiC", Field: []string{"type"}},
	}

	buckets, results, err := New(nil).ClassifyAll(changes)
	require.NoError(t, err)
	require.Len(t, results, len(changes))

	assert.Equal(t, []string{"c1.apiA", "c1.apiB"}, buckets.Identifiers(TypeAdded, CategorySchemas))
	assert.Equal(t, []string{"/api/v1/old"}, buckets.Identifiers(TypeDeleted, CategoryEndpoints))
	assert.Equal(t,
		[]string{"root['components']['schemas']['c1.apiC']['type']"},
		buckets.Identifiers(TypeChanged, CategorySchemas))
	assert.Nil(t, buckets.Identifiers(TypeAdded, CategoryEndpoints))
	assert.Equal(t, 4, buckets.Count())
	assert.Equal(t, Ignored, results[3].Outcome)
}

func TestClassifyAll_StopsAtUnhandled(t *testing.T) {
	t.Parallel()

	changes := []specdiff.Change{
		{Kind: specdiff.SchemaAdded, Name: "c1.apiA"},
		{Kind: specdiff.Unrecognized, Segments: []string{"servers"}},
		{Kind: specdiff.SchemaAdded, Name: "c1.apiB"},
	}

	buckets, results, err := New(nil).ClassifyAll(changes)
	require.Error(t, err)
	assert.True(t, IsUnhandledChange(err))
	assert.Nil(t, buckets)
	assert.Len(t, results, 2)
	assert.Contains(t, err.Error(), "root['servers']")
}

func TestBuckets_Empty(t *testing.T) {
	t.Parallel()

	b := NewBuckets()
	for _, ct := range ChangeTypes() {
		assert.True(t, b.Empty(ct))
	}

	b.Add(Classification{Outcome: Ignored})
	assert.Equal(t, 0, b.Count())

	b.Add(Classification{Outcome: Bucketed, Type: TypeChanged, Category: CategoryEndpoints, Identifier: "x"})
	assert.False(t, b.Empty(TypeChanged))
	assert.True(t, b.Empty(TypeAdded))
}
