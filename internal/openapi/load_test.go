package openapi

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
components:
  schemas:
    c1.apiPet:
      title: Pet
      description: A pet.
      type: object
paths:
  /api/v1/pets:
    get:
      description: List pets.
      responses:
        200:
          description: OK
`

func TestLoadBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		wantErr error
	}{
		"valid document": {
			input: petstore,
		},
		"empty input": {
			input:   "",
			wantErr: ErrEmptyDocument,
		},
		"whitespace and comments only": {
			input:   "# nothing here\n\n",
			wantErr: ErrEmptyDocument,
		},
		"explicit null": {
			input:   "null\n",
			wantErr: ErrEmptyDocument,
		},
		"empty mapping": {
			input:   "{}\n",
			wantErr: ErrEmptyDocument,
		},
		"false scalar": {
			input:   "false\n",
			wantErr: ErrEmptyDocument,
		},
		"sequence root": {
			input:   "- a\n- b\n",
			wantErr: ErrNotMapping,
		},
		"scalar root": {
			input:   "hello\n",
			wantErr: ErrNotMapping,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := LoadBytes("test.yaml", []byte(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, IsLoadError(err))
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test.yaml", doc.Source)
		})
	}
}

func TestLoadBytes_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := LoadBytes("broken.yaml", []byte("paths:\n  /a: [unclosed\n"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "broken.yaml", le.Source)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestLoadBytes_NormalizesKeys(t *testing.T) {
	t.Parallel()

	doc, err := LoadBytes("petstore.yaml", []byte(petstore))
	require.NoError(t, err)

	item, ok := doc.PathItem("/api/v1/pets")
	require.True(t, ok)
	op, ok := item["get"].(map[string]any)
	require.True(t, ok)
	responses, ok := op["responses"].(map[string]any)
	require.True(t, ok, "responses with integer keys should decode to map[string]any")
	assert.Contains(t, responses, "200")
}

func TestDocumentAccessors(t *testing.T) {
	t.Parallel()

	doc, err := LoadBytes("petstore.yaml", []byte(petstore))
	require.NoError(t, err)

	assert.Len(t, doc.Schemas(), 1)
	schema, ok := doc.Schema("c1.apiPet")
	require.True(t, ok)
	title, ok := StringField(schema, "title")
	assert.True(t, ok)
	assert.Equal(t, "Pet", title)

	_, ok = doc.Schema("c1.apiMissing")
	assert.False(t, ok)

	_, ok = StringField(schema, "summary")
	assert.False(t, ok)

	assert.Len(t, doc.Paths(), 1)
	_, ok = doc.PathItem("/api/v1/missing")
	assert.False(t, ok)
}

func TestDocumentAccessors_MissingSections(t *testing.T) {
	t.Parallel()

	doc, err := LoadBytes("minimal.yaml", []byte("openapi: 3.0.3\n"))
	require.NoError(t, err)

	assert.Nil(t, doc.Schemas())
	assert.Nil(t, doc.Paths())
	_, ok := doc.Schema("anything")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Len(t, doc.Schemas(), 1)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	doc, err := LoadFromReader("stdin", strings.NewReader(petstore))
	require.NoError(t, err)
	assert.Equal(t, "stdin", doc.Source)
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument("memory", map[string]any{
		"paths": map[any]any{
			"/api/x": map[string]any{"get": map[string]any{}},
		},
	})
	_, ok := doc.PathItem("/api/x")
	assert.True(t, ok)
}

func TestPathItemKeys(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc  func(t *testing.T) *Document
		path string
		want []string
	}{
		"document order": {
			doc: func(t *testing.T) *Document {
				doc, err := LoadBytes("spec.yaml", []byte("paths:\n  /p:\n    post: {}\n    parameters: []\n    get: {}\n"))
				require.NoError(t, err)
				return doc
			},
			path: "/p",
			want: []string{"post", "parameters", "get"},
		},
		"merge keys follow in sorted order": {
			doc: func(t *testing.T) *Document {
				spec := "x-base: &base\n  put: {}\n  delete: {}\npaths:\n  /p:\n    <<: *base\n    get: {}\n"
				doc, err := LoadBytes("spec.yaml", []byte(spec))
				require.NoError(t, err)
				return doc
			},
			path: "/p",
			want: []string{"get", "delete", "put"},
		},
		"built in memory": {
			doc: func(*testing.T) *Document {
				return NewDocument("memory", map[string]any{
					"paths": map[string]any{"/p": map[string]any{"put": nil, "get": nil}},
				})
			},
			path: "/p",
			want: []string{"get", "put"},
		},
		"missing path": {
			doc: func(*testing.T) *Document {
				return NewDocument("memory", map[string]any{})
			},
			path: "/missing",
			want: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.doc(t).PathItemKeys(tt.path))
		})
	}
}
