package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/apidoc/internal/apiparser"
)

const source = `Intro.

<api name="Panel">
@class
<api name="Panel">
@constructor
@param options {object}
  @prop url {string}
</api>
<api name="show">
@method
@param [delay] {number}
@returns {object}
  @prop ok {boolean}
</api>
<api name="width">
@property {number}
</api>
</api>
<api name="ready">
@event
</api>
`

func writeModule(t *testing.T, yamlOut bool) string {
	t.Helper()
	m, err := apiparser.ParseModule(source)
	require.NoError(t, err)
	var data []byte
	name := "panel.json"
	if yamlOut {
		data, err = m.YAML()
		name = "panel.yaml"
	} else {
		data, err = m.JSON()
	}
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestValidateFile(t *testing.T) {
	for _, yamlOut := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, ValidateFile(writeModule(t, yamlOut), &buf))
		assert.Contains(t, buf.String(), "✓ Found 1 classes")
		assert.Contains(t, buf.String(), "✓ Found 1 events")
		assert.Contains(t, buf.String(), "✓ Module document is valid")
	}
}

func TestValidateFileErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ValidateFile(filepath.Join(t.TempDir(), "missing.json"), &buf))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not: [valid"), 0o600))
	assert.Error(t, ValidateFile(bad, &buf))
}

func base() map[string]interface{} {
	return map[string]interface{}{
		"desc":       "",
		"classes":    []interface{}{},
		"functions":  []interface{}{},
		"properties": []interface{}{},
		"events":     []interface{}{},
	}
}

func TestValidateModule(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{
			name:   "empty module",
			mutate: func(map[string]interface{}) {},
		},
		{
			name:    "missing desc",
			mutate:  func(d map[string]interface{}) { delete(d, "desc") },
			wantErr: "'desc'",
		},
		{
			name:    "missing group",
			mutate:  func(d map[string]interface{}) { delete(d, "events") },
			wantErr: "'events'",
		},
		{
			name: "property without datatype",
			mutate: func(d map[string]interface{}) {
				d["properties"] = []interface{}{
					map[string]interface{}{"name": "p", "kind": "property", "line_number": 1.0},
				}
			},
			wantErr: "properties[0]: p: property without 'datatype'",
		},
		{
			name: "wrong kind in group",
			mutate: func(d map[string]interface{}) {
				d["classes"] = []interface{}{
					map[string]interface{}{"name": "f", "kind": "function", "line_number": 1.0},
				}
			},
			wantErr: `unexpected kind "function"`,
		},
		{
			name: "stale signature",
			mutate: func(d map[string]interface{}) {
				d["functions"] = []interface{}{
					map[string]interface{}{
						"name": "f", "kind": "function", "line_number": 1.0, "signature": "f()",
						"params": []interface{}{map[string]interface{}{"name": "a"}},
					},
				}
			},
			wantErr: `want "f(a)"`,
		},
		{
			name: "return property without type",
			mutate: func(d map[string]interface{}) {
				d["functions"] = []interface{}{
					map[string]interface{}{
						"name": "f", "kind": "function", "line_number": 1.0, "signature": "f()",
						"returns": map[string]interface{}{
							"properties": []interface{}{map[string]interface{}{"name": "x"}},
						},
					},
				}
			},
			wantErr: "f returns: property 0 has no 'datatype'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := base()
			tt.mutate(doc)
			err := ValidateModule(doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
