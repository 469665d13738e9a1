package jsonstore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todomvc/internal/model"
)

func TestLoad(t *testing.T) {
	items, err := Load(strings.NewReader(`[{"text":"a","completed":true},{"text":"b"}]`))
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{Text: "a", Completed: true}, {Text: "b"}}, items)
}

func TestLoadEmpty(t *testing.T) {
	items, err := Load(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"not an array", `{"text":"a"}`, ""},
		{"missing text", `[{"text":"a"},{"completed":true}]`, "[1]"},
		{"wrong type", `[{"text":"a","completed":"yes"}]`, "[0].completed"},
		{"extra field", `[{"text":"a","id":3}]`, "[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.path, ve.Path)
		})
	}
}

func TestLoadBadJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`[{`))
	assert.ErrorContains(t, err, "json unmarshal")
}

func TestSaveThenLoadFile(t *testing.T) {
	var buf bytes.Buffer
	in := []model.Item{{Text: "a"}, {Text: "b", Completed: true}}
	require.NoError(t, Save(&buf, in))
	assert.True(t, strings.HasSuffix(buf.String(), "]\n"))
	assert.Contains(t, buf.String(), `  {`)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "", pointerToPath(""))
	assert.Equal(t, "[1]", pointerToPath("/1"))
	assert.Equal(t, "[0].completed", pointerToPath("/0/completed"))
}
