package db_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/clientes-service/internal/db"
	appErrors "github.com/unclebandit/clientes-service/internal/errors"
	"github.com/unclebandit/clientes-service/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clientes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	f := db.NewJSONFile(filepath.Join(t.TempDir(), "nope.json"))

	_, err := f.Load()

	var se *appErrors.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, appErrors.KindIO, se.Kind)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformedIsParseError(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":  "not json",
		"object":   `{"id": 1}`,
		"trailing": `[] []`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := db.NewJSONFile(writeFile(t, content)).Load()

			var se *appErrors.StorageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, appErrors.KindParse, se.Kind)
		})
	}
}

func TestLoadKeepsUnknownFields(t *testing.T) {
	path := writeFile(t, `[{"id": 1, "nombre": "Ana", "saldo": 10.50, "tags": ["vip"]}]`)

	c, err := db.NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, c, 1)

	id, ok := c[0].ID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, json.Number("10.50"), c[0]["saldo"])
	assert.Equal(t, []any{"vip"}, c[0]["tags"])
}

func TestSaveWritesIndentedArray(t *testing.T) {
	path := writeFile(t, `[]`)
	f := db.NewJSONFile(path)

	require.NoError(t, f.Save(model.Collection{{"id": 1, "nombre": "Ana"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"nombre\": \"Ana\"\n  }\n]", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := writeFile(t, `[{"id": 1, "nombre": "Ana"}]`)
	f := db.NewJSONFile(path)

	require.NoError(t, f.Save(nil))

	c, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, c)
	assert.NotNil(t, c)
}

func TestSaveIntoMissingDirIsIOError(t *testing.T) {
	f := db.NewJSONFile(filepath.Join(t.TempDir(), "missing", "clientes.json"))

	err := f.Save(model.Collection{})

	var se *appErrors.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, appErrors.KindIO, se.Kind)
	assert.Equal(t, "save", se.Op)
}
