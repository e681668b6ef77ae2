// internal/db/jsonfile.go
package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	appErrors "github.com/unclebandit/clientes-service/internal/errors"
	"github.com/unclebandit/clientes-service/internal/model"
)

// JSONFile reads and writes the whole cliente collection as one JSON array.
// It does no locking of its own.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load parses the backing file. A missing file is an IO error, not an empty collection.
func (f *JSONFile) Load() (model.Collection, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, appErrors.NewIOError("load", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var c model.Collection
	if err := dec.Decode(&c); err != nil {
		return nil, appErrors.NewParseError("load", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, appErrors.NewParseError("load", errors.New("trailing data after JSON array"))
	}

	if c == nil {
		c = model.Collection{}
	}
	return c, nil
}

// Save replaces the backing file with the indented collection. The content is
// written to a sibling temp file first and renamed into place.
func (f *JSONFile) Save(c model.Collection) error {
	if c == nil {
		c = model.Collection{}
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return appErrors.NewIOError("save", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return appErrors.NewIOError("save", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return appErrors.NewIOError("save", err)
	}

	if _, err := tmp.Write(b); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return appErrors.NewIOError("save", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		_ = os.Remove(tmpName)
		return appErrors.NewIOError("save", err)
	}
	return nil
}
