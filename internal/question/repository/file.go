package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/responder/responder/internal/question"
)

// FileStore persists the document as a JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a store over the JSON file at path. The file is not
// touched until Init, Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Location() string {
	if abs, err := filepath.Abs(f.path); err == nil {
		return "file:" + abs
	}
	return "file:" + f.path
}

// Init writes an empty document when the file does not exist yet.
func (f *FileStore) Init(ctx context.Context) error {
	if _, err := os.Stat(f.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &StorageReadError{Location: f.path, Err: err}
	}
	return f.Save(ctx, question.Document{})
}

func (f *FileStore) Load(ctx context.Context) (question.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageReadError{Location: f.path, Err: err}
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &StorageReadError{Location: f.path, Err: err}
	}
	return decodeDocument(f.path, b)
}

// Save writes to a temporary file next to the target and renames it into
// place so readers never observe a partially written document. The target
// keeps its permission bits; a new file gets 0644.
func (f *FileStore) Save(ctx context.Context, doc question.Document) error {
	if err := ctx.Err(); err != nil {
		return &StorageWriteError{Location: f.path, Err: err}
	}
	b, err := encodeDocument(doc)
	if err != nil {
		return &StorageWriteError{Location: f.path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return &StorageWriteError{Location: f.path, Err: err}
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(f.mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageWriteError{Location: f.path, Err: err}
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageWriteError{Location: f.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageWriteError{Location: f.path, Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return &StorageWriteError{Location: f.path, Err: err}
	}
	return nil
}

// mode returns the permission bits of the current file, 0644 when absent.
func (f *FileStore) mode() fs.FileMode {
	if fi, err := os.Stat(f.path); err == nil {
		return fi.Mode().Perm()
	}
	return 0o644
}

func decodeDocument(location string, b []byte) (question.Document, error) {
	var doc question.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &StorageReadError{Location: location, Err: fmt.Errorf("decode document: %w", err)}
	}
	return doc.Normalize(), nil
}

func encodeDocument(doc question.Document) ([]byte, error) {
	if doc == nil {
		doc = question.Document{}
	}
	return json.Marshal(doc.Normalize())
}
