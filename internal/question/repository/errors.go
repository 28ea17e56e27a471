package repository

import (
	"errors"
	"fmt"
)

var (
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
	ErrValidation   = errors.New("empty input")
)

// StorageReadError reports that the document could not be read or parsed.
type StorageReadError struct {
	Location string
	Err      error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Location, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

func (e *StorageReadError) Is(target error) bool { return target == ErrStorageRead }

// StorageWriteError reports that the document could not be persisted.
type StorageWriteError struct {
	Location string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Location, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrStorageWrite }

// ValidationError rejects a create or import request before anything is
// written. Duplicate is set when Field holds an id that occurs twice.
type ValidationError struct {
	Field     string
	Duplicate string
}

func (e *ValidationError) Error() string {
	if e.Duplicate != "" {
		return fmt.Sprintf("duplicate %s %s", e.Field, e.Duplicate)
	}
	return fmt.Sprintf("empty input: %s must not be empty", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
