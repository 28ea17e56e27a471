package repository

import (
	"context"

	"github.com/responder/responder/internal/question"
)

// Store loads and saves the whole question document at one location.
// Implementations return *StorageReadError / *StorageWriteError.
type Store interface {
	Load(ctx context.Context) (question.Document, error)
	Save(ctx context.Context, doc question.Document) error
	Location() string
}
