package repository

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/responder/responder/internal/question"
	"github.com/responder/responder/internal/storage"
)

// ObjectStorage is the subset of storage.MinIOStorage the store needs.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	Bucket() string
}

// ObjectStore keeps the document as one JSON object in a bucket.
type ObjectStore struct {
	objects ObjectStorage
	key     string
}

// NewObjectStore keeps the document under key (default "questions.json").
func NewObjectStore(objects ObjectStorage, key string) *ObjectStore {
	if key == "" {
		key = "questions.json"
	}
	return &ObjectStore{objects: objects, key: key}
}

func (o *ObjectStore) Location() string {
	return "s3://" + o.objects.Bucket() + "/" + o.key
}

func (o *ObjectStore) Load(ctx context.Context) (question.Document, error) {
	rc, err := o.objects.DownloadFile(ctx, o.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return question.Document{}, nil
		}
		return nil, &StorageReadError{Location: o.Location(), Err: err}
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, &StorageReadError{Location: o.Location(), Err: err}
	}
	return decodeDocument(o.Location(), b)
}

func (o *ObjectStore) Save(ctx context.Context, doc question.Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return &StorageWriteError{Location: o.Location(), Err: err}
	}
	if err := o.objects.UploadFile(ctx, o.key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return &StorageWriteError{Location: o.Location(), Err: err}
	}
	return nil
}
