package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/responder/responder/internal/question"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRecord is the single record holding the whole document.
type mongoRecord struct {
	Name      string            `bson:"_id"`
	Questions question.Document `bson:"questions"`
}

// MongoStore keeps the document as one record of a MongoDB collection,
// keyed by name. A missing record loads as an empty document.
type MongoStore struct {
	col  *mongo.Collection
	name string
}

// NewMongoStore keeps the document in the record with _id name (default "questions").
func NewMongoStore(col *mongo.Collection, name string) *MongoStore {
	if name == "" {
		name = "questions"
	}
	return &MongoStore{col: col, name: name}
}

func (m *MongoStore) Location() string {
	return fmt.Sprintf("mongo:%s.%s/%s", m.col.Database().Name(), m.col.Name(), m.name)
}

func (m *MongoStore) Load(ctx context.Context) (question.Document, error) {
	var rec mongoRecord
	err := m.col.FindOne(ctx, bson.M{"_id": m.name}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return question.Document{}, nil
		}
		return nil, &StorageReadError{Location: m.Location(), Err: err}
	}
	return rec.Questions.Normalize(), nil
}

func (m *MongoStore) Save(ctx context.Context, doc question.Document) error {
	rec := mongoRecord{Name: m.name, Questions: doc.Normalize()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.name}, rec, opts); err != nil {
		return &StorageWriteError{Location: m.Location(), Err: err}
	}
	return nil
}
