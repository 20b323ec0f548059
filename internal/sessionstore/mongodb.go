package sessionstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the durable Store backend, grounded verbatim on
// luikyv-go-oidc's internal/crud/mongodb.AuthnSessionManager: one
// collection, ReplaceOne-with-upsert for writes, FindOne/Decode for reads.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore builds a MongoStore backed by the "sessions" collection of
// database.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{collection: database.Collection("sessions")}
}

type mongoSessionRecord struct {
	ID        string `bson:"_id"`
	Subject   string `bson:"subject"`
	ClientID  string `bson:"client_id"`
	IdP       string `bson:"idp,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func (s *MongoStore) Save(ctx context.Context, record SessionRecord) error {
	shouldUpsert := true
	filter := bson.D{{Key: "_id", Value: record.ID}}
	doc := mongoSessionRecord{
		ID:        record.ID,
		Subject:   record.Subject,
		ClientID:  record.ClientID,
		IdP:       record.IdP,
		CreatedAt: record.CreatedAt.Unix(),
	}
	_, err := s.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(shouldUpsert))
	return err
}

func (s *MongoStore) ByID(ctx context.Context, id string) (SessionRecord, bool, error) {
	result := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}})
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return SessionRecord{}, false, nil
	}
	if result.Err() != nil {
		return SessionRecord{}, false, result.Err()
	}

	var doc mongoSessionRecord
	if err := result.Decode(&doc); err != nil {
		return SessionRecord{}, false, err
	}

	return SessionRecord{
		ID:        doc.ID,
		Subject:   doc.Subject,
		ClientID:  doc.ClientID,
		IdP:       doc.IdP,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
	}, true, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

var _ Store = (*MongoStore)(nil)
