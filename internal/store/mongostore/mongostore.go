// Package mongostore backs the record store with one MongoDB
// collection whose documents are {_id: key, value: json}.
package mongostore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/niranjan1960/banos-dessert/internal/store"
)

type kvDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials uri and pings the server before returning.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{client: client, coll: client.Database(database).Collection("kv_store")}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := kvDoc{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) GetByPrefix(ctx context.Context, prefix string) ([]store.Record, error) {
	cur, err := s.coll.Find(ctx, prefixFilter(prefix), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]store.Record, 0)
	for cur.Next(ctx) {
		var doc kvDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, store.Record{Key: doc.Key, Value: []byte(doc.Value)})
	}
	return out, cur.Err()
}

// prefixFilter matches _id values that start with prefix literally.
func prefixFilter(prefix string) bson.M {
	return bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
}

func (s *Store) Del(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
