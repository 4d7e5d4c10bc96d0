package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/docloader/pkg/dataimporter/formats"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sink is the capability the importer needs from the database: one bulk
// insert into an already addressed collection.
type Sink interface {
	InsertMany(ctx context.Context, records []formats.Record) (int, error)
	Drop(ctx context.Context) error
	CreateIndexes(ctx context.Context, fields []string) ([]string, error)
	Close(ctx context.Context) error
}

// Connector opens a Sink for the target collection
type Connector func(ctx context.Context, target Target) (Sink, error)

// ConnectSink is the Connector backed by MongoDB
func ConnectSink(ctx context.Context, target Target) (Sink, error) {
	instance, err := Connect(ctx, target)
	if err != nil {
		return nil, err
	}

	return instance.Sink(target.Collection), nil
}

var _ Sink = (*MongoSink)(nil)

type MongoSink struct {
	instance   *MongoInstance
	collection *mongo.Collection
}

func (m *MongoInstance) Sink(collectionName string) *MongoSink {
	return &MongoSink{
		instance:   m,
		collection: m.GetCollection(collectionName),
	}
}

func (s *MongoSink) InsertMany(ctx context.Context, records []formats.Record) (int, error) {
	documents := make([]interface{}, len(records))
	for i, record := range records {
		documents[i] = record
	}

	log.Info().Str("collection", s.collection.Name()).Int("length", len(documents)).Msg("Bulk insert")

	result, err := s.collection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, err
	}

	return len(result.InsertedIDs), nil
}

func (s *MongoSink) Drop(ctx context.Context) error {
	log.Info().Str("collection", s.collection.Name()).Msg("Dropping collection")

	return s.collection.Drop(ctx)
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.instance.Disconnect(ctx)
}
