package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexModels builds one single field index per entry. A leading '-' makes
// the index descending.
func IndexModels(fields []string) ([]mongo.IndexModel, error) {
	models := make([]mongo.IndexModel, 0, len(fields))

	for _, field := range fields {
		direction := 1
		name := field
		if strings.HasPrefix(field, "-") {
			direction = -1
			name = field[1:]
		}

		if name == "" {
			return nil, fmt.Errorf("invalid index field %q", field)
		}

		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: name, Value: direction}},
		})
	}

	return models, nil
}

func (s *MongoSink) CreateIndexes(ctx context.Context, fields []string) ([]string, error) {
	models, err := IndexModels(fields)
	if err != nil {
		return nil, err
	}

	opts := options.CreateIndexes()
	names, err := s.collection.Indexes().CreateMany(ctx, models, opts)
	if err != nil {
		return nil, err
	}

	log.Info().Str("collection", s.collection.Name()).Strs("indexes", names).Msg("Created indexes")

	return names, nil
}
