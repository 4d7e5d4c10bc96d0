package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultConnectionString = "mongodb://localhost:27017/"
const DefaultDatabase = "coffeeshop"
const DefaultCollection = "receipts"
const DefaultConnectTimeout = 30 * time.Second

// Target addresses a single collection on a MongoDB deployment
type Target struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect opens a client for the target and pings the deployment so that an
// unreachable server is reported before any write is attempted.
func Connect(ctx context.Context, target Target) (*MongoInstance, error) {
	if target.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, target.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(target.URI))
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Debug().Str("database", target.Database).Msg("Connected to MongoDB")

	return &MongoInstance{
		Client:   client,
		Database: client.Database(target.Database),
	}, nil
}

func (m *MongoInstance) GetCollection(collectionName string) *mongo.Collection {
	return m.Database.Collection(collectionName)
}

func (m *MongoInstance) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
