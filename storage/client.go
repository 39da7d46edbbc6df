package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the subset of the driver client the ledger needs: handing
// out databases and disconnecting on shutdown. Fakes implement it in tests.
type MongoClient interface {
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// mongoClientWrapper adapts a *mongo.Client to the MongoClient interface.
type mongoClientWrapper struct {
	*mongo.Client
}

// NewMongoClient wraps a driver client so callers depend on MongoClient.
func NewMongoClient(client *mongo.Client) MongoClient {
	return &mongoClientWrapper{client}
}
