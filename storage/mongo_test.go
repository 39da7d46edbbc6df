package storage_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"training/finledger/storage"
)

// Mock for MongoClient. Database handle construction is delegated to a real
// driver client, which performs no I/O for it.
type mockMongoClient struct {
	inner        *mongo.Client
	databaseName string
	disconnected bool
}

func (m *mockMongoClient) Disconnect(ctx context.Context) error {
	m.disconnected = true
	return nil
}

func (m *mockMongoClient) Database(name string, opts ...*options.DatabaseOptions) *mongo.Database {
	m.databaseName = name
	return m.inner.Database(name, opts...)
}

func driverClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("Failed to build driver client: %v", err)
	}
	return client
}

func TestNewMongoClient_WrapsDriverClient(t *testing.T) {
	client := storage.NewMongoClient(driverClient(t))

	if client.Database("finance_db") == nil {
		t.Error("Database returned nil handle")
	}
	if err := client.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect failed: %v", err)
	}
}

func TestMongoProvider_UsesConfiguredDatabase(t *testing.T) {
	client := &mockMongoClient{inner: driverClient(t)}
	provider := storage.NewMongoProvider(client, "finance_db")

	if ds := provider.Collection(storage.TransactionsCollection); ds == nil {
		t.Fatal("Collection returned nil")
	}
	if client.databaseName != "finance_db" {
		t.Errorf("Expected database finance_db, got %s", client.databaseName)
	}

	if err := client.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect failed: %v", err)
	}
	if !client.disconnected {
		t.Error("Disconnect did not reach the client")
	}
}
