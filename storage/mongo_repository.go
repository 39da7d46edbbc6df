package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"training/finledger/ledger/model"
	"training/finledger/ledger/repository"
)

// TransactionsCollection is the single collection backing the ledger.
const TransactionsCollection = "transactions"

// MongoRepository implements the repository.Repository interface for MongoDB.
type MongoRepository struct {
	provider   CollectionProvider
	collection string
}

// NewMongoRepository creates a new MongoRepository over the given provider.
// An empty collection name falls back to TransactionsCollection.
func NewMongoRepository(provider CollectionProvider, collection string) *MongoRepository {
	if collection == "" {
		collection = TransactionsCollection
	}
	return &MongoRepository{
		provider:   provider,
		collection: collection,
	}
}

func (r *MongoRepository) txns() DataStore {
	return r.provider.Collection(r.collection)
}

// Insert persists a single transaction and fills in the assigned identity.
func (r *MongoRepository) Insert(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	result, err := r.txns().InsertOne(ctx, txn)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert transaction %s: %w", txn.TxnID, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		txn.ID = oid
	}
	return txn, nil
}

// InsertMany persists a batch using an ordered insert. The store aborts at
// the first failing document; documents before it remain persisted.
func (r *MongoRepository) InsertMany(ctx context.Context, txns []model.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	documents := make([]interface{}, 0, len(txns))
	for _, txn := range txns {
		documents = append(documents, txn)
	}

	result, err := r.txns().InsertMany(ctx, documents, options.InsertMany().SetOrdered(true))
	if result != nil && err != nil {
		return len(result.InsertedIDs), fmt.Errorf("failed to insert transaction batch: %w", err)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction batch: %w", err)
	}
	return len(result.InsertedIDs), nil
}

// FindAll returns every transaction in the ledger in store-native order.
func (r *MongoRepository) FindAll(ctx context.Context) ([]model.Transaction, error) {
	return r.findTxns(ctx, bson.M{})
}

// FindByAccount returns the transactions for one account.
func (r *MongoRepository) FindByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	return r.findTxns(ctx, bson.M{"accountId": accountID})
}

// FindByCity returns the transactions whose embedded address matches the city.
func (r *MongoRepository) FindByCity(ctx context.Context, city string) ([]model.Transaction, error) {
	return r.findTxns(ctx, bson.M{"address.city": city})
}

// FindByTypeMinAmount returns the transactions of the given type with an
// amount of at least minAmount.
func (r *MongoRepository) FindByTypeMinAmount(
	ctx context.Context,
	txnType model.TxnType,
	minAmount float64,
) ([]model.Transaction, error) {
	filter := bson.M{
		"type":   txnType,
		"amount": bson.M{"$gte": minAmount},
	}
	return r.findTxns(ctx, filter)
}

// FindByTxnID returns the transaction with the given business key, or nil
// when there is no match.
func (r *MongoRepository) FindByTxnID(ctx context.Context, txnID string) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.txns().FindOne(ctx, bson.M{"txnId": txnID}).Decode(&txn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", txnID, err)
	}
	return &txn, nil
}

// ExistsByTxnID reports whether a transaction with the business key exists.
func (r *MongoRepository) ExistsByTxnID(ctx context.Context, txnID string) (bool, error) {
	count, err := r.txns().CountDocuments(ctx, bson.M{"txnId": txnID})
	if err != nil {
		return false, fmt.Errorf("failed to count transactions with txnId %s: %w", txnID, err)
	}
	return count > 0, nil
}

// FindProjected returns raw documents restricted to the named fields.
func (r *MongoRepository) FindProjected(
	ctx context.Context,
	filter bson.M,
	fields []string,
) ([]bson.M, error) {
	projection := bson.M{}
	for _, field := range fields {
		projection[field] = 1
	}

	cursor, err := r.txns().Find(ctx, filter, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to execute projected find: %w", err)
	}

	documents := []bson.M{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to decode projected documents: %w", err)
	}
	return documents, nil
}

// UpdateFields applies a $set field-merge update to the transaction with the
// given business key. Dotted paths address nested fields.
func (r *MongoRepository) UpdateFields(ctx context.Context, txnID string, fields bson.M) (int64, error) {
	result, err := r.txns().UpdateOne(ctx, bson.M{"txnId": txnID}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction %s: %w", txnID, err)
	}
	return result.MatchedCount, nil
}

// DeleteByTxnID removes the transaction with the given business key.
func (r *MongoRepository) DeleteByTxnID(ctx context.Context, txnID string) (int64, error) {
	result, err := r.txns().DeleteOne(ctx, bson.M{"txnId": txnID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction %s: %w", txnID, err)
	}
	return result.DeletedCount, nil
}

// DebitsByAccount sums debit amounts per account, largest totals first.
func (r *MongoRepository) DebitsByAccount(ctx context.Context) ([]repository.AccountDebits, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"type": model.TypeDebit}},
		{"$group": bson.M{
			"_id":         "$accountId",
			"totalDebits": bson.M{"$sum": "$amount"},
		}},
		{"$sort": bson.M{"totalDebits": -1}},
	}

	cursor, err := r.txns().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate debits by account: %w", err)
	}

	rows := []repository.AccountDebits{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode debits-by-account rows: %w", err)
	}
	return rows, nil
}

// CityStats counts and averages successful transactions per city, highest
// average first.
func (r *MongoRepository) CityStats(ctx context.Context) ([]repository.CityStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": model.StatusSuccess}},
		{"$group": bson.M{
			"_id":       "$address.city",
			"totalTxns": bson.M{"$sum": 1},
			"avgAmount": bson.M{"$avg": "$amount"},
		}},
		{"$sort": bson.M{"avgAmount": -1}},
	}

	cursor, err := r.txns().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate city stats: %w", err)
	}

	rows := []repository.CityStats{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode city stats rows: %w", err)
	}
	return rows, nil
}

// TotalSuccessAmount sums the amounts of all successful transactions.
// An empty ledger yields 0.
func (r *MongoRepository) TotalSuccessAmount(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": model.StatusSuccess}},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}},
	}

	cursor, err := r.txns().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate total success amount: %w", err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode total success amount: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoRepository) findTxns(ctx context.Context, filter bson.M) ([]model.Transaction, error) {
	cursor, err := r.txns().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find: %w", err)
	}

	txns := []model.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txns, nil
}
