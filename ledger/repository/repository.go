// Package repository defines the storage contract for the transaction ledger.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"training/finledger/ledger/model"
)

// AccountDebits is one row of the debits-by-account report.
type AccountDebits struct {
	AccountID   string  `bson:"_id" json:"accountId"`
	TotalDebits float64 `bson:"totalDebits" json:"totalDebits"`
}

// CityStats is one row of the successful-transactions-by-city report.
type CityStats struct {
	City      string  `bson:"_id" json:"city"`
	TotalTxns int64   `bson:"totalTxns" json:"totalTxns"`
	AvgAmount float64 `bson:"avgAmount" json:"avgAmount"`
}

// Repository defines the operations the ledger store supports. All filtering,
// updating and aggregation is delegated to the backing document database;
// implementations report store failures as wrapped errors and treat empty
// results as legitimate outcomes.
type Repository interface {
	// Insert persists a single transaction and returns it with the
	// store-assigned identity filled in.
	Insert(ctx context.Context, txn model.Transaction) (model.Transaction, error)

	// InsertMany persists a batch with an ordered insert: the store stops at
	// the first failing document and documents before it remain persisted.
	// It returns the number of documents inserted.
	InsertMany(ctx context.Context, txns []model.Transaction) (int, error)

	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByAccount(ctx context.Context, accountID string) ([]model.Transaction, error)
	FindByCity(ctx context.Context, city string) ([]model.Transaction, error)
	FindByTypeMinAmount(ctx context.Context, txnType model.TxnType, minAmount float64) ([]model.Transaction, error)

	// FindByTxnID returns the transaction with the given business key, or
	// nil with no error when there is no match.
	FindByTxnID(ctx context.Context, txnID string) (*model.Transaction, error)

	ExistsByTxnID(ctx context.Context, txnID string) (bool, error)

	// FindProjected returns raw documents restricted to the named fields.
	// The store identity is included unless explicitly excluded.
	FindProjected(ctx context.Context, filter bson.M, fields []string) ([]bson.M, error)

	// UpdateFields applies a field-merge update ($set, including dotted
	// nested paths) to the transaction with the given business key and
	// reports the matched count. A matched count of zero is not an error.
	UpdateFields(ctx context.Context, txnID string, fields bson.M) (int64, error)

	// DeleteByTxnID removes the transaction with the given business key and
	// reports the deleted count. A deleted count of zero is not an error.
	DeleteByTxnID(ctx context.Context, txnID string) (int64, error)

	DebitsByAccount(ctx context.Context) ([]AccountDebits, error)
	CityStats(ctx context.Context) ([]CityStats, error)
	TotalSuccessAmount(ctx context.Context) (float64, error)
}
