// Package seed loads the canonical fixture transactions into the ledger and
// demonstrates the field-merge update operations against them.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"training/finledger/appcontext"
	"training/finledger/ledger/model"
	"training/finledger/ledger/repository"
)

// Fixtures returns the canonical sample transactions.
func Fixtures(now time.Time) []model.Transaction {
	return []model.Transaction{
		{
			TxnID:     "T2001",
			AccountID: "A5001",
			Type:      model.TypeCredit,
			Amount:    3000.75,
			Currency:  "INR",
			Date:      now,
			Status:    model.StatusSuccess,
			Channel:   "MobileBanking",
			Remarks:   "Salary credit",
			Address:   model.Address{City: "Mumbai", State: "Maharashtra", Country: "India"},
			Tags:      []string{"salary", "credit", "monthly"},
		},
		{
			TxnID:     "T2002",
			AccountID: "A5002",
			Type:      model.TypeDebit,
			Amount:    1500.00,
			Currency:  "INR",
			Date:      now,
			Status:    model.StatusPending,
			Channel:   "ATM",
			Remarks:   "ATM Withdrawal",
			Address:   model.Address{City: "Delhi", State: "Delhi", Country: "India"},
			Tags:      []string{"withdrawal", "debit", "atm"},
		},
		{
			TxnID:     "T2003",
			AccountID: "A5003",
			Type:      model.TypeCredit,
			Amount:    5000.00,
			Currency:  "INR",
			Date:      now,
			Status:    model.StatusFailed,
			Channel:   "OnlineTransfer",
			Remarks:   "Project payment",
			Address:   model.Address{City: "Bangalore", State: "Karnataka", Country: "India"},
			Tags:      []string{"project", "credit", "online"},
		},
	}
}

// Run inserts the fixture set and applies the sample field-merge updates.
// The first fixture goes through a single insert; the rest go through an
// ordered batch insert, so a mid-batch failure leaves the earlier documents
// persisted.
func Run(ctx context.Context, repo repository.Repository) (*Stats, error) {
	logger := appcontext.LoggerFromContext(ctx)
	stats := NewStats()

	fixtures := Fixtures(time.Now().UTC())

	stored, err := repo.Insert(ctx, fixtures[0])
	if err != nil {
		stats.AddFailure(fixtures[0].TxnID, err.Error())
		return stats, fmt.Errorf("failed to insert fixture %s: %w", fixtures[0].TxnID, err)
	}
	stats.Inserted++
	logger.InfoContext(ctx, "Inserted fixture transaction", "txnId", stored.TxnID, "id", stored.ID.Hex())

	inserted, err := repo.InsertMany(ctx, fixtures[1:])
	stats.Inserted += inserted
	if err != nil {
		stats.AddFailure("batch", err.Error())
		return stats, fmt.Errorf("failed to insert fixture batch: %w", err)
	}
	logger.InfoContext(ctx, "Inserted fixture batch", "count", inserted)

	// The same record mutated three times, each a field-merge: a plain
	// field, a nested dotted path, and a whole embedded document.
	updates := []bson.M{
		{"remarks": "Updated Salary credit"},
		{"address.zipCode": "400001"},
		{"contact": model.Contact{Email: "user@example.com", Phone: "1234567890"}},
	}
	for _, fields := range updates {
		matched, err := repo.UpdateFields(ctx, "T2001", fields)
		if err != nil {
			stats.AddFailure("T2001", err.Error())
			return stats, fmt.Errorf("failed to update fixture T2001: %w", err)
		}
		if matched > 0 {
			stats.Updated++
		}
	}
	logger.InfoContext(ctx, "Applied fixture updates", "txnId", "T2001", "updates", stats.Updated)

	return stats, nil
}
