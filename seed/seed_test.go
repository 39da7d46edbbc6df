package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"training/finledger/ledger/model"
	"training/finledger/ledger/repository"
	"training/finledger/seed"
)

// Minimal mock for repository.Repository; only the write paths matter here.
type mockRepo struct {
	insertFunc       func(ctx context.Context, txn model.Transaction) (model.Transaction, error)
	insertManyFunc   func(ctx context.Context, txns []model.Transaction) (int, error)
	updateFieldsFunc func(ctx context.Context, txnID string, fields bson.M) (int64, error)
}

func (m *mockRepo) Insert(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, txn)
	}
	return txn, nil
}

func (m *mockRepo) InsertMany(ctx context.Context, txns []model.Transaction) (int, error) {
	if m.insertManyFunc != nil {
		return m.insertManyFunc(ctx, txns)
	}
	return len(txns), nil
}

func (m *mockRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

func (m *mockRepo) FindByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

func (m *mockRepo) FindByCity(ctx context.Context, city string) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

func (m *mockRepo) FindByTypeMinAmount(ctx context.Context, txnType model.TxnType, minAmount float64) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

func (m *mockRepo) FindByTxnID(ctx context.Context, txnID string) (*model.Transaction, error) {
	return nil, nil
}

func (m *mockRepo) ExistsByTxnID(ctx context.Context, txnID string) (bool, error) {
	return false, nil
}

func (m *mockRepo) FindProjected(ctx context.Context, filter bson.M, fields []string) ([]bson.M, error) {
	return []bson.M{}, nil
}

func (m *mockRepo) UpdateFields(ctx context.Context, txnID string, fields bson.M) (int64, error) {
	if m.updateFieldsFunc != nil {
		return m.updateFieldsFunc(ctx, txnID, fields)
	}
	return 1, nil
}

func (m *mockRepo) DeleteByTxnID(ctx context.Context, txnID string) (int64, error) {
	return 0, nil
}

func (m *mockRepo) DebitsByAccount(ctx context.Context) ([]repository.AccountDebits, error) {
	return []repository.AccountDebits{}, nil
}

func (m *mockRepo) CityStats(ctx context.Context) ([]repository.CityStats, error) {
	return []repository.CityStats{}, nil
}

func (m *mockRepo) TotalSuccessAmount(ctx context.Context) (float64, error) {
	return 0, nil
}

func TestFixtures_SatisfyInvariants(t *testing.T) {
	fixtures := seed.Fixtures(time.Now())
	if len(fixtures) != 3 {
		t.Fatalf("Expected 3 fixtures, got %d", len(fixtures))
	}
	for _, txn := range fixtures {
		if err := txn.Validate(); err != nil {
			t.Errorf("Fixture %s fails validation: %v", txn.TxnID, err)
		}
	}
}

func TestRun_InsertsAndUpdates(t *testing.T) {
	var batch []model.Transaction
	var merges []bson.M

	repo := &mockRepo{
		insertManyFunc: func(ctx context.Context, txns []model.Transaction) (int, error) {
			batch = txns
			return len(txns), nil
		},
		updateFieldsFunc: func(ctx context.Context, txnID string, fields bson.M) (int64, error) {
			if txnID != "T2001" {
				t.Errorf("Expected updates against T2001, got %s", txnID)
			}
			merges = append(merges, fields)
			return 1, nil
		},
	}

	stats, err := seed.Run(context.Background(), repo)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", stats.Inserted)
	}
	if len(batch) != 2 {
		t.Errorf("Expected a 2-document batch, got %d", len(batch))
	}
	if stats.Updated != 3 {
		t.Errorf("Updated = %d, want 3", stats.Updated)
	}
	if len(merges) != 3 {
		t.Fatalf("Expected 3 field-merge updates, got %d", len(merges))
	}
	if _, ok := merges[1]["address.zipCode"]; !ok {
		t.Errorf("Expected a nested zipCode merge, got %v", merges[1])
	}
}

func TestRun_InsertFailure(t *testing.T) {
	insertErr := errors.New("duplicate key")
	repo := &mockRepo{
		insertFunc: func(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
			return model.Transaction{}, insertErr
		},
	}

	stats, err := seed.Run(context.Background(), repo)
	if !errors.Is(err, insertErr) {
		t.Errorf("Expected wrapped insert error, got %v", err)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
}
