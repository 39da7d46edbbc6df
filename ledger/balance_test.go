package ledger_test

import (
	"context"
	"testing"

	"training/finledger/ledger"
	"training/finledger/ledger/model"
)

func TestSumBalance_CreditsMinusDebits(t *testing.T) {
	txns := []model.Transaction{
		{Type: model.TypeCredit, Amount: 3000.75},
		{Type: model.TypeDebit, Amount: 1500.00},
		{Type: model.TypeCredit, Amount: 500.25},
	}

	got := ledger.SumBalance(txns)
	if got != 2001.00 {
		t.Errorf("SumBalance = %v, want 2001.00", got)
	}
}

func TestSumBalance_Empty(t *testing.T) {
	if got := ledger.SumBalance(nil); got != 0 {
		t.Errorf("SumBalance of no transactions = %v, want 0", got)
	}
}

func TestSumBalance_DecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 drifts under plain float64 summation.
	txns := []model.Transaction{
		{Type: model.TypeCredit, Amount: 0.1},
		{Type: model.TypeCredit, Amount: 0.2},
	}

	if got := ledger.SumBalance(txns); got != 0.3 {
		t.Errorf("SumBalance = %v, want 0.3", got)
	}
}

func TestBalance_UsesAccountTransactions(t *testing.T) {
	repo := &mockRepository{
		findByAccountFunc: func(ctx context.Context, accountID string) ([]model.Transaction, error) {
			if accountID != "A5001" {
				t.Errorf("Expected accountID A5001, got %s", accountID)
			}
			return []model.Transaction{
				{AccountID: accountID, Type: model.TypeCredit, Amount: 100},
				{AccountID: accountID, Type: model.TypeDebit, Amount: 40},
			}, nil
		},
	}

	svc := ledger.NewService(repo)
	balance, err := svc.Balance(context.Background(), "A5001")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != 60 {
		t.Errorf("Balance = %v, want 60", balance)
	}
}

func TestBalance_NoTransactionsIsZero(t *testing.T) {
	repo := &mockRepository{
		findByAccountFunc: func(ctx context.Context, accountID string) ([]model.Transaction, error) {
			return []model.Transaction{}, nil
		},
	}

	svc := ledger.NewService(repo)
	balance, err := svc.Balance(context.Background(), "A9999")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Balance of unknown account = %v, want 0", balance)
	}
}
