// Package ledger implements the transaction ledger operations on top of a
// repository.Repository.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"training/finledger/appcontext"
	"training/finledger/ledger/model"
	"training/finledger/ledger/repository"
)

// ErrNotFound reports a business-key lookup miss. It is a legitimate
// outcome, not a store failure.
var ErrNotFound = errors.New("transaction not found")

// ErrDuplicateTxn reports an attempt to record a transaction whose txnId
// already exists in the ledger.
var ErrDuplicateTxn = errors.New("transaction with this txnId already exists")

// ErrInvalid reports a payload that violates the ledger invariants.
var ErrInvalid = errors.New("invalid transaction")

// UpdateRequest carries a partial update for one transaction. Pointer fields
// distinguish "not provided" from a zero value; only provided fields are
// written.
type UpdateRequest struct {
	AccountID *string          `json:"accountId,omitempty"`
	Type      *model.TxnType   `json:"type,omitempty"`
	Amount    *float64         `json:"amount,omitempty"`
	Currency  *string          `json:"currency,omitempty"`
	Date      *time.Time       `json:"date,omitempty"`
	Status    *model.TxnStatus `json:"status,omitempty"`
	Channel   *string          `json:"channel,omitempty"`
	Remarks   *string          `json:"remarks,omitempty"`
	Address   *model.Address   `json:"address,omitempty"`
	Tags      *[]string        `json:"tags,omitempty"`
	Contact   *model.Contact   `json:"contact,omitempty"`
}

// fields translates the provided values into a $set document.
func (u *UpdateRequest) fields() bson.M {
	set := bson.M{}
	if u.AccountID != nil {
		set["accountId"] = *u.AccountID
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Amount != nil {
		set["amount"] = *u.Amount
	}
	if u.Currency != nil {
		set["currency"] = *u.Currency
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.Channel != nil {
		set["channel"] = *u.Channel
	}
	if u.Remarks != nil {
		set["remarks"] = *u.Remarks
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	if u.Contact != nil {
		set["contact"] = *u.Contact
	}
	return set
}

// Validate checks the provided fields against the ledger invariants.
func (u *UpdateRequest) Validate() error {
	if u.Amount != nil && *u.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %v", *u.Amount)
	}
	if u.Type != nil && *u.Type != model.TypeCredit && *u.Type != model.TypeDebit {
		return fmt.Errorf("type must be %q or %q, got %q", model.TypeCredit, model.TypeDebit, *u.Type)
	}
	if u.Status != nil && *u.Status != model.StatusPending &&
		*u.Status != model.StatusSuccess && *u.Status != model.StatusFailed {
		return fmt.Errorf("status must be one of %q, %q, %q, got %q",
			model.StatusPending, model.StatusSuccess, model.StatusFailed, *u.Status)
	}
	return nil
}

// Service exposes the ledger operations. It owns no connection state; the
// repository handle is injected by the caller.
type Service struct {
	repo repository.Repository
}

// NewService creates a new Service over the given repository.
func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Record validates and persists a new transaction. An empty status defaults
// to PENDING and an empty txnId is assigned a generated one. A duplicate
// txnId is rejected with ErrDuplicateTxn.
func (s *Service) Record(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if txn.Status == "" {
		txn.Status = model.StatusPending
	}
	if txn.TxnID == "" {
		txn.TxnID = uuid.NewString()
		appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Assigned generated txnId", "txnId", txn.TxnID)
	}

	exists, err := s.repo.ExistsByTxnID(ctx, txn.TxnID)
	if err != nil {
		return model.Transaction{}, err
	}
	if exists {
		return model.Transaction{}, fmt.Errorf("txnId %s: %w", txn.TxnID, ErrDuplicateTxn)
	}

	return s.repo.Insert(ctx, txn)
}

// ByAccount returns the transactions for one account.
func (s *Service) ByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	return s.repo.FindByAccount(ctx, accountID)
}

// All returns every transaction in the ledger.
func (s *Service) All(ctx context.Context) ([]model.Transaction, error) {
	return s.repo.FindAll(ctx)
}

// ByCity returns the transactions whose address matches the city.
func (s *Service) ByCity(ctx context.Context, city string) ([]model.Transaction, error) {
	return s.repo.FindByCity(ctx, city)
}

// ByTypeMinAmount returns the transactions of the given type with an amount
// of at least minAmount.
func (s *Service) ByTypeMinAmount(
	ctx context.Context,
	txnType model.TxnType,
	minAmount float64,
) ([]model.Transaction, error) {
	return s.repo.FindByTypeMinAmount(ctx, txnType, minAmount)
}

// ByTxnID returns the transaction with the given business key.
func (s *Service) ByTxnID(ctx context.Context, txnID string) (model.Transaction, error) {
	txn, err := s.repo.FindByTxnID(ctx, txnID)
	if err != nil {
		return model.Transaction{}, err
	}
	if txn == nil {
		return model.Transaction{}, fmt.Errorf("txnId %s: %w", txnID, ErrNotFound)
	}
	return *txn, nil
}

// Update applies a field-merge update to the transaction with the given
// business key and returns the updated record. Absent fields keep their
// prior values.
func (s *Service) Update(ctx context.Context, txnID string, req UpdateRequest) (model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	fields := req.fields()
	if len(fields) > 0 {
		matched, err := s.repo.UpdateFields(ctx, txnID, fields)
		if err != nil {
			return model.Transaction{}, err
		}
		if matched == 0 {
			return model.Transaction{}, fmt.Errorf("txnId %s: %w", txnID, ErrNotFound)
		}
	}

	return s.ByTxnID(ctx, txnID)
}

// Delete removes the transaction with the given business key.
func (s *Service) Delete(ctx context.Context, txnID string) error {
	exists, err := s.repo.ExistsByTxnID(ctx, txnID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("txnId %s: %w", txnID, ErrNotFound)
	}

	if _, err := s.repo.DeleteByTxnID(ctx, txnID); err != nil {
		return err
	}
	return nil
}

// DebitsByAccount returns the debits-by-account report.
func (s *Service) DebitsByAccount(ctx context.Context) ([]repository.AccountDebits, error) {
	return s.repo.DebitsByAccount(ctx)
}

// CityStats returns the successful-transactions-by-city report.
func (s *Service) CityStats(ctx context.Context) ([]repository.CityStats, error) {
	return s.repo.CityStats(ctx)
}

// TotalSuccessAmount returns the total amount across successful transactions.
func (s *Service) TotalSuccessAmount(ctx context.Context) (float64, error) {
	return s.repo.TotalSuccessAmount(ctx)
}
