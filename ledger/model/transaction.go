// Package model defines the documents stored in the transactions collection.
package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxnType is the direction of a transaction.
type TxnType string

// TxnStatus is the settlement state of a transaction.
type TxnStatus string

const (
	TypeCredit TxnType = "Credit"
	TypeDebit  TxnType = "Debit"

	StatusPending TxnStatus = "PENDING"
	StatusSuccess TxnStatus = "SUCCESS"
	StatusFailed  TxnStatus = "FAILED"
)

// Address is the embedded location of a transaction. ZipCode is optional
// and may be set after creation.
type Address struct {
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

// Contact is the optional embedded contact details of a transaction.
type Contact struct {
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Transaction represents a single financial movement in the ledger.
// TxnID is the externally supplied business key; ID is assigned by the store.
type Transaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TxnID     string             `bson:"txnId" json:"txnId"`
	AccountID string             `bson:"accountId" json:"accountId"`
	Type      TxnType            `bson:"type" json:"type"`
	Amount    float64            `bson:"amount" json:"amount"`
	Currency  string             `bson:"currency" json:"currency"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    TxnStatus          `bson:"status" json:"status"`
	Channel   string             `bson:"channel" json:"channel"`
	Remarks   string             `bson:"remarks" json:"remarks"`
	Address   Address            `bson:"address" json:"address"`
	Tags      []string           `bson:"tags" json:"tags"`
	Contact   *Contact           `bson:"contact,omitempty" json:"contact,omitempty"`
}

// Validate checks the invariants a transaction must satisfy before it is
// persisted. An empty status is allowed; the service defaults it to PENDING.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("accountId must not be empty")
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %v", t.Amount)
	}
	if t.Type != TypeCredit && t.Type != TypeDebit {
		return fmt.Errorf("type must be %q or %q, got %q", TypeCredit, TypeDebit, t.Type)
	}
	if t.Status != "" && t.Status != StatusPending && t.Status != StatusSuccess && t.Status != StatusFailed {
		return fmt.Errorf("status must be one of %q, %q, %q, got %q",
			StatusPending, StatusSuccess, StatusFailed, t.Status)
	}
	return nil
}
