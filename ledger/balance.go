package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"training/finledger/ledger/model"
)

// SumBalance computes the signed net balance over a set of transactions:
// credits add, debits subtract. The running sum is carried in decimal and
// converted to float64 once at the end.
func SumBalance(txns []model.Transaction) float64 {
	total := decimal.Zero
	for _, txn := range txns {
		amount := decimal.NewFromFloat(txn.Amount)
		if txn.Type == model.TypeCredit {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}
	return total.InexactFloat64()
}

// Balance returns the net balance for one account. An account with no
// transactions has a balance of 0.
func (s *Service) Balance(ctx context.Context, accountID string) (float64, error) {
	txns, err := s.repo.FindByAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return SumBalance(txns), nil
}
