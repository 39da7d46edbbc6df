// Package api exposes the ledger operations over HTTP.
package api

import (
	"github.com/gorilla/mux"
)

// NewRouter builds the transaction routes. Paths with static segments are
// registered before the variable ones so stats-by-city and accounts/{city}
// are not captured by {accountId}.
func NewRouter(h *TransactionHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	r.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	r.HandleFunc("/transactions/", h.GetAllTransactions).Methods("GET")
	r.HandleFunc("/transactions/stats-by-city", h.GetCityStats).Methods("GET")
	r.HandleFunc("/transactions/accounts/{city}", h.GetTransactionsByCity).Methods("GET")
	r.HandleFunc("/transactions/{accountId}/balance", h.GetBalance).Methods("GET")
	r.HandleFunc("/transactions/{type}/{amount}", h.GetTransactionsByTypeMinAmount).Methods("GET")
	r.HandleFunc("/transactions/{accountId}", h.GetTransactionsByAccount).Methods("GET")
	r.HandleFunc("/transactions/{txnId}", h.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/transactions/{txnId}", h.DeleteTransaction).Methods("DELETE")

	return r
}
