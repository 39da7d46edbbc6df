package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"training/finledger/appcontext"
	"training/finledger/ledger"
	"training/finledger/ledger/model"
)

// HealthCheckResponse represents health check endpoint response.
type HealthCheckResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TransactionHandler maps HTTP requests onto ledger operations.
type TransactionHandler struct {
	service *ledger.Service
	logger  *slog.Logger
}

// NewTransactionHandler initializes the handler with the ledger service.
func NewTransactionHandler(service *ledger.Service, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck handles the health check endpoint.
func (h *TransactionHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthCheckResponse{Status: "ok"})
}

// CreateTransaction handles POST /transactions.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)

	var txn model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.service.Record(ctx, txn)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stored)
}

// GetTransactionsByAccount handles GET /transactions/{accountId}.
func (h *TransactionHandler) GetTransactionsByAccount(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	accountID := mux.Vars(r)["accountId"]

	txns, err := h.service.ByAccount(ctx, accountID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, txns)
}

// GetAllTransactions handles GET /transactions/.
func (h *TransactionHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)

	txns, err := h.service.All(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, txns)
}

// GetBalance handles GET /transactions/{accountId}/balance. The body is the
// bare number.
func (h *TransactionHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	accountID := mux.Vars(r)["accountId"]

	balance, err := h.service.Balance(ctx, accountID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, balance)
}

// GetTransactionsByTypeMinAmount handles GET /transactions/{type}/{amount}.
func (h *TransactionHandler) GetTransactionsByTypeMinAmount(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	vars := mux.Vars(r)

	minAmount, err := strconv.ParseFloat(vars["amount"], 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	txns, err := h.service.ByTypeMinAmount(ctx, model.TxnType(vars["type"]), minAmount)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, txns)
}

// GetCityStats handles GET /transactions/stats-by-city.
func (h *TransactionHandler) GetCityStats(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)

	rows, err := h.service.CityStats(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, rows)
}

// GetTransactionsByCity handles GET /transactions/accounts/{city}.
func (h *TransactionHandler) GetTransactionsByCity(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	city := mux.Vars(r)["city"]

	txns, err := h.service.ByCity(ctx, city)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, txns)
}

// UpdateTransaction handles PUT /transactions/{txnId}. Only fields present
// in the payload are changed; absent fields keep their prior values.
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	txnID := mux.Vars(r)["txnId"]

	var req ledger.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(ctx, txnID, req)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/{txnId}.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := appcontext.WithLogger(r.Context(), h.logger)
	txnID := mux.Vars(r)["txnId"]

	if err := h.service.Delete(ctx, txnID); err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps ledger errors onto status codes. A NotFound miss is
// a legitimate outcome and is never logged as an error.
func (h *TransactionHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrDuplicateTxn):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInvalid):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(ctx, "Ledger operation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "persistence failure")
	}
}

func (h *TransactionHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message})
}

func (h *TransactionHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response body", "error", err)
	}
}
