package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/api/middleware"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
	"github.com/marcinkowskimikolaj/assetly/internal/domain"
	"github.com/marcinkowskimikolaj/assetly/internal/fx"
	"github.com/marcinkowskimikolaj/assetly/internal/jobs"
	"github.com/marcinkowskimikolaj/assetly/internal/sheets"
)

// TransactionsHandler handles the expense and income endpoints.
type TransactionsHandler struct {
	repo      sheets.TransactionRepository
	rates     *fx.Rates
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(repo sheets.TransactionRepository, rates *fx.Rates, publisher jobs.Publisher, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, rates: rates, publisher: publisher, log: log}
}

// ListTransactions handles GET /api/transactions?from=YYYY-MM&to=YYYY-MM.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	txs, err := h.repo.ListTransactions(ctx, from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

type transactionInput struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	Category         string  `json:"category"`
	Subcategory      string  `json:"subcategory"`
	Source           string  `json:"source"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Fixed            bool    `json:"fixed"`
	InternalTransfer bool    `json:"internal_transfer"`
	Income           bool    `json:"income"`
	Note             string  `json:"note"`
}

// CreateTransactions handles POST /api/transactions. The body is either one
// transaction object or a list; base-currency amounts are frozen at insert
// time using the current rate table.
func (h *TransactionsHandler) CreateTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := decodeOneOrMany(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "At least one transaction is required")
		return
	}

	now := time.Now()
	txs := make([]domain.Transaction, 0, len(body))
	for _, in := range body {
		tx, errMsg := h.buildTransaction(in, now)
		if errMsg != "" {
			middleware.WriteError(w, http.StatusBadRequest, errMsg)
			return
		}
		txs = append(txs, tx)
	}

	if err := h.repo.AppendTransactions(ctx, txs); err != nil {
		h.log.Error().Err(err).Msg("Failed to append transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save transactions")
		return
	}

	h.enqueueRebuild(r)

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// buildTransaction validates one input row and freezes its base amount.
func (h *TransactionsHandler) buildTransaction(in transactionInput, now time.Time) (domain.Transaction, string) {
	if in.Year < 2000 || in.Month < 1 || in.Month > 12 {
		return domain.Transaction{}, "Year and month are required"
	}
	if in.Amount <= 0 {
		return domain.Transaction{}, "Amount must be positive"
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = h.rates.Base()
	}
	amountBase, err := h.rates.Convert(in.Amount, currency)
	if err != nil {
		return domain.Transaction{}, "Unsupported currency: " + currency
	}

	tx := domain.Transaction{
		ID:         uuid.NewString(),
		Year:       in.Year,
		Month:      in.Month,
		Amount:     in.Amount,
		Currency:   currency,
		AmountBase: amountBase,
		Note:       in.Note,
		CreatedAt:  now,
		Income:     in.Income,
	}

	if in.Income {
		tx.Source = strings.TrimSpace(in.Source)
		if tx.Source == "" {
			tx.Source = "Inne przychody"
		}
		return tx, ""
	}

	category, ok := taxonomy.CanonicalCategory(in.Category)
	if !ok {
		return domain.Transaction{}, "Unknown category: " + in.Category
	}
	tx.Category = category
	if in.Subcategory != "" {
		sub, ok := taxonomy.CanonicalSubcategory(category, in.Subcategory)
		if !ok {
			return domain.Transaction{}, "Unknown subcategory: " + in.Subcategory
		}
		tx.Subcategory = sub
	}
	tx.Fixed = in.Fixed
	tx.InternalTransfer = in.InternalTransfer
	return tx, ""
}

// DeleteTransaction handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.repo.DeleteTransactionByID(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	h.enqueueRebuild(r)
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// DeleteMonth handles DELETE /api/transactions?year=2024&month=1.
func (h *TransactionsHandler) DeleteMonth(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		middleware.WriteError(w, http.StatusBadRequest, "Valid year and month are required")
		return
	}

	if err := h.repo.DeleteTransactionsByMonth(r.Context(), year, month); err != nil {
		h.log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to delete month")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transactions")
		return
	}

	h.enqueueRebuild(r)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
		"period": domain.Period(year, month),
	})
}

// enqueueRebuild schedules a cache rebuild after any write. Failure to
// enqueue is logged but does not fail the request; the data is already saved.
func (h *TransactionsHandler) enqueueRebuild(r *http.Request) {
	job := &jobs.RefreshJob{Kind: jobs.KindRebuildCache}
	if err := h.publisher.Publish(r.Context(), job); err != nil {
		h.log.Warn().Err(err).Msg("Failed to enqueue cache rebuild")
	}
}

// decodeOneOrMany accepts either a JSON object or a JSON array of objects.
func decodeOneOrMany(r *http.Request) ([]transactionInput, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var many []transactionInput
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	}
	var one transactionInput
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []transactionInput{one}, nil
}
