package interfaces

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/application"
	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

type SummaryServiceInterface interface {
	GetLedgerSummary(ctx context.Context, userID string, startDate, endDate time.Time) (map[int]application.LedgerSummary, error)
	GetTopExpenseCategories(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.CategorySummary, error)
}

type SummaryHandler struct {
	service      SummaryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSummaryHandler(
	service SummaryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SummaryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &SummaryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetSummary serves the dashboard: monthly income/expense totals plus the
// top expense categories over the requested range. The range defaults to
// the current calendar year.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	startDate, err := parseDate(query.Get("start_date"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(query.Get("end_date"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	now := time.Now().UTC()
	if startDate.IsZero() {
		startDate = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if endDate.IsZero() {
		endDate = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	summary, err := h.service.GetLedgerSummary(r.Context(), userID, startDate, endDate)
	if err != nil {
		log.Printf("Error building ledger summary: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve summary")
		return
	}

	topExpenses, err := h.service.GetTopExpenseCategories(r.Context(), userID, startDate, endDate)
	if err != nil {
		log.Printf("Error building top expense categories: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve summary")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"summary":      summary,
		"top_expenses": topExpenses,
		"start_date":   startDate.Format(dateLayout),
		"end_date":     endDate.Format(dateLayout),
	})
}
