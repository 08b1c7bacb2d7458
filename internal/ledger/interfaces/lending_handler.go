package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

type LendingServiceInterface interface {
	CreateLending(ctx context.Context, userID string, date time.Time, amount domain.Money, fromAccountID, note string) (*domain.Lending, error)
	SettleLending(ctx context.Context, userID, lendingID string, amount domain.Money) (*domain.Lending, error)
	GetUserLendings(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.Lending, error)
	GetOutstandingTotal(ctx context.Context, userID string) (domain.Money, error)
}

type LendingHandler struct {
	service      LendingServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewLendingHandler(
	service LendingServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *LendingHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &LendingHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *LendingHandler) GetLendings(w http.ResponseWriter, r *http.Request) {
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

	lendings, err := h.service.GetUserLendings(r.Context(), userID, startDate, endDate)
	if err != nil {
		log.Printf("Error listing lendings: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve lendings")
		return
	}

	outstanding, err := h.service.GetOutstandingTotal(r.Context(), userID)
	if err != nil {
		log.Printf("Error computing outstanding total: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve lendings")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"lendings":          lendings,
		"total_outstanding": outstanding,
	})
}

func (h *LendingHandler) CreateLending(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Date          string       `json:"date"`
		Amount        domain.Money `json:"amount"`
		FromAccountID string       `json:"from_account_id"`
		Note          string       `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	lending, err := h.service.CreateLending(r.Context(), userID, date, req.Amount, req.FromAccountID, req.Note)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error creating lending: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create lending")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Lending successfully created.",
		"data":    lending,
	})
}

func (h *LendingHandler) SettleLending(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	lendingID := r.PathValue("lendingID")

	var req struct {
		Amount domain.Money `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lending, err := h.service.SettleLending(r.Context(), userID, lendingID, req.Amount)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error settling lending: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to settle lending")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Lending successfully settled.",
		"data":    lending,
	})
}
