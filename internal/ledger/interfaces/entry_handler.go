package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

type EntryServiceInterface interface {
	PostExpense(ctx context.Context, userID, accountID, categoryID string, amount domain.Money, date time.Time, note string) (*domain.Entry, error)
	PostIncome(ctx context.Context, userID, accountID, categoryID string, amount domain.Money, date time.Time, note string) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
	GetUserEntries(ctx context.Context, userID, entryType string, startDate, endDate time.Time) ([]domain.Entry, error)
}

type EntryHandler struct {
	service      EntryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewEntryHandler(
	service EntryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *EntryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &EntryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *EntryHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.service.GetUserEntries(r.Context(), userID, query.Get("type"), startDate, endDate)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error listing entries: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve entries")
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		AccountID  string       `json:"account_id"`
		CategoryID string       `json:"category_id"`
		EntryType  string       `json:"entry_type"`
		Amount     domain.Money `json:"amount"`
		EntryDate  string       `json:"entry_date"`
		Note       string       `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDate(req.EntryDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid entry_date, expected YYYY-MM-DD")
		return
	}

	var entry *domain.Entry
	switch req.EntryType {
	case domain.EntryTypeExpense:
		entry, err = h.service.PostExpense(r.Context(), userID, req.AccountID, req.CategoryID, req.Amount, date, req.Note)
	case domain.EntryTypeIncome:
		entry, err = h.service.PostIncome(r.Context(), userID, req.AccountID, req.CategoryID, req.Amount, date, req.Note)
	default:
		h.respondError(w, http.StatusBadRequest, "Entry type must be 'income' or 'expense'")
		return
	}
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error creating entry: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Entry successfully created.",
		"data":    entry,
	})
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	entryID := r.PathValue("entryID")

	if err := h.service.DeleteEntry(r.Context(), userID, entryID); err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error deleting entry: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Entry successfully deleted.",
	})
}
