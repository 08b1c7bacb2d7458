package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, userID, name string, initialBalance domain.Money, status string) (*domain.Account, error)
	GetUserAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID, name string, balance domain.Money, status string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID string) error
	TransferFunds(ctx context.Context, userID, sourceAccountID, destinationAccountID string, amount domain.Money) error
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AccountHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &AccountHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type accountRequest struct {
	AccountName string       `json:"account_name"`
	TotalMoney  domain.Money `json:"total_money"`
	Status      string       `json:"status"`
}

func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.service.GetUserAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve accounts")
		return
	}
	h.respondJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.CreateAccount(r.Context(), userID, req.AccountName, req.TotalMoney, req.Status)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error creating account: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully created.",
		"data":    account,
	})
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accountID := r.PathValue("accountID")

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), userID, accountID, req.AccountName, req.TotalMoney, req.Status)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error updating account: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update account")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully updated.",
		"data":    account,
	})
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accountID := r.PathValue("accountID")

	if err := h.service.DeleteAccount(r.Context(), userID, accountID); err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error deleting account: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account successfully deleted.",
	})
}

func (h *AccountHandler) TransferFunds(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		SourceAccountID      string       `json:"source_account_id"`
		DestinationAccountID string       `json:"destination_account_id"`
		Amount               domain.Money `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.TransferFunds(r.Context(), userID, req.SourceAccountID, req.DestinationAccountID, req.Amount)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error during transfer: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to transfer funds")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transfer completed.",
	})
}
