package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, userID, name, categoryType, status string) (*domain.Category, error)
	GetUserCategories(ctx context.Context, userID, categoryType string, activeOnly bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID, name, categoryType, status string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoryHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type categoryRequest struct {
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	Status       string `json:"status"`
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categoryType := r.URL.Query().Get("type")
	if categoryType != "" && categoryType != domain.CategoryTypeIncome && categoryType != domain.CategoryTypeExpense {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	categories, err := h.service.GetUserCategories(r.Context(), userID, categoryType, activeOnly)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), userID, req.CategoryName, req.CategoryType, req.Status)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error creating category: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID := r.PathValue("categoryID")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), userID, categoryID, req.CategoryName, req.CategoryType, req.Status)
	if err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error updating category: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully updated.",
		"data":    category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID := r.PathValue("categoryID")

	if err := h.service.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		if status, known := ledgerErrorStatus(err); known {
			h.respondError(w, status, err.Error())
			return
		}
		log.Printf("Error deleting category: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}
