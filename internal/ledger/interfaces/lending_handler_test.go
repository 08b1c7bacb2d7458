package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetLendings_IncludesOutstandingTotal(t *testing.T) {
	mockService := &MockLendingService{
		lendings: []domain.Lending{
			{ID: "l1", Amount: 20000, SettledAmount: 5000, Status: domain.LendingStatusNotSettled,
				Date: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)},
		},
		outstanding: 15000,
	}
	handler := NewLendingHandler(mockService, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/lendings", "")
	w := httptest.NewRecorder()
	handler.GetLendings(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Lendings         []domain.Lending `json:"lendings"`
		TotalOutstanding domain.Money     `json:"total_outstanding"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Lendings, 1)
	assert.Equal(t, domain.Money(15000), response.TotalOutstanding)
}

func TestGetLendings_InvalidDateFilter(t *testing.T) {
	handler := NewLendingHandler(&MockLendingService{}, respondJSON, respondError)

	req := authedRequest(http.MethodGet, "/api/lendings?start_date=02-04-2025", "")
	w := httptest.NewRecorder()
	handler.GetLendings(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateLending_Success(t *testing.T) {
	handler := NewLendingHandler(&MockLendingService{}, respondJSON, respondError)

	req := authedRequest(http.MethodPost, "/api/lendings",
		`{"date":"2025-04-02","amount":200,"from_account_id":"a1","note":"loan to Sam"}`)
	w := httptest.NewRecorder()
	handler.CreateLending(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Data domain.Lending `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, domain.Money(20000), response.Data.Amount)
	assert.Equal(t, domain.LendingStatusNotSettled, response.Data.Status)
}

func TestSettleLending_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ledgerErrors.ErrNotFound, http.StatusNotFound},
		{ledgerErrors.ErrOverSettlement, http.StatusConflict},
		{ledgerErrors.ErrAlreadySettled, http.StatusConflict},
		{ledgerErrors.NewValidationError("Amount must be greater than zero"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		handler := NewLendingHandler(&MockLendingService{err: tc.err}, respondJSON, respondError)
		req := authedRequest(http.MethodPost, "/api/lendings/l1/settle", `{"amount":40}`)
		w := httptest.NewRecorder()
		handler.SettleLending(w, req)

		assert.Equal(t, tc.status, w.Result().StatusCode, "unexpected status for %v", tc.err)
	}
}

func TestSettleLending_Unauthorized(t *testing.T) {
	handler := NewLendingHandler(&MockLendingService{}, respondJSON, respondError)
	req := httptest.NewRequest(http.MethodPost, "/api/lendings/l1/settle", nil)
	w := httptest.NewRecorder()
	handler.SettleLending(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
