package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	ledgerErrors "github.com/rkhatri/LedgerManager/internal/ledger/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}

	respondJSON(w, status, payload)
}

// ledgerErrorStatus maps the ledger's typed errors onto HTTP statuses.
// The second return is false for unexpected errors, which handlers report
// as 500 with a generic message instead of the raw error text.
func ledgerErrorStatus(err error) (int, bool) {
	switch {
	case ledgerErrors.IsValidationError(err),
		errors.Is(err, ledgerErrors.ErrSameAccount):
		return http.StatusBadRequest, true
	case errors.Is(err, ledgerErrors.ErrInvalidAccount),
		errors.Is(err, ledgerErrors.ErrInvalidCategory),
		errors.Is(err, ledgerErrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ledgerErrors.ErrInsufficientFunds),
		errors.Is(err, ledgerErrors.ErrOverSettlement),
		errors.Is(err, ledgerErrors.ErrAlreadySettled):
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

func requestUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	return userID, ok && userID != ""
}

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD value. Empty input yields the zero time,
// which repositories treat as an unbounded side of the range.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
