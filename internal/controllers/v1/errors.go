package v1

import (
	"errors"
	"net/http"

	"github.com/violet-vault/backend/internal/bills"
	"github.com/violet-vault/backend/internal/models"
)

type httpError struct {
	Error string `json:"error"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, bills.ErrBillNotFound) || errors.Is(err, bills.ErrEnvelopeNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errSplitsInvalid   = errors.New("the splits are not valid")
	errPaycheckInvalid = errors.New("the paycheck is not valid")
)
