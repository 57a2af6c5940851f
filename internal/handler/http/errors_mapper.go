package http

import (
	"errors"
	"net/http"

	"github.com/altech-app/cloudsync/internal/service"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownDocumentKind:        http.StatusBadRequest,
	service.ErrValidationNoQuotesProvided: http.StatusBadRequest,
	service.ErrValidationEmptyQuoteID:     http.StatusBadRequest,
	service.ErrValidationNoDeviceID:       http.StatusBadRequest,
	service.ErrValidationNoAccountID:      http.StatusBadRequest,

	validators.ErrUnknownDocumentKind: http.StatusBadRequest,
	validators.ErrEmptyPayload:        http.StatusBadRequest,
	validators.ErrEmptyDeviceID:       http.StatusBadRequest,
	validators.ErrEmptyQuotes:         http.StatusBadRequest,
	validators.ErrEmptyQuoteID:        http.StatusBadRequest,
	validators.ErrLengthMismatch:      http.StatusBadRequest,

	store.ErrDocumentNotFound: http.StatusNotFound,
	store.ErrQuoteNotFound:    http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
