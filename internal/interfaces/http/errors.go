package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type errorResponse struct {
	Error string `json:"error"`
}

var badRequestErrors = []error{
	domain.ErrInvalidPubKey,
	domain.ErrInvalidTenantID,
	domain.ErrInvalidFeeRate,
	domain.ErrInvalidTreasury,
	domain.ErrTreasuryCannotBeAdmin,
	domain.ErrGuardianCannotBeOwner,
	domain.ErrInvalidAssetPolicy,
	domain.ErrInvalidAmount,
	application.ErrInvalidRecipient,
	ErrMalformedRequest,
}

var forbiddenErrors = []error{
	application.ErrOwnerSignatureRequired,
	application.ErrGuardianSignatureRequired,
	application.ErrAuthoritySignatureRequired,
	application.ErrAdminSignatureRequired,
	application.ErrWalletMismatch,
	application.ErrOwnerMismatch,
	ports.ErrInvalidSignature,
}

var notFoundErrors = []error{
	domain.ErrWalletNotFound,
	domain.ErrTenantNotFound,
	domain.ErrVaultNotFound,
}

var conflictErrors = []error{
	domain.ErrWalletAlreadyExists,
	domain.ErrTenantAlreadyExists,
	domain.ErrVaultAlreadyExists,
}

var unprocessableErrors = []error{
	domain.ErrTenantNotActive,
	domain.ErrAssetNotAllowed,
	domain.ErrAmountTooSmall,
	domain.ErrAmountTooLarge,
	domain.ErrFeeExceedsAmount,
	domain.ErrFeeCalculationOverflow,
	domain.ErrCounterOverflow,
	domain.ErrWalletClosed,
	domain.ErrVaultNotActive,
	domain.ErrVaultNotPaused,
	domain.ErrVaultClosed,
	domain.ErrInsufficientFunds,
}

func statusForError(err error) int {
	for _, e := range badRequestErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	for _, e := range forbiddenErrors {
		if errors.Is(err, e) {
			return http.StatusForbidden
		}
	}
	for _, e := range notFoundErrors {
		if errors.Is(err, e) {
			return http.StatusNotFound
		}
	}
	for _, e := range conflictErrors {
		if errors.Is(err, e) {
			return http.StatusConflict
		}
	}
	for _, e := range unprocessableErrors {
		if errors.Is(err, e) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
