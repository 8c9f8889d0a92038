package httpinterface

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type vaultHandler struct {
	svc      application.VaultService
	verifier ports.SignatureVerifier
}

func newVaultHandler(
	svc application.VaultService, verifier ports.SignatureVerifier,
) *vaultHandler {
	return &vaultHandler{svc: svc, verifier: verifier}
}

type initVaultPayload struct {
	TenantID string `json:"tenant_id"`
	Owner    string `json:"owner"`
	Asset    string `json:"asset"`
}

func (h *vaultHandler) initVault(w http.ResponseWriter, r *http.Request) {
	payload := initVaultPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.svc.InitVault(r.Context(), application.InitVaultReq{
		TenantID: payload.TenantID,
		Owner:    payload.Owner,
		Asset:    payload.Asset,
		Signers:  signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type depositPayload struct {
	TenantID string `json:"tenant_id"`
	Owner    string `json:"owner"`
	Asset    string `json:"asset"`
	Amount   uint64 `json:"amount"`
}

func (h *vaultHandler) deposit(w http.ResponseWriter, r *http.Request) {
	payload := depositPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.svc.Deposit(r.Context(), application.DepositReq{
		TenantID: payload.TenantID,
		Owner:    payload.Owner,
		Asset:    payload.Asset,
		Amount:   payload.Amount,
		Signers:  signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type withdrawPayload struct {
	TenantID  string `json:"tenant_id"`
	Owner     string `json:"owner"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	Recipient string `json:"recipient"`
}

func (h *vaultHandler) withdraw(w http.ResponseWriter, r *http.Request) {
	payload := withdrawPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.svc.Withdraw(r.Context(), application.WithdrawReq{
		TenantID:  payload.TenantID,
		Owner:     payload.Owner,
		Asset:     payload.Asset,
		Amount:    payload.Amount,
		Recipient: payload.Recipient,
		Signers:   signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type vaultStatusPayload struct {
	Owner string `json:"owner"`
	Asset string `json:"asset"`
}

func (h *vaultHandler) pauseVault(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.svc.PauseVault)
}

func (h *vaultHandler) resumeVault(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.svc.ResumeVault)
}

func (h *vaultHandler) closeVault(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.svc.CloseVault)
}

func (h *vaultHandler) changeStatus(
	w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, req application.VaultStatusReq) error,
) {
	payload := vaultStatusPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := transition(r.Context(), application.VaultStatusReq{
		Owner:   payload.Owner,
		Asset:   payload.Asset,
		Signers: signers,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *vaultHandler) getVault(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	info, err := h.svc.GetVault(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
