package httpinterface

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type walletHandler struct {
	walletSvc application.WalletService
	vaultSvc  application.VaultService
	verifier  ports.SignatureVerifier
}

func newWalletHandler(
	walletSvc application.WalletService,
	vaultSvc application.VaultService,
	verifier ports.SignatureVerifier,
) *walletHandler {
	return &walletHandler{
		walletSvc: walletSvc,
		vaultSvc:  vaultSvc,
		verifier:  verifier,
	}
}

type createWalletPayload struct {
	Owner    string `json:"owner"`
	Guardian string `json:"guardian"`
}

func (h *walletHandler) createWallet(w http.ResponseWriter, r *http.Request) {
	payload := createWalletPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.walletSvc.CreateWallet(r.Context(), application.CreateWalletReq{
		Owner:    payload.Owner,
		Guardian: payload.Guardian,
		Signers:  signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type rotateGuardianPayload struct {
	Owner       string `json:"owner"`
	NewGuardian string `json:"new_guardian"`
}

func (h *walletHandler) rotateGuardian(w http.ResponseWriter, r *http.Request) {
	payload := rotateGuardianPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.walletSvc.RotateGuardian(r.Context(), application.RotateGuardianReq{
		Owner:       payload.Owner,
		NewGuardian: payload.NewGuardian,
		Signers:     signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type closeWalletPayload struct {
	Owner string `json:"owner"`
}

func (h *walletHandler) closeWallet(w http.ResponseWriter, r *http.Request) {
	payload := closeWalletPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.walletSvc.CloseWallet(r.Context(), application.CloseWalletReq{
		Owner:   payload.Owner,
		Signers: signers,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *walletHandler) getWallet(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	info, err := h.walletSvc.GetWallet(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *walletHandler) listWalletVaults(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	infos, err := h.vaultSvc.ListVaultsForWallet(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}
