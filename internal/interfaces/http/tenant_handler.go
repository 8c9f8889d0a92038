package httpinterface

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type tenantHandler struct {
	svc      application.TenantService
	verifier ports.SignatureVerifier
}

func newTenantHandler(
	svc application.TenantService, verifier ports.SignatureVerifier,
) *tenantHandler {
	return &tenantHandler{svc: svc, verifier: verifier}
}

type initTenantPayload struct {
	TenantID       string `json:"tenant_id"`
	Treasury       string `json:"treasury"`
	Admin          string `json:"admin"`
	FeeBasisPoints uint64 `json:"fee_basis_points"`
}

func (h *tenantHandler) initTenant(w http.ResponseWriter, r *http.Request) {
	payload := initTenantPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	info, err := h.svc.InitTenant(r.Context(), application.InitTenantReq{
		TenantID:       payload.TenantID,
		Treasury:       payload.Treasury,
		Admin:          payload.Admin,
		FeeBasisPoints: payload.FeeBasisPoints,
		Signers:        signers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type updateTreasuryPayload struct {
	TenantID    string `json:"tenant_id"`
	NewTreasury string `json:"new_treasury"`
}

func (h *tenantHandler) updateTreasury(w http.ResponseWriter, r *http.Request) {
	payload := updateTreasuryPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.UpdateTreasury(r.Context(), application.UpdateTreasuryReq{
		TenantID:    payload.TenantID,
		NewTreasury: payload.NewTreasury,
		Signers:     signers,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type updateFeeRatePayload struct {
	TenantID          string `json:"tenant_id"`
	NewFeeBasisPoints uint64 `json:"new_fee_basis_points"`
}

func (h *tenantHandler) updateFeeRate(w http.ResponseWriter, r *http.Request) {
	payload := updateFeeRatePayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.UpdateFeeRate(r.Context(), application.UpdateFeeRateReq{
		TenantID:          payload.TenantID,
		NewFeeBasisPoints: payload.NewFeeBasisPoints,
		Signers:           signers,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type updateAssetPolicyPayload struct {
	TenantID  string `json:"tenant_id"`
	NewPolicy string `json:"new_policy"`
}

func (h *tenantHandler) updateAssetPolicy(w http.ResponseWriter, r *http.Request) {
	payload := updateAssetPolicyPayload{}
	signers, err := decodeSignedRequest(r, h.verifier, &payload)
	if err != nil {
		writeError(w, err)
		return
	}

	policy, err := application.AssetPolicyFromString(payload.NewPolicy)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.UpdateAssetPolicy(r.Context(), application.UpdateAssetPolicyReq{
		TenantID:  payload.TenantID,
		NewPolicy: policy,
		Signers:   signers,
	}); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *tenantHandler) getTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["id"]

	info, err := h.svc.GetTenant(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *tenantHandler) listTenants(w http.ResponseWriter, r *http.Request) {
	infos, err := h.svc.ListTenants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}
