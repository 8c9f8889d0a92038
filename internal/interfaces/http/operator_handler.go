package httpinterface

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

// version is overridden at build time through ldflags.
var version = "dev"

// Minter is the optional funding facility of a ledger, exposed on local
// runs through the faucet endpoint.
type Minter interface {
	Mint(ctx context.Context, owner, asset string, amount uint64) error
}

type operatorHandler struct {
	pubsub    ports.SecurePubSub
	statsSvc  application.StatsService
	minter    Minter
	startedAt time.Time
}

func newOperatorHandler(
	pubsub ports.SecurePubSub,
	statsSvc application.StatsService,
	minter Minter,
) *operatorHandler {
	return &operatorHandler{
		pubsub:    pubsub,
		statsSvc:  statsSvc,
		minter:    minter,
		startedAt: time.Now(),
	}
}

type addWebhookRequest struct {
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type addWebhookResponse struct {
	ID string `json:"id"`
}

func (h *operatorHandler) addWebhook(w http.ResponseWriter, r *http.Request) {
	req := addWebhookRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request must be a JSON webhook subscription")
		return
	}

	id, err := h.pubsub.Subscribe(req.Topic, req.Endpoint, req.Secret)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, addWebhookResponse{ID: id})
}

func (h *operatorHandler) removeWebhook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	topic := r.URL.Query().Get("topic")

	if err := h.pubsub.Unsubscribe(topic, id); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type webhookInfo struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secured  bool   `json:"secured"`
}

func (h *operatorHandler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	subs := h.pubsub.ListSubscriptionsForTopic(topic)
	hooks := make([]webhookInfo, 0, len(subs))
	for _, sub := range subs {
		hooks = append(hooks, webhookInfo{
			ID:       sub.Id(),
			Topic:    sub.Topic(),
			Endpoint: sub.NotifyAt(),
			Secured:  sub.IsSecured(),
		})
	}
	writeJSON(w, http.StatusOK, hooks)
}

type infoResponse struct {
	Version       string `json:"version"`
	StartedAt     string `json:"started_at"`
	FaucetEnabled bool   `json:"faucet_enabled"`
}

func (h *operatorHandler) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Version:       version,
		StartedAt:     h.startedAt.Format(time.RFC3339),
		FaucetEnabled: h.minter != nil,
	})
}

func (h *operatorHandler) getStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.statsSvc.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type faucetRequest struct {
	Account string `json:"account"`
	Asset   string `json:"asset"`
	Amount  uint64 `json:"amount"`
}

func (h *operatorHandler) faucet(w http.ResponseWriter, r *http.Request) {
	if h.minter == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "faucet is disabled"})
		return
	}

	req := faucetRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "request must be a JSON funding request")
		return
	}
	if req.Amount == 0 {
		writeBadRequest(w, "amount must be positive")
		return
	}

	if err := h.minter.Mint(r.Context(), req.Account, req.Asset, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
