package application

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

// Topics published on the pubsub service.
const (
	TopicVaultInitialized   = "vault_initialized"
	TopicTokensDeposited    = "tokens_deposited"
	TopicTokensWithdrawn    = "tokens_withdrawn"
	TopicVaultStatusChanged = "vault_status_changed"
	TopicGuardianRotated    = "guardian_rotated"
	TopicTenantUpdated      = "tenant_updated"
)

// Signers is the set of identities whose signatures over the request
// were verified by the interface layer before reaching the application.
type Signers []string

// Contains returns whether the given identity signed the request.
func (s Signers) Contains(pubkey string) bool {
	for _, signer := range s {
		if signer == pubkey {
			return true
		}
	}
	return false
}

// VaultInitializedEvent is emitted once per vault creation.
type VaultInitializedEvent struct {
	ID           string `json:"id"`
	Wallet       string `json:"wallet"`
	Vault        string `json:"vault"`
	Asset        string `json:"asset"`
	TokenAccount string `json:"token_account"`
	Owner        string `json:"owner"`
	Guardian     string `json:"guardian"`
	Timestamp    string `json:"timestamp"`
}

// TokensDepositedEvent is emitted on every successful deposit.
type TokensDepositedEvent struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	Vault     string `json:"vault"`
	Asset     string `json:"asset"`
	Owner     string `json:"owner"`
	Amount    uint64 `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// TokensWithdrawnEvent is emitted on every successful withdrawal.
type TokensWithdrawnEvent struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	Vault     string `json:"vault"`
	Asset     string `json:"asset"`
	Owner     string `json:"owner"`
	Guardian  string `json:"guardian"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Fee       uint64 `json:"fee"`
	Timestamp string `json:"timestamp"`
}

// VaultStatusChangedEvent is emitted on pause, resume and close.
type VaultStatusChangedEvent struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	Vault     string `json:"vault"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GuardianRotatedEvent is emitted when a wallet's guardian is replaced.
type GuardianRotatedEvent struct {
	ID          string `json:"id"`
	Wallet      string `json:"wallet"`
	Owner       string `json:"owner"`
	OldGuardian string `json:"old_guardian"`
	NewGuardian string `json:"new_guardian"`
	Timestamp   string `json:"timestamp"`
}

// TenantUpdatedEvent is emitted on tenant creation and on admin updates.
type TenantUpdatedEvent struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenant_id"`
	Change    string `json:"change"`
	Timestamp string `json:"timestamp"`
}

// WalletInfo is the read model of a wallet record.
type WalletInfo struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	Guardian  string `json:"guardian"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	RotatedAt string `json:"rotated_at,omitempty"`
}

// VaultInfo is the read model of a vault record, including its current
// custodial balance.
type VaultInfo struct {
	Address        string `json:"address"`
	Wallet         string `json:"wallet"`
	Asset          string `json:"asset"`
	TokenAccount   string `json:"token_account"`
	Balance        uint64 `json:"balance"`
	TotalDeposited uint64 `json:"total_deposited"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	Status         string `json:"status"`
	IsPaused       bool   `json:"is_paused"`
	CreatedAt      string `json:"created_at"`
	LastActivity   string `json:"last_activity"`
}

// TenantInfo is the read model of a tenant policy record.
type TenantInfo struct {
	TenantID             string `json:"tenant_id"`
	Address              string `json:"address"`
	Treasury             string `json:"treasury"`
	Admin                string `json:"admin"`
	FeeBasisPoints       uint64 `json:"fee_basis_points"`
	IsActive             bool   `json:"is_active"`
	Version              uint8  `json:"version"`
	MaxDailyTransactions uint16 `json:"max_daily_transactions"`
	MaxTransactionAmount uint64 `json:"max_transaction_amount"`
	MinTransactionAmount uint64 `json:"min_transaction_amount"`
	AssetPolicy          string `json:"asset_policy"`
}

// TransferInfo reports the outcome of a deposit or withdrawal.
type TransferInfo struct {
	Vault     string `json:"vault"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	Fee       uint64 `json:"fee,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

func walletStatusString(status domain.WalletStatus) string {
	if status == domain.WalletStatusClosed {
		return "closed"
	}
	return "active"
}

func vaultStatusString(status domain.VaultStatus) string {
	switch status {
	case domain.VaultStatusPaused:
		return "paused"
	case domain.VaultStatusClosed:
		return "closed"
	default:
		return "active"
	}
}

func assetPolicyString(policy domain.AssetPolicy) string {
	switch policy {
	case domain.AssetPolicyAllowlist:
		return "allowlist"
	case domain.AssetPolicyBlockAll:
		return "block_all"
	default:
		return "allow_all"
	}
}

// AssetPolicyFromString parses the wire representation of an asset
// policy.
func AssetPolicyFromString(policy string) (domain.AssetPolicy, error) {
	switch policy {
	case "allow_all":
		return domain.AssetPolicyAllowAll, nil
	case "allowlist":
		return domain.AssetPolicyAllowlist, nil
	case "block_all":
		return domain.AssetPolicyBlockAll, nil
	default:
		return 0, domain.ErrInvalidAssetPolicy
	}
}

func newEventID() string {
	return uuid.New().String()
}

func eventTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

func serialize(event interface{}) string {
	buf, _ := json.Marshal(event)
	return string(buf)
}

func walletInfo(w *domain.Wallet) *WalletInfo {
	info := &WalletInfo{
		Address:   w.Address,
		Owner:     w.Owner,
		Guardian:  w.Guardian,
		Status:    walletStatusString(w.Status),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
	if !w.RotatedAt.IsZero() {
		info.RotatedAt = w.RotatedAt.Format(time.RFC3339)
	}
	return info
}

func vaultInfo(v *domain.Vault, balance uint64) *VaultInfo {
	return &VaultInfo{
		Address:        v.Address,
		Wallet:         v.WalletAddress,
		Asset:          v.Asset,
		TokenAccount:   v.TokenAccount,
		Balance:        balance,
		TotalDeposited: v.TotalDeposited,
		TotalWithdrawn: v.TotalWithdrawn,
		Status:         vaultStatusString(v.Status),
		IsPaused:       v.IsPaused,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
		LastActivity:   v.LastActivity.Format(time.RFC3339),
	}
}

func tenantInfo(t *domain.TenantConfig) *TenantInfo {
	return &TenantInfo{
		TenantID:             t.TenantID,
		Address:              t.Address,
		Treasury:             t.Treasury,
		Admin:                t.Admin,
		FeeBasisPoints:       t.FeeBasisPoints,
		IsActive:             t.IsActive,
		Version:              t.Version,
		MaxDailyTransactions: t.MaxDailyTransactions,
		MaxTransactionAmount: t.MaxTransactionAmount,
		MinTransactionAmount: t.MinTransactionAmount,
		AssetPolicy:          assetPolicyString(t.AssetPolicy),
	}
}
