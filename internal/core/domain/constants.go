package domain

import "strings"

const (
	// PubKeyLen is the byte length of every identity in the system.
	PubKeyLen = 32

	// NativeAsset identifies the chain's native asset, used by the
	// single native vault every wallet can open.
	NativeAsset = "0000000000000000000000000000000000000000000000000000000000000001"
)

// ZeroPubKey is the all-zero identity, never a valid signer.
var ZeroPubKey = strings.Repeat("0", 2*PubKeyLen)

// WalletStatus represents the lifecycle state of a wallet record.
type WalletStatus int

const (
	WalletStatusActive WalletStatus = iota
	WalletStatusClosed
)

// VaultStatus represents the lifecycle state of a vault record.
// Active -> Paused is reversible, Closed is terminal.
type VaultStatus int

const (
	VaultStatusActive VaultStatus = iota
	VaultStatusPaused
	VaultStatusClosed
)

// AssetPolicy is the tenant-level rule governing which assets may be
// vaulted under that tenant.
type AssetPolicy int

const (
	// AssetPolicyAllowAll allows any asset.
	AssetPolicyAllowAll AssetPolicy = iota
	// AssetPolicyAllowlist only allows explicitly listed assets. There is
	// no backing allowlist storage yet, so this policy rejects every
	// asset for now.
	AssetPolicyAllowlist
	// AssetPolicyBlockAll blocks any asset.
	AssetPolicyBlockAll
)

func (p AssetPolicy) IsValid() bool {
	return p >= AssetPolicyAllowAll && p <= AssetPolicyBlockAll
}
