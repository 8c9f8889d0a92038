package domain

import (
	"time"

	"github.com/custodia-network/custodia-daemon/pkg/derivation"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
)

// Vault is the custodial record for a (wallet, asset) pair. The vault's
// own derived address is the only authority over its custodial token
// account; cumulative counters only move through checked addition.
type Vault struct {
	Address        string
	Bump           uint8
	WalletAddress  string
	Asset          string
	TokenAccount   string
	CreatedAt      time.Time
	TotalDeposited uint64
	TotalWithdrawn uint64
	LastActivity   time.Time
	Status         VaultStatus
	IsPaused       bool
}

// NewVault derives the vault address and its custodial token account
// from the owning wallet and the asset.
func NewVault(walletAddress, asset string) (*Vault, error) {
	if !derivation.IsValidAddress(walletAddress) {
		return nil, ErrInvalidPubKey
	}
	if !IsValidPubKey(asset) {
		return nil, ErrInvalidPubKey
	}

	address, bump, err := derivation.Derive(
		derivation.VaultNamespace,
		PubKeyBytes(walletAddress), PubKeyBytes(asset),
	)
	if err != nil {
		return nil, err
	}
	tokenAccount, _, err := derivation.Derive(
		derivation.TokenAccountNamespace,
		PubKeyBytes(address), PubKeyBytes(asset),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Vault{
		Address:       address,
		Bump:          bump,
		WalletAddress: walletAddress,
		Asset:         asset,
		TokenAccount:  tokenAccount,
		CreatedAt:     now,
		LastActivity:  now,
		Status:        VaultStatusActive,
	}, nil
}

// IsNative returns whether this is the wallet's native vault.
func (v *Vault) IsNative() bool {
	return v.Asset == NativeAsset
}

// CanTransact returns nil only if the vault accepts fund movements.
func (v *Vault) CanTransact() error {
	if v.Status != VaultStatusActive || v.IsPaused {
		return ErrVaultNotActive
	}
	return nil
}

// RecordDeposit increments the cumulative deposited counter. Overflow is
// a fatal, surfaced error, never a wrap.
func (v *Vault) RecordDeposit(amount uint64) error {
	total, err := mathutil.CheckedAdd(v.TotalDeposited, amount)
	if err != nil {
		return ErrCounterOverflow
	}
	v.TotalDeposited = total
	v.LastActivity = time.Now()
	return nil
}

// RecordWithdrawal increments the cumulative withdrawn counter.
func (v *Vault) RecordWithdrawal(amount uint64) error {
	total, err := mathutil.CheckedAdd(v.TotalWithdrawn, amount)
	if err != nil {
		return ErrCounterOverflow
	}
	v.TotalWithdrawn = total
	v.LastActivity = time.Now()
	return nil
}

// Pause suspends fund movements until Resume.
func (v *Vault) Pause() error {
	if v.Status == VaultStatusClosed {
		return ErrVaultClosed
	}
	v.Status = VaultStatusPaused
	v.IsPaused = true
	v.LastActivity = time.Now()
	return nil
}

// Resume reverts a pause.
func (v *Vault) Resume() error {
	if v.Status == VaultStatusClosed {
		return ErrVaultClosed
	}
	if v.Status != VaultStatusPaused {
		return ErrVaultNotPaused
	}
	v.Status = VaultStatusActive
	v.IsPaused = false
	v.LastActivity = time.Now()
	return nil
}

// Close marks the vault closed, a terminal transition. The record is
// never deleted.
func (v *Vault) Close() error {
	if v.Status == VaultStatusClosed {
		return ErrVaultClosed
	}
	v.Status = VaultStatusClosed
	v.IsPaused = false
	v.LastActivity = time.Now()
	return nil
}
