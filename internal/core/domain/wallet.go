package domain

import (
	"time"

	"github.com/custodia-network/custodia-daemon/pkg/derivation"
)

// Wallet is the primary record binding an owner identity to its guardian
// identity. It is the root of authority for every vault derived from it:
// guardian-gated operations must re-validate this binding at call time.
type Wallet struct {
	Address   string
	Bump      uint8
	Owner     string
	Guardian  string
	CreatedAt time.Time
	RotatedAt time.Time
	Status    WalletStatus
}

// NewWallet derives the wallet address from the owner identity and binds
// the guardian to it.
func NewWallet(owner, guardian string) (*Wallet, error) {
	if !IsValidPubKey(owner) || IsZeroPubKey(owner) {
		return nil, ErrInvalidPubKey
	}
	if !IsValidPubKey(guardian) || IsZeroPubKey(guardian) {
		return nil, ErrInvalidPubKey
	}
	if owner == guardian {
		return nil, ErrGuardianCannotBeOwner
	}

	address, bump, err := derivation.Derive(
		derivation.WalletNamespace, PubKeyBytes(owner),
	)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Address:   address,
		Bump:      bump,
		Owner:     owner,
		Guardian:  guardian,
		CreatedAt: time.Now(),
		Status:    WalletStatusActive,
	}, nil
}

// IsActive returns whether the wallet can authorize operations.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}

// RotateGuardian replaces the guardian identity. The caller must have
// asserted both current owner and current guardian signatures before
// invoking this.
func (w *Wallet) RotateGuardian(newGuardian string) error {
	if !w.IsActive() {
		return ErrWalletClosed
	}
	if !IsValidPubKey(newGuardian) || IsZeroPubKey(newGuardian) {
		return ErrInvalidPubKey
	}
	if newGuardian == w.Owner {
		return ErrGuardianCannotBeOwner
	}

	w.Guardian = newGuardian
	w.RotatedAt = time.Now()
	return nil
}

// Close marks the wallet closed. The record is never deleted.
func (w *Wallet) Close() error {
	if !w.IsActive() {
		return ErrWalletClosed
	}
	w.Status = WalletStatusClosed
	return nil
}
