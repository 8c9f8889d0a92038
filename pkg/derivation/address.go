// Package derivation computes deterministic, non-signing account
// addresses from a namespace tag and an ordered tuple of identity seeds.
// Anyone knowing the inputs can recompute an address, nobody can sign
// with it: candidates that decode to valid ed25519 public keys are
// skipped by decrementing a disambiguating bump byte.
package derivation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"filippo.io/edwards25519"
)

const (
	// WalletNamespace derives the primary wallet address from the owner identity.
	WalletNamespace = "wallet"
	// VaultNamespace derives a vault address from (wallet, asset).
	VaultNamespace = "vault"
	// TokenAccountNamespace derives the custodial token account of a vault.
	TokenAccountNamespace = "token-account"
	// TenantNamespace derives a tenant config address from the tenant id.
	TenantNamespace = "tenant"

	domainTag = "custodia/derived-address/v1"

	addressLen = 32
)

// ErrExhausted is returned when no bump in [0, 255] yields an off-curve
// address. The probability is negligible, callers treat it as fatal.
var ErrExhausted = errors.New("derivation space exhausted for the given seeds")

// Derive returns the hex-encoded address and the bump used for the given
// namespace and seeds. It is a pure function: same inputs always yield
// the same output.
func Derive(namespace string, seeds ...[]byte) (string, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		candidate := deriveWithBump(namespace, seeds, uint8(bump))
		if isOffCurve(candidate) {
			return hex.EncodeToString(candidate), uint8(bump), nil
		}
	}
	return "", 0, ErrExhausted
}

// DeriveWithBump recomputes the address for a known bump, used to verify
// a claimed (address, bump) pair against its derivation inputs.
func DeriveWithBump(namespace string, bump uint8, seeds ...[]byte) (string, error) {
	candidate := deriveWithBump(namespace, seeds, bump)
	if !isOffCurve(candidate) {
		return "", errors.New("bump yields a valid signing key")
	}
	return hex.EncodeToString(candidate), nil
}

// IsValidAddress returns whether the given string is a well formed
// hex-encoded 32-byte address.
func IsValidAddress(addr string) bool {
	buf, err := hex.DecodeString(addr)
	if err != nil {
		return false
	}
	return len(buf) == addressLen
}

func deriveWithBump(namespace string, seeds [][]byte, bump uint8) []byte {
	h := sha256.New()
	h.Write([]byte(domainTag))
	h.Write([]byte(namespace))
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{bump})
	return h.Sum(nil)
}

func isOffCurve(candidate []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(candidate)
	return err != nil
}
