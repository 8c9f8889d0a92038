package ed25519verifier

import (
	"crypto/ed25519"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

type verifier struct{}

// NewVerifier returns a ports.SignatureVerifier that treats identities
// as hex encoded ed25519 public keys.
func NewVerifier() ports.SignatureVerifier {
	return verifier{}
}

func (v verifier) Verify(pubkey string, message, signature []byte) error {
	if !domain.IsValidPubKey(pubkey) {
		return domain.ErrInvalidPubKey
	}
	rawKey := domain.PubKeyBytes(pubkey)
	if len(signature) != ed25519.SignatureSize {
		return ports.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(rawKey), message, signature) {
		return ports.ErrInvalidSignature
	}
	return nil
}
