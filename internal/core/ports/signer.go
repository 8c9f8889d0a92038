package ports

import "errors"

// ErrInvalidSignature is returned by Verify when the signature does not
// match the claimed identity.
var ErrInvalidSignature = errors.New("invalid signature for claimed identity")

// SignatureVerifier checks that a signature over a message was produced
// by the claimed identity. The daemon never inspects how the co-signer
// (ie. the guardian service) decided to sign, it only asserts that the
// signature is valid and bound to the expected identity.
type SignatureVerifier interface {
	Verify(pubkey string, message, signature []byte) error
}
