package domain

import "encoding/hex"

// IsValidPubKey returns whether the given string is a well formed
// hex-encoded 32-byte identity.
func IsValidPubKey(pubkey string) bool {
	buf, err := hex.DecodeString(pubkey)
	if err != nil {
		return false
	}
	return len(buf) == PubKeyLen
}

// IsZeroPubKey returns whether the given identity is the zero identity.
func IsZeroPubKey(pubkey string) bool {
	return pubkey == ZeroPubKey
}

// PubKeyBytes decodes an identity previously validated with
// IsValidPubKey, used to feed derivation seeds.
func PubKeyBytes(pubkey string) []byte {
	buf, _ := hex.DecodeString(pubkey)
	return buf
}
