package httpinterface

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/custodia-network/custodia-daemon/internal/core/application"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
)

// ErrMalformedRequest is returned when the signed envelope cannot be
// decoded.
var ErrMalformedRequest = errors.New(
	"request must be a JSON envelope with payload and signatures",
)

type requestSignature struct {
	PubKey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// signedRequest is the envelope of every mutating request. Signatures
// are computed over the exact bytes of the payload field, so the
// payload is kept raw until the signers are verified.
type signedRequest struct {
	Payload    json.RawMessage    `json:"payload"`
	Signatures []requestSignature `json:"signatures"`
}

// decodeSignedRequest verifies every attached signature against the raw
// payload bytes and returns the set of verified signers along with the
// payload decoded into dest.
func decodeSignedRequest(
	r *http.Request, verifier ports.SignatureVerifier, dest interface{},
) (application.Signers, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, ErrMalformedRequest
	}

	envelope := signedRequest{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ErrMalformedRequest
	}
	if len(envelope.Payload) == 0 {
		return nil, ErrMalformedRequest
	}

	signers := make(application.Signers, 0, len(envelope.Signatures))
	for _, sig := range envelope.Signatures {
		rawSig, err := hex.DecodeString(sig.Signature)
		if err != nil {
			return nil, ports.ErrInvalidSignature
		}
		if err := verifier.Verify(sig.PubKey, envelope.Payload, rawSig); err != nil {
			return nil, err
		}
		signers = append(signers, sig.PubKey)
	}

	if err := json.Unmarshal(envelope.Payload, dest); err != nil {
		return nil, ErrMalformedRequest
	}
	return signers, nil
}
