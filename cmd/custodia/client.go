package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
)

var signWithFlag = cli.StringSliceFlag{
	Name: "signwith",
	Usage: "hex encoded 32-byte ed25519 seed used to sign the request, " +
		"repeat the flag for co-signed operations",
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

type signaturePart struct {
	PubKey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// signedEnvelope signs the payload with every seed passed via the
// signwith flags and wraps it the way the daemon expects it.
func signedEnvelope(ctx *cli.Context, payload interface{}) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	seeds := ctx.StringSlice("signwith")
	signatures := make([]signaturePart, 0, len(seeds))
	for _, seedHex := range seeds {
		seed, err := hex.DecodeString(seedHex)
		if err != nil || len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("signwith must be a hex encoded 32-byte seed")
		}
		key := ed25519.NewKeyFromSeed(seed)
		signatures = append(signatures, signaturePart{
			PubKey:    hex.EncodeToString(key.Public().(ed25519.PublicKey)),
			Signature: hex.EncodeToString(ed25519.Sign(key, rawPayload)),
		})
	}

	return json.Marshal(map[string]interface{}{
		"payload":    json.RawMessage(rawPayload),
		"signatures": signatures,
	})
}

func doRequest(method, path string, body []byte) ([]byte, error) {
	daemonURL, err := getDaemonURL()
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, daemonURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("daemon returned %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func doSignedRequest(
	ctx *cli.Context, method, path string, payload interface{},
) ([]byte, error) {
	body, err := signedEnvelope(ctx, payload)
	if err != nil {
		return nil, err
	}
	return doRequest(method, path, body)
}
