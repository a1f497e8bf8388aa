package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader is the request header carrying the queue's payload
// signature, as comma-separated scheme=value pairs.
const SignatureHeader = "Upstash-Signature"

// Signature verification errors
var (
	// ErrMissingSignature indicates the signature header was absent.
	ErrMissingSignature = errors.New("missing signature header")

	// ErrMalformedSignature indicates the header carried no usable v1 entry.
	ErrMalformedSignature = errors.New("malformed signature header")

	// ErrSignatureMismatch indicates no provided signature matched either key.
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// SignatureVerifier checks webhook payload signatures against the two
// rotating signing keys. Both the current and the next key are accepted
// simultaneously, so keys can rotate with zero downtime: deliveries
// signed with the outgoing key keep verifying while new ones arrive
// under the incoming key.
type SignatureVerifier struct {
	currentKey []byte
	nextKey    []byte
}

// NewSignatureVerifier creates a verifier for the given key pair.
func NewSignatureVerifier(currentKey, nextKey string) *SignatureVerifier {
	return &SignatureVerifier{
		currentKey: []byte(currentKey),
		nextKey:    []byte(nextKey),
	}
}

// Verify checks the signature header against the raw request body.
//
// The header is a comma-separated list of key=value pairs; every v1
// entry is a candidate hex-encoded HMAC-SHA256 of the body. The check
// passes if any candidate matches the digest under either signing key.
// Entries with other keys (timestamps, future schemes) are ignored.
func (v *SignatureVerifier) Verify(header string, body []byte) error {
	if header == "" {
		return ErrMissingSignature
	}

	candidates := parseSignatureHeader(header)
	if len(candidates) == 0 {
		return ErrMalformedSignature
	}

	expected := [2]string{
		computeSignature(v.currentKey, body),
		computeSignature(v.nextKey, body),
	}

	for _, candidate := range candidates {
		for _, want := range expected {
			// hmac.Equal keeps the comparison constant-time.
			if hmac.Equal([]byte(candidate), []byte(want)) {
				return nil
			}
		}
	}

	return ErrSignatureMismatch
}

// Sign computes the v1 signature of body under the current key.
// Used by tests and tooling to produce valid headers.
func (v *SignatureVerifier) Sign(body []byte) string {
	return "v1=" + computeSignature(v.currentKey, body)
}

// parseSignatureHeader extracts all v1 values from a comma-separated
// key=value header. Pairs that don't split cleanly are skipped.
func parseSignatureHeader(header string) []string {
	var candidates []string
	for _, pair := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || strings.TrimSpace(value) == "" {
			continue
		}
		if strings.TrimSpace(key) == "v1" {
			candidates = append(candidates, strings.TrimSpace(value))
		}
	}
	return candidates
}

func computeSignature(key, body []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
