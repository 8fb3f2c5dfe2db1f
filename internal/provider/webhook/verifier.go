// Package webhook implements the provider-agnostic webhook signature
// protocol: a header of the form "t=<unix>,v1=<hex hmac-sha256>" computed
// over "{timestamp}.{rawBody}". Vendor adapters only supply the header name
// and the secret; the protocol itself never varies per vendor.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance bounds how old a signed timestamp may be before the
// delivery is treated as a replay.
const DefaultTolerance = 5 * time.Minute

const (
	ReasonInvalidFormat     = "invalid format"
	ReasonSignatureMismatch = "signature mismatch"
	ReasonTimestampTooOld   = "timestamp too old"
)

// VerificationError reports why a webhook delivery was rejected. Failures
// are always errors, never a bare false, so callers can alert on forged,
// stale and malformed deliveries differently.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return "webhook verification failed: " + e.Reason
}

// SignedHeader is the parsed form of the signature header.
type SignedHeader struct {
	Timestamp time.Time
	// Signatures holds every v1 entry. Vendors include multiple signatures
	// while rolling a secret; verification passes if any one matches.
	Signatures [][]byte
}

// Verifier checks webhook authenticity and freshness.
type Verifier struct {
	tolerance time.Duration
	now       func() time.Time
}

// New builds a verifier with the given replay tolerance. A tolerance of
// zero disables the freshness check entirely; that is an escape hatch for
// tests, not a production setting.
func New(tolerance time.Duration) *Verifier {
	return &Verifier{tolerance: tolerance, now: time.Now}
}

// NewWithClock is New with an injected clock for freshness tests.
func NewWithClock(tolerance time.Duration, now func() time.Time) *Verifier {
	return &Verifier{tolerance: tolerance, now: now}
}

// ParseHeader splits "t=...,v1=..." into its parts.
func ParseHeader(header string) (SignedHeader, error) {
	parsed := SignedHeader{}
	sawTimestamp := false

	for _, pair := range strings.Split(header, ",") {
		pair = strings.TrimSpace(pair)
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			unix, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return parsed, &VerificationError{Reason: ReasonInvalidFormat}
			}
			parsed.Timestamp = time.Unix(unix, 0)
			sawTimestamp = true
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			parsed.Signatures = append(parsed.Signatures, sig)
		}
	}

	if !sawTimestamp || len(parsed.Signatures) == 0 {
		return parsed, &VerificationError{Reason: ReasonInvalidFormat}
	}
	return parsed, nil
}

// Verify authenticates rawBody against the signature header. rawBody must be
// the exact bytes received on the wire; verifying a re-serialized payload is
// a correctness bug this contract forbids.
func (v *Verifier) Verify(rawBody []byte, header string, secret string) (SignedHeader, error) {
	parsed, err := ParseHeader(header)
	if err != nil {
		return parsed, err
	}

	expected := Sign(secret, parsed.Timestamp, rawBody)
	matched := false
	for _, sig := range parsed.Signatures {
		// hmac.Equal is constant time; a naive compare would leak enough
		// timing to forge signatures byte by byte.
		if hmac.Equal(sig, expected) {
			matched = true
		}
	}
	if !matched {
		return parsed, &VerificationError{Reason: ReasonSignatureMismatch}
	}

	if v.tolerance > 0 {
		if age := v.now().Sub(parsed.Timestamp); age > v.tolerance {
			return parsed, &VerificationError{Reason: ReasonTimestampTooOld}
		}
	}

	return parsed, nil
}

// Sign computes the raw HMAC-SHA256 over "{timestamp}.{body}".
func Sign(secret string, timestamp time.Time, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

// BuildHeader renders a valid signature header for body. Used by tests and
// by outbound signing.
func BuildHeader(secret string, timestamp time.Time, body []byte) string {
	sig := Sign(secret, timestamp, body)
	return fmt.Sprintf("t=%d,v1=%s", timestamp.Unix(), hex.EncodeToString(sig))
}
