package cdp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
)

// FallbackPayload is the JSON document a fallback token encodes. Real CDP tokens are opaque,
// so a token that decodes into this shape identifies degraded mode by itself.
type FallbackPayload struct {
	DestinationWallets []DestinationWallet `json:"destinationWallets"`
	Timestamp          string              `json:"timestamp"`
	Env                string              `json:"env"`
	Fallback           bool                `json:"fallback"`
}

// FallbackIssuer builds locally constructed session tokens that Coinbase will not accept.
type FallbackIssuer struct {
	clock time2.Clock
}

func NewFallbackIssuer(clock time2.Clock) *FallbackIssuer {
	return &FallbackIssuer{
		clock: clock,
	}
}

// Issue never fails. A nil or ErrUnconfigured reason yields env "development", any other
// reason "development-error". The result carries PublicReason(reason), never the full error.
func (f *FallbackIssuer) Issue(wallets []DestinationWallet, reason error) *SessionTokenResult {
	now := time.Now()
	if f != nil && f.clock != nil {
		now = f.clock.Now()
	}

	env := EnvDevelopmentError
	if reason == nil || errors.Is(reason, ErrUnconfigured) {
		env = EnvDevelopment
	}

	if wallets == nil {
		wallets = []DestinationWallet{}
	}

	raw, err := json.Marshal(FallbackPayload{
		DestinationWallets: wallets,
		Timestamp:          now.UTC().Format(time.RFC3339Nano),
		Env:                env,
		Fallback:           true,
	})
	if err != nil {
		raw = []byte(fmt.Sprintf(`{"destinationWallets":[],"env":%q,"fallback":true}`, env))
	}

	return &SessionTokenResult{
		Token:     base64.StdEncoding.EncodeToString(raw),
		ExpiresAt: now.Add(SessionTokenTTL),
		Origin:    OriginFallback,
		Env:       env,
		Error:     PublicReason(reason),
	}
}

// PublicReason summarizes why a fallback token was issued without key file paths, parser
// output or upstream response bodies. Callers log the full error themselves.
func PublicReason(reason error) string {
	if reason == nil || errors.Is(reason, ErrUnconfigured) {
		return ErrUnconfigured.Error()
	}

	var signErr *SigningError
	if errors.As(reason, &signErr) {
		return "failed to sign cdp assertion"
	}

	var remoteErr *RemoteError
	if errors.As(reason, &remoteErr) {
		switch {
		case remoteErr.StatusCode == 0:
			return "cdp token request failed"
		case remoteErr.Err != nil:
			return fmt.Sprintf("cdp token endpoint returned unusable response (status %d)", remoteErr.StatusCode)
		default:
			return fmt.Sprintf("cdp token endpoint returned status %d", remoteErr.StatusCode)
		}
	}

	return "cdp session token unavailable"
}

// DecodeFallbackToken reverses Issue. It fails for real CDP tokens.
func DecodeFallbackToken(token string) (*FallbackPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.Wrap(err, "token is not base64")
	}

	var payload FallbackPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "token is not a fallback payload")
	}

	if !payload.Fallback {
		return nil, errors.New("token is not marked as fallback")
	}

	return &payload, nil
}
