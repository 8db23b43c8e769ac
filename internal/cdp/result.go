package cdp

import "time"

// SessionTokenTTL is the expiry horizon of every session token we hand out, remote or fallback.
const SessionTokenTTL = 10 * time.Minute

type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

const (
	EnvDevelopment      = "development"
	EnvDevelopmentError = "development-error"
)

// SessionTokenResult is the only value that leaves the issuance flow.
type SessionTokenResult struct {
	Token     string
	ExpiresAt time.Time
	Origin    Origin

	// Env and Error are only set on fallback results.
	Env   string
	Error string
}

func (r *SessionTokenResult) IsFallback() bool {
	return r.Origin == OriginFallback
}
