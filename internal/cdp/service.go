package cdp

import (
	"context"
	"net/http"
	"time"

	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
)

const (
	OutcomeSuccess      = "success"
	OutcomeSigningError = "signing_error"
	OutcomeRemoteError  = "remote_error"
)

// Recorder receives issuance metrics. *metrics.Service implements it.
type Recorder interface {
	ObserveSessionToken(origin string, env string)
	ObserveCDPRequest(outcome string, duration time.Duration)
}

// Service issues session tokens: resolve credentials, make one signed call to CDP and fall
// back to a local token whenever that does not produce a token.
type Service struct {
	resolver *CredentialResolver
	client   *SessionTokenClient
	fallback *FallbackIssuer
	recorder Recorder
	clock    time2.Clock
}

func NewService(resolver *CredentialResolver, client *SessionTokenClient, fallback *FallbackIssuer, recorder Recorder, clock time2.Clock) *Service {
	return &Service{
		resolver: resolver,
		client:   client,
		fallback: fallback,
		recorder: recorder,
		clock:    clock,
	}
}

// IssueSessionToken always returns a token. There is exactly one remote attempt and no retry.
func (s *Service) IssueSessionToken(ctx context.Context, wallets []DestinationWallet) *SessionTokenResult {
	log := util.LogFromContext(ctx)

	creds, err := s.resolver.Resolve(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("CDP credentials not configured, issuing fallback session token")
		return s.issueFallback(wallets, err)
	}

	start := s.clock.Now()
	result, err := s.client.RequestToken(ctx, creds, wallets)
	duration := s.clock.Now().Sub(start)

	if err != nil {
		var signingErr *SigningError
		var remoteErr *RemoteError

		outcome := OutcomeRemoteError
		ev := log.Warn().Err(err).Str("key_name", creds.KeyName)
		switch {
		case errors.As(err, &signingErr):
			outcome = OutcomeSigningError
		case errors.As(err, &remoteErr):
			ev = ev.Int("status_code", remoteErr.StatusCode)
		}
		ev.Dur("duration", duration).Msg("Failed to obtain CDP session token, issuing fallback session token")

		s.observeRequest(outcome, duration)
		return s.issueFallback(wallets, err)
	}

	log.Debug().Dur("duration", duration).Time("expires_at", result.ExpiresAt).Msg("Obtained CDP session token")

	s.observeRequest(OutcomeSuccess, duration)
	s.observeToken(result)
	return result
}

// Configured reports whether credentials currently resolve.
func (s *Service) Configured(ctx context.Context) bool {
	_, err := s.resolver.Resolve(ctx)
	return err == nil
}

// ProjectID returns the project id of the resolved credentials, if any.
func (s *Service) ProjectID(ctx context.Context) string {
	creds, err := s.resolver.Resolve(ctx)
	if err != nil {
		return ""
	}
	return creds.ProjectID
}

// Probe checks that credentials resolve and that their key signs an assertion for the token
// endpoint. CDP itself is not contacted.
func (s *Service) Probe(ctx context.Context) error {
	creds, err := s.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	if _, err := s.client.signer.Sign(http.MethodPost, s.client.RequestTarget(), creds.KeyName, creds.PrivateKey); err != nil {
		return err
	}

	return nil
}

func (s *Service) issueFallback(wallets []DestinationWallet, reason error) *SessionTokenResult {
	result := s.fallback.Issue(wallets, reason)
	s.observeToken(result)
	return result
}

func (s *Service) observeToken(result *SessionTokenResult) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveSessionToken(string(result.Origin), result.Env)
}

func (s *Service) observeRequest(outcome string, duration time.Duration) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveCDPRequest(outcome, duration)
}
