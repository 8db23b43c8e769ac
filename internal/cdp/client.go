package cdp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
)

const (
	ProjectIDHeader = "X-Project-Id"
	RequestIDHeader = "X-Request-Id"

	maxResponseBodySize = 1 << 20
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type tokenRequest struct {
	ProjectID          string              `json:"projectId"`
	DestinationWallets []DestinationWallet `json:"destinationWallets"`
}

// tokenResponse accepts both field names the token endpoint has used.
type tokenResponse struct {
	Token        string `json:"token"`
	SessionToken string `json:"sessionToken"`
}

// SessionTokenClient performs the single signed call to the CDP token endpoint.
type SessionTokenClient struct {
	httpClient HTTPClient
	signer     *Signer
	clock      time2.Clock
	endpoint   *url.URL
	timeout    time.Duration
}

func NewSessionTokenClient(cfg config.CDP, httpClient HTTPClient, signer *Signer, clock time2.Clock) (*SessionTokenClient, error) {
	endpoint, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + cfg.TokenPath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid CDP token endpoint")
	}

	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, errors.Errorf("CDP token endpoint must be http(s), got %q", endpoint.Scheme)
	}

	return &SessionTokenClient{
		httpClient: httpClient,
		signer:     signer,
		clock:      clock,
		endpoint:   endpoint,
		timeout:    cfg.RequestTimeout,
	}, nil
}

// Endpoint returns the absolute token endpoint URL.
func (c *SessionTokenClient) Endpoint() string {
	return c.endpoint.String()
}

// RequestTarget is the host and path the assertion of every token request is bound to.
func (c *SessionTokenClient) RequestTarget() string {
	return c.endpoint.Host + c.endpoint.Path
}

// RequestToken asks CDP for a session token. Only a 2xx answer carrying a non-empty token
// succeeds; signing problems are returned as *SigningError, everything else as *RemoteError.
func (c *SessionTokenClient) RequestToken(ctx context.Context, creds *Credentials, wallets []DestinationWallet) (*SessionTokenResult, error) {
	if !creds.Configured() {
		return nil, &UnconfiguredError{}
	}

	assertion, err := c.signer.Sign(http.MethodPost, c.RequestTarget(), creds.KeyName, creds.PrivateKey)
	if err != nil {
		return nil, err
	}

	if wallets == nil {
		wallets = []DestinationWallet{}
	}

	body, err := json.Marshal(tokenRequest{
		ProjectID:          creds.ProjectID,
		DestinationWallets: wallets,
	})
	if err != nil {
		return nil, &RemoteError{Err: errors.Wrap(err, "failed to encode request body")}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteError{Err: errors.Wrap(err, "failed to create request")}
	}

	req.Header.Set("Authorization", "Bearer "+assertion.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if len(creds.ProjectID) > 0 {
		req.Header.Set(ProjectIDHeader, creds.ProjectID)
	}
	if id, err := util.RequestIDFromContext(ctx); err == nil {
		req.Header.Set(RequestIDHeader, id)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Err: errors.Wrap(err, "failed to send request")}
	}
	defer res.Body.Close()

	// Read everything first so that a broken body can be told apart from a broken connection.
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return nil, &RemoteError{StatusCode: res.StatusCode, Err: errors.Wrap(err, "failed to read response body")}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &RemoteError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &RemoteError{StatusCode: res.StatusCode, Body: string(raw), Err: errors.Wrap(err, "failed to parse response body")}
	}

	token := parsed.Token
	if len(token) == 0 {
		token = parsed.SessionToken
	}
	if len(token) == 0 {
		return nil, &RemoteError{StatusCode: res.StatusCode, Body: string(raw), Err: ErrMissingToken}
	}

	return &SessionTokenResult{
		Token:     token,
		ExpiresAt: c.clock.Now().Add(SessionTokenTTL),
		Origin:    OriginRemote,
	}, nil
}
