package cdp_test

import (
	"context"
	"crypto/elliptic"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/test"
	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	mu       sync.Mutex
	tokens   []string
	outcomes []string
}

func (r *recorderStub) ObserveSessionToken(origin string, env string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, origin+"/"+env)
}

func (r *recorderStub) ObserveCDPRequest(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func newTestService(t *testing.T, fake *test.CDPFake, sources ...cdp.CredentialSource) (*cdp.Service, *recorderStub, *time2.MockClock) {
	t.Helper()

	clock := time2.NewMockClock(time.Now())
	client, err := cdp.NewSessionTokenClient(config.CDP{
		BaseURL:        fake.URL(),
		TokenPath:      config.DefaultCDPTokenPath,
		RequestTimeout: 5 * time.Second,
	}, http.DefaultClient, cdp.NewSigner(clock), clock)
	require.NoError(t, err)

	recorder := &recorderStub{}
	service := cdp.NewService(cdp.NewCredentialResolver(sources...), client, cdp.NewFallbackIssuer(clock), recorder, clock)

	return service, recorder, clock
}

func envSource(t *testing.T) *cdp.EnvSource {
	t.Helper()

	_, keyPEM := test.GenerateECKey(t, elliptic.P256())

	return &cdp.EnvSource{
		ProjectID:      test.TestCDPProjectID,
		OrganizationID: test.TestCDPOrganizationID,
		APIKeyID:       test.TestCDPKeyID,
		APISecret:      keyPEM,
	}
}

func TestIssueSessionTokenUnconfigured(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusOK, `{"token": "abc123"}`)
	service, recorder, clock := newTestService(t, fake, &cdp.EnvSource{})

	result := service.IssueSessionToken(context.Background(), testWallets)

	assert.Equal(t, cdp.OriginFallback, result.Origin)
	assert.Equal(t, cdp.EnvDevelopment, result.Env)
	assert.Contains(t, result.Error, "not configured")
	assert.Equal(t, clock.Now().Add(10*time.Minute), result.ExpiresAt)

	assert.Empty(t, fake.Requests())
	assert.Equal(t, []string{"fallback/development"}, recorder.tokens)
	assert.Empty(t, recorder.outcomes)

	assert.False(t, service.Configured(context.Background()))
	assert.Empty(t, service.ProjectID(context.Background()))
}

func TestIssueSessionTokenRemote(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusOK, `{"token": "abc123"}`)
	service, recorder, clock := newTestService(t, fake, envSource(t))

	result := service.IssueSessionToken(context.Background(), testWallets)

	assert.Equal(t, "abc123", result.Token)
	assert.Equal(t, cdp.OriginRemote, result.Origin)
	assert.Empty(t, result.Env)
	assert.Empty(t, result.Error)
	assert.Equal(t, clock.Now().Add(10*time.Minute), result.ExpiresAt)

	assert.Len(t, fake.Requests(), 1)
	assert.Equal(t, []string{"remote/"}, recorder.tokens)
	assert.Equal(t, []string{cdp.OutcomeSuccess}, recorder.outcomes)

	assert.True(t, service.Configured(context.Background()))
	assert.Equal(t, test.TestCDPProjectID, service.ProjectID(context.Background()))
}

func TestIssueSessionTokenRemoteFailure(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusServiceUnavailable, `{"message": "unavailable"}`)
	service, recorder, _ := newTestService(t, fake, envSource(t))

	result := service.IssueSessionToken(context.Background(), testWallets)

	assert.Equal(t, cdp.OriginFallback, result.Origin)
	assert.Equal(t, cdp.EnvDevelopmentError, result.Env)
	assert.Contains(t, result.Error, "503")

	payload, err := cdp.DecodeFallbackToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, testWallets, payload.DestinationWallets)

	// exactly one attempt, no retry
	assert.Len(t, fake.Requests(), 1)
	assert.Equal(t, []string{"fallback/development-error"}, recorder.tokens)
	assert.Equal(t, []string{cdp.OutcomeRemoteError}, recorder.outcomes)
}

func TestIssueSessionTokenSigningFailure(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusOK, `{"token": "abc123"}`)
	_, p384PEM := test.GenerateECKey(t, elliptic.P384())

	service, recorder, _ := newTestService(t, fake, &cdp.EnvSource{
		ProjectID: test.TestCDPProjectID,
		APIKeyID:  test.TestCDPKeyID,
		APISecret: p384PEM,
	})

	result := service.IssueSessionToken(context.Background(), testWallets)

	assert.Equal(t, cdp.OriginFallback, result.Origin)
	assert.Equal(t, cdp.EnvDevelopmentError, result.Env)
	assert.Contains(t, result.Error, "sign")

	assert.Empty(t, fake.Requests())
	assert.Equal(t, []string{cdp.OutcomeSigningError}, recorder.outcomes)
}

func TestIssueSessionTokenRecovers(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusBadGateway, `bad gateway`)
	service, _, _ := newTestService(t, fake, envSource(t))

	first := service.IssueSessionToken(context.Background(), testWallets)
	assert.True(t, first.IsFallback())

	fake.Respond(http.StatusOK, `{"sessionToken": "xyz789"}`)

	second := service.IssueSessionToken(context.Background(), testWallets)
	assert.False(t, second.IsFallback())
	assert.Equal(t, "xyz789", second.Token)
}

func TestProbe(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusOK, `{"token": "abc123"}`)

	service, _, _ := newTestService(t, fake, envSource(t))
	require.NoError(t, service.Probe(context.Background()))
	assert.Empty(t, fake.Requests())

	unconfigured, _, _ := newTestService(t, fake, &cdp.EnvSource{})
	assert.ErrorIs(t, unconfigured.Probe(context.Background()), cdp.ErrUnconfigured)

	_, p384PEM := test.GenerateECKey(t, elliptic.P384())
	badKey, _, _ := newTestService(t, fake, &cdp.EnvSource{APIKeyID: test.TestCDPKeyID, APISecret: p384PEM})
	assert.ErrorIs(t, badKey.Probe(context.Background()), cdp.ErrUnsupportedCurve)
}
