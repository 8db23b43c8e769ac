package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/bridgestats"
	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/metrics"
	"github.com/dropbox/godropbox/time2"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

func NewMetrics() (*metrics.Service, error) {
	return metrics.New()
}

// NewCDPHTTPClient creates the client used for the CDP token endpoint. The timeout bounds
// the whole exchange, including reading the response body.
func NewCDPHTTPClient(cfg config.Server) cdp.HTTPClient {
	return &http.Client{
		Timeout: cfg.CDP.RequestTimeout,
	}
}

func NewCredentialResolver(cfg config.Server) *cdp.CredentialResolver {
	return cdp.NewCredentialResolverFromConfig(cfg.CDP)
}

func NewSigner(clock time2.Clock) *cdp.Signer {
	return cdp.NewSigner(clock)
}

func NewSessionTokenClient(cfg config.Server, httpClient cdp.HTTPClient, signer *cdp.Signer, clock time2.Clock) (*cdp.SessionTokenClient, error) {
	return cdp.NewSessionTokenClient(cfg.CDP, httpClient, signer, clock)
}

func NewFallbackIssuer(clock time2.Clock) *cdp.FallbackIssuer {
	return cdp.NewFallbackIssuer(clock)
}

func NewCDPService(
	resolver *cdp.CredentialResolver,
	client *cdp.SessionTokenClient,
	fallback *cdp.FallbackIssuer,
	metricsService *metrics.Service,
	clock time2.Clock,
) *cdp.Service {
	return cdp.NewService(resolver, client, fallback, metricsService, clock)
}

func NewBridgeStats(cfg config.Server, clock time2.Clock) *bridgestats.Service {
	return bridgestats.NewService(clock, cfg.Stats.Seed)
}
