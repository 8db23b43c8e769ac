package test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/router"
	"github.com/SafeMPC/onramp-service/internal/config"
)

// WithTestServer returns a fully configured server with CDP credentials removed, so every
// session request is answered with a fallback token unless the test configures CDP itself.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(t), closure)
}

// WithTestServerConfigurable returns a fully configured server, allowing for configuration
// using the provided server config. The server uses a mock clock.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	ctx := context.Background()

	// https://stackoverflow.com/questions/43424787/how-to-use-next-available-port-in-http-listenandserve
	// You may use port 0 to indicate you're not specifying an exact port but you want a free, available port selected by the system
	config.Echo.ListenAddress = ":0"

	s, err := api.InitNewServerWithT(config, t)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	router.Init(s)

	closure(s)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		t.Fatalf("failed to shutdown server: %v", errs)
	}
}

// DefaultTestConfig is the env based config without any CDP credentials. A key file left in
// the project root or CDP_* variables in the environment do not leak into tests.
func DefaultTestConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.CDP.KeyFile = filepath.Join(t.TempDir(), "missing_cdp_api_key.json")
	cfg.CDP.APIKeyID = ""
	cfg.CDP.APISecret = ""
	cfg.CDP.KeyName = ""
	cfg.CDP.ProjectID = ""
	cfg.CDP.OrganizationID = ""

	return cfg
}
