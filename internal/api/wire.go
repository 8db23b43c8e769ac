//go:build wireinject

//go:generate wire

package api

import (
	"testing"

	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	NewMetrics,
	cdpServiceSet,
	NewBridgeStats,
)

var cdpServiceSet = wire.NewSet(
	NewCDPHTTPClient,
	NewCredentialResolver,
	NewSigner,
	NewSessionTokenClient,
	NewFallbackIssuer,
	NewCDPService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NoTest)
	return new(Server), nil
}

// InitNewServerWithT returns a new Server instance using a mock clock if a *testing.T is passed.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithT(
	_ config.Server,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
