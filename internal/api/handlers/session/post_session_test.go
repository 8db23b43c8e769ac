package session_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/httperrors"
	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/test"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	evmAddress    = "0x9b1E5F0a4dC8e3B7A62f1d04C9E8b35a7F2c6D10"
	solanaAddress = "So11111111111111111111111111111111111111112"
)

func postSession(t *testing.T, s *api.Server, body test.GenericPayload) *types.SessionTokenResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/session", body, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode, "body: %s", res.Body.String())

	var response types.SessionTokenResponse
	test.ParseResponseAndValidate(t, res, &response)

	return &response
}

func decodeWallets(t *testing.T, response *types.SessionTokenResponse) []cdp.DestinationWallet {
	t.Helper()

	payload, err := cdp.DecodeFallbackToken(swag.StringValue(response.Token))
	require.NoError(t, err)

	return payload.DestinationWallets
}

func TestPostSessionUnconfigured(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		response := postSession(t, s, test.GenericPayload{
			"addresses": []test.GenericPayload{
				{"address": evmAddress, "blockchains": []string{"base"}},
			},
		})

		assert.Equal(t, types.SessionTokenResponseOriginFallback, swag.StringValue(response.Origin))
		assert.True(t, response.Fallback)
		assert.Equal(t, cdp.EnvDevelopment, response.Env)
		assert.Contains(t, response.Error, "not configured")
		assert.WithinDuration(t, s.Clock.Now().Add(10*time.Minute), time.Time(*response.ExpiresAt), time.Second)

		wallets := decodeWallets(t, response)
		require.Len(t, wallets, 1)
		assert.Equal(t, evmAddress, wallets[0].Address)
		assert.Equal(t, []string{"base"}, wallets[0].Blockchains)
		assert.Equal(t, config.DefaultAssets(), wallets[0].Assets)
	})
}

func TestPostSessionRemote(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusOK, `{"token": "abc123"}`)

	cfg := test.DefaultTestConfig(t)
	test.ConfigureCDP(t, &cfg, fake)

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		response := postSession(t, s, test.GenericPayload{
			"addresses": []test.GenericPayload{
				{"address": evmAddress, "blockchains": []string{"ethereum"}, "assets": []string{"ETH"}},
			},
		})

		assert.Equal(t, "abc123", swag.StringValue(response.Token))
		assert.Equal(t, types.SessionTokenResponseOriginRemote, swag.StringValue(response.Origin))
		assert.False(t, response.Fallback)
		assert.Empty(t, response.Env)
		assert.Empty(t, response.Error)
		assert.WithinDuration(t, s.Clock.Now().Add(10*time.Minute), time.Time(*response.ExpiresAt), time.Second)

		requests := fake.Requests()
		require.Len(t, requests, 1)
		assert.Contains(t, string(requests[0].Body), `"destinationWallets":[{"address":"`+evmAddress+`","blockchains":["ethereum"],"assets":["ETH"]}]`)
		assert.Contains(t, string(requests[0].Body), test.TestCDPProjectID)
		assert.NotEmpty(t, requests[0].Header.Get(cdp.RequestIDHeader))
	})
}

func TestPostSessionRemoteFailure(t *testing.T) {
	fake := test.NewCDPFake(t, http.StatusServiceUnavailable, `{"message": "service unavailable"}`)

	cfg := test.DefaultTestConfig(t)
	test.ConfigureCDP(t, &cfg, fake)

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		response := postSession(t, s, nil)

		assert.Equal(t, types.SessionTokenResponseOriginFallback, swag.StringValue(response.Origin))
		assert.True(t, response.Fallback)
		assert.Equal(t, cdp.EnvDevelopmentError, response.Env)
		assert.Equal(t, "cdp token endpoint returned status 503", response.Error)
		assert.NotContains(t, response.Error, "service unavailable")

		assert.Len(t, fake.Requests(), 1)
	})
}

func TestPostSessionKeyFileDetailsNotExposed(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "cdp_api_key.json")
	require.NoError(t, os.WriteFile(malformed, []byte("not json at all"), 0o600))

	tests := []struct {
		name    string
		keyFile string
	}{
		{name: "malformed", keyFile: malformed},
		{name: "directory", keyFile: t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := test.DefaultTestConfig(t)
			cfg.CDP.KeyFile = tt.keyFile

			test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
				response := postSession(t, s, nil)

				assert.Equal(t, cdp.EnvDevelopment, response.Env)
				assert.Equal(t, "cdp credentials not configured", response.Error)
				assert.NotContains(t, response.Error, tt.keyFile)
				assert.NotContains(t, response.Error, "invalid character")
			})
		})
	}
}

func TestPostSessionEmptyBody(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithRawBody(t, s, "POST", "/api/session", nil, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionTokenResponse
		test.ParseResponseAndValidate(t, res, &response)

		wallets := decodeWallets(t, &response)
		require.Len(t, wallets, 1)
		assert.Equal(t, s.Config.Onramp.DefaultAddress, wallets[0].Address)
		assert.Equal(t, s.Config.Onramp.DefaultBlockchains, wallets[0].Blockchains)
		assert.Equal(t, s.Config.Onramp.DefaultAssets, wallets[0].Assets)
	})
}

func TestPostSessionFilterPrecedence(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		response := postSession(t, s, test.GenericPayload{
			"blockchains": []string{"base", "optimism", "base"},
			"assets":      []string{"USDC"},
			"addresses": []test.GenericPayload{
				{"address": evmAddress},
				{"address": evmAddress, "blockchains": []string{"polygon"}, "assets": []string{"ETH", "DAI"}},
				{"address": solanaAddress, "blockchains": []string{"solana"}},
			},
		})

		wallets := decodeWallets(t, response)
		require.Len(t, wallets, 3)

		assert.Equal(t, []string{"base", "optimism"}, wallets[0].Blockchains)
		assert.Equal(t, []string{"USDC"}, wallets[0].Assets)

		assert.Equal(t, []string{"polygon"}, wallets[1].Blockchains)
		assert.Equal(t, []string{"ETH", "DAI"}, wallets[1].Assets)

		assert.Equal(t, solanaAddress, wallets[2].Address)
		assert.Equal(t, []string{"solana"}, wallets[2].Blockchains)
		assert.Equal(t, []string{"USDC"}, wallets[2].Assets)
	})
}

func TestPostSessionTopLevelFiltersOnDefaultAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		response := postSession(t, s, test.GenericPayload{
			"blockchains": []string{"arbitrum"},
		})

		wallets := decodeWallets(t, response)
		require.Len(t, wallets, 1)
		assert.Equal(t, s.Config.Onramp.DefaultAddress, wallets[0].Address)
		assert.Equal(t, []string{"arbitrum"}, wallets[0].Blockchains)
		assert.Equal(t, s.Config.Onramp.DefaultAssets, wallets[0].Assets)
	})
}

func TestPostSessionMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated", body: `{"addresses": [`},
		{name: "trailing garbage", body: `{}garbage`},
		{name: "trailing open object", body: `{"addresses":[]} {`},
		{name: "second object", body: `{} {}`},
		{name: "trailing brackets", body: `{"addresses":[{"address":"` + evmAddress + `"}]}]]]`},
	}

	test.WithTestServer(t, func(s *api.Server) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res := test.PerformRequestWithRawBody(t, s, "POST", "/api/session", strings.NewReader(tt.body), nil, nil)
				response := test.RequireHTTPError(t, res, httperrors.ErrBadRequestMalformedBody)
				assert.Equal(t, "Request body is not valid JSON.", response.Detail)
			})
		}
	})
}

func TestPostSessionTrailingWhitespace(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequestWithRawBody(t, s, "POST", "/api/session", strings.NewReader("{}\n\t "), nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())
	})
}

func TestPostSessionNonJSONContentType(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		headers := http.Header{}
		headers.Set(echo.HeaderContentType, "text/plain")

		res := test.PerformRequestWithRawBody(t, s, "POST", "/api/session", strings.NewReader(`{}`), headers, nil)
		test.RequireHTTPError(t, res, httperrors.NewFromEcho(echo.ErrUnsupportedMediaType))
	})
}

func TestPostSessionInvalidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address test.GenericPayload
	}{
		{name: "NotHex", address: test.GenericPayload{"address": "0xnothex", "blockchains": []string{"ethereum"}}},
		{name: "SolanaOnEVM", address: test.GenericPayload{"address": solanaAddress, "blockchains": []string{"base"}}},
		{name: "EVMOnSolana", address: test.GenericPayload{"address": evmAddress, "blockchains": []string{"solana"}}},
		{name: "DefaultChainsAreEVM", address: test.GenericPayload{"address": solanaAddress}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.WithTestServer(t, func(s *api.Server) {
				res := test.PerformRequest(t, s, "POST", "/api/session", test.GenericPayload{
					"addresses": []test.GenericPayload{tt.address},
				}, nil)

				response := test.RequireHTTPError(t, res, httperrors.NewInvalidAddressError(""))
				assert.NotEmpty(t, response.Detail)
			})
		})
	}
}

func TestPostSessionEmptyAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/session", test.GenericPayload{
			"addresses": []test.GenericPayload{
				{"address": "", "blockchains": []string{"base"}},
			},
		}, nil)

		test.RequireHTTPValidationError(t, res)
	})
}

func TestPostSessionUnknownChainAcceptsAnyAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		response := postSession(t, s, test.GenericPayload{
			"addresses": []test.GenericPayload{
				{"address": "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", "blockchains": []string{"bitcoin"}},
			},
		})

		wallets := decodeWallets(t, response)
		require.Len(t, wallets, 1)
		assert.Equal(t, []string{"bitcoin"}, wallets[0].Blockchains)
	})
}
