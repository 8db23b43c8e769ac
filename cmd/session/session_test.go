package session

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSessionDecodesFallbackToken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		srv := httptest.NewServer(s.Echo)
		defer srv.Close()

		var out bytes.Buffer
		err := runSession(context.Background(), &out, &options{
			baseURL:     srv.URL,
			addresses:   []string{"0x9b1E5F0a4dC8e3B7A62f1d04C9E8b35a7F2c6D10"},
			blockchains: []string{"base"},
			timeout:     5 * time.Second,
		})
		require.NoError(t, err)

		assert.Contains(t, out.String(), `"origin": "fallback"`)
		assert.Contains(t, out.String(), `"destinationWallets"`)
		assert.Contains(t, out.String(), `"0x9b1E5F0a4dC8e3B7A62f1d04C9E8b35a7F2c6D10"`)
	})
}

func TestRunSessionInvalidAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		srv := httptest.NewServer(s.Echo)
		defer srv.Close()

		err := runSession(context.Background(), &bytes.Buffer{}, &options{
			baseURL:   srv.URL,
			addresses: []string{"not-an-address"},
			timeout:   5 * time.Second,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 400")
		assert.Contains(t, err.Error(), "Invalid destination address.")
	})
}

func TestNewPayload(t *testing.T) {
	payload := newPayload(&options{
		addresses: []string{"a", "b"},
		assets:    []string{"USDC"},
	})

	require.Len(t, payload.Addresses, 2)
	assert.Equal(t, "b", *payload.Addresses[1].Address)
	assert.Equal(t, []string{"USDC"}, payload.Assets)
	assert.Empty(t, payload.Blockchains)
}
