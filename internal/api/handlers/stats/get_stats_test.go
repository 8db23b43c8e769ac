package stats_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/test"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/dropbox/godropbox/time2"
	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getStats(t *testing.T, s *api.Server) types.BridgeStatsResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "GET", "/api/stats", nil, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode)

	var response types.BridgeStatsResponse
	test.ParseResponseAndValidate(t, res, &response)

	return response
}

func TestGetStats(t *testing.T) {
	cfg := test.DefaultTestConfig(t)
	cfg.Stats.Seed = 42

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		first := getStats(t, s)

		assert.Positive(t, swag.Float64Value(first.TotalVolumeUSD))
		assert.Positive(t, swag.Int64Value(first.TotalTransactions))
		assert.Positive(t, swag.Int64Value(first.ActiveBridges))
		assert.Positive(t, swag.Float64Value(first.AverageBridgeSeconds))

		clock, ok := s.Clock.(*time2.MockClock)
		require.True(t, ok)
		clock.Advance(time.Hour)

		second := getStats(t, s)

		assert.Greater(t, swag.Int64Value(second.TotalTransactions), swag.Int64Value(first.TotalTransactions))
		assert.GreaterOrEqual(t, swag.Float64Value(second.TotalVolumeUSD), swag.Float64Value(first.TotalVolumeUSD))
		assert.True(t, time.Time(second.UpdatedAt).After(time.Time(first.UpdatedAt)))
	})
}
