package stats

import (
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetStatsRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/stats", getStatsHandler(s))
}

func getStatsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		snapshot := s.Stats.Snapshot()

		response := &types.BridgeStatsResponse{
			TotalVolumeUSD:       swag.Float64(snapshot.TotalVolumeUSD),
			TotalTransactions:    swag.Int64(snapshot.TotalTransactions),
			ActiveBridges:        swag.Int64(snapshot.ActiveBridges),
			AverageBridgeSeconds: swag.Float64(snapshot.AverageBridgeSeconds),
			UpdatedAt:            strfmt.DateTime(snapshot.UpdatedAt.UTC()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
