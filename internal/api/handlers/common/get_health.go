package common

import (
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetHealthRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/health", getHealthHandler(s))
}

// getHealthHandler reports "ok" as long as the process serves requests. Missing credentials
// only show up as configured=false since the service still answers with fallback tokens.
func getHealthHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := &types.HealthResponse{
			Status:     swag.String("ok"),
			Configured: swag.Bool(s.CDP.Configured(c.Request().Context())),
			Version:    config.GetFormattedBuildArgs(),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
