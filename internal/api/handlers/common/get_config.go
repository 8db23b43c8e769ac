package common

import (
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetConfigRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/config", getConfigHandler(s))
}

func getConfigHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		projectID := s.CDP.ProjectID(ctx)
		if len(projectID) == 0 {
			projectID = s.Config.CDP.ProjectID
		}

		response := &types.ConfigResponse{
			ProjectID:       projectID,
			SupportedChains: append([]string{}, s.Config.Onramp.DefaultBlockchains...),
			SupportedAssets: append([]string{}, s.Config.Onramp.DefaultAssets...),
			Configured:      swag.Bool(s.CDP.Configured(ctx)),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
