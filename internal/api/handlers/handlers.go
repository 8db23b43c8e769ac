package handlers

import (
	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/handlers/common"
	"github.com/SafeMPC/onramp-service/internal/api/handlers/session"
	"github.com/SafeMPC/onramp-service/internal/api/handlers/stats"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetConfigRoute(s),
		common.GetHealthRoute(s),
		session.PostSessionRoute(s),
		stats.GetStatsRoute(s),
	}
}
