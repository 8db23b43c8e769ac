package router

import (
	"errors"
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/httperrors"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error returned by a handler as a PublicHTTPError JSON document.
func HTTPErrorHandler(s *api.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var code int
		var body interface{}

		var httpErr *httperrors.HTTPError
		var validationErr *httperrors.HTTPValidationError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &validationErr):
			code = int(*validationErr.Code)
			body = validationErr
		case errors.As(err, &httpErr):
			code = int(*httpErr.Code)
			body = httpErr
		case errors.As(err, &echoErr):
			code = echoErr.Code
			httpErr = httperrors.NewFromEcho(echoErr)
			if code == http.StatusInternalServerError && !s.Config.Echo.HideInternalServerErrorDetails && echoErr.Internal != nil {
				httpErr.Detail = echoErr.Internal.Error()
			}
			body = httpErr
		default:
			code = http.StatusInternalServerError
			httpErr = httperrors.NewHTTPError(code, types.PublicHTTPErrorTypeGeneric, http.StatusText(code))
			if !s.Config.Echo.HideInternalServerErrorDetails {
				httpErr.Detail = err.Error()
			}
			body = httpErr
		}

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", code).Msg("Request failed with internal server error")
		} else {
			log.Debug().Err(err).Int("status", code).Msg("Request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Warn().Err(err).AnErr("http_err", err).Msg("Failed to handle HTTP error")
		}
	}
}
