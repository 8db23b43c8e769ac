package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestBodyLogSkipper defines a function to skip logging certain request bodies.
// Returning true skips logging the payload of the request.
type RequestBodyLogSkipper func(req *http.Request) bool

// DefaultRequestBodyLogSkipper returns true for all requests with Content-Type
// application/x-www-form-urlencoded or multipart/form-data as those might contain
// binary or URL-encoded file uploads unfit for logging purposes.
func DefaultRequestBodyLogSkipper(req *http.Request) bool {
	contentType := req.Header.Get(echo.HeaderContentType)
	switch {
	case len(contentType) >= len(echo.MIMEApplicationForm) && contentType[:len(echo.MIMEApplicationForm)] == echo.MIMEApplicationForm,
		len(contentType) >= len(echo.MIMEMultipartForm) && contentType[:len(echo.MIMEMultipartForm)] == echo.MIMEMultipartForm:
		return true
	default:
		return false
	}
}

type LoggerConfig struct {
	Skipper               middleware.Skipper
	Level                 zerolog.Level
	LogRequestBody        bool
	LogRequestHeader      bool
	LogRequestQuery       bool
	RequestBodyLogSkipper RequestBodyLogSkipper
	LogResponseBody       bool
	LogResponseHeader     bool
}

var (
	DefaultLoggerConfig = LoggerConfig{
		Skipper:               middleware.DefaultSkipper,
		Level:                 zerolog.DebugLevel,
		LogRequestBody:        false,
		LogRequestHeader:      false,
		LogRequestQuery:       false,
		RequestBodyLogSkipper: DefaultRequestBodyLogSkipper,
		LogResponseBody:       false,
		LogResponseHeader:     false,
	}
)

// LoggerWithConfig attaches a request-scoped zerolog logger to the request context and logs
// every request once it has been handled. The Authorization header is never logged.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}
	if config.RequestBodyLogSkipper == nil {
		config.RequestBodyLogSkipper = DefaultRequestBodyLogSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if len(id) == 0 {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			in := make(map[string]interface{})
			in["method"] = req.Method
			in["url"] = req.URL.Path
			in["remote_ip"] = c.RealIP()
			in["user_agent"] = req.UserAgent()

			if config.LogRequestQuery {
				in["query"] = req.URL.Query()
			}

			if config.LogRequestHeader {
				header := zerolog.Dict()
				for k, v := range req.Header {
					if k == echo.HeaderAuthorization {
						continue
					}
					header.Strs(k, v)
				}
				in["header"] = header
			}

			var reqBody []byte
			if config.LogRequestBody && !config.RequestBodyLogSkipper(req) && req.Body != nil {
				var err error
				reqBody, err = io.ReadAll(req.Body)
				if err != nil {
					log.Error().Err(err).Msg("Failed to read body while logging request")
					return err
				}
				req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
			}

			l := log.With().Dict("req", zerolog.Dict().Fields(in)).Str("id", id).Logger()
			ctx := l.WithContext(context.WithValue(req.Context(), util.CTXKeyRequestID, id))
			c.SetRequest(req.WithContext(ctx))

			var resBody bytes.Buffer
			if config.LogResponseBody {
				mw := io.MultiWriter(res.Writer, &resBody)
				writer := &bodyDumpResponseWriter{Writer: mw, ResponseWriter: res.Writer}
				res.Writer = writer
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			stop := time.Now()

			le := l.WithLevel(config.Level)

			if len(reqBody) > 0 {
				le = le.Bytes("req_body", reqBody)
			}

			out := zerolog.Dict().
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", stop.Sub(start))

			if config.LogResponseHeader {
				header := zerolog.Dict()
				for k, v := range res.Header() {
					header.Strs(k, v)
				}
				out = out.Dict("header", header)
			}

			if config.LogResponseBody {
				out = out.Bytes("body", resBody.Bytes())
			}

			le.Dict("res", out).Send()

			return nil
		}
	}
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
