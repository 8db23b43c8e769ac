package util

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SafeMPC/onramp-service/internal/api/httperrors"
	"github.com/SafeMPC/onramp-service/internal/types"
	oerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

// BindAndValidateBody binds the request body to v and validates it against its schema.
// An empty body is accepted and leaves v untouched; a body that cannot be decoded, or a JSON
// body followed by anything but whitespace, yields a MALFORMED_REQUEST error. A decoded body
// violating the schema yields a validation error. Bodies with a non-JSON Content-Type are
// rejected by echo with 415.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	req := c.Request()

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return malformedBody(c, err)
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	binder := c.Echo().Binder.(*echo.DefaultBinder)

	if err := binder.BindBody(c, v); err != nil {
		if errors.Is(err, io.EOF) {
			return validatePayload(c, v)
		}

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) && echoErr.Code != http.StatusBadRequest {
			return echoErr
		}

		return malformedBody(c, err)
	}

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := ensureSingleJSONValue(body); err != nil {
			return malformedBody(c, err)
		}
	}

	return validatePayload(c, v)
}

// ensureSingleJSONValue fails if anything but whitespace follows the first JSON value.
func ensureSingleJSONValue(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingRequestData
	}

	return nil
}

func malformedBody(c echo.Context, err error) error {
	LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind request body")

	httpErr := *httperrors.ErrBadRequestMalformedBody
	httpErr.Internal = err
	return &httpErr
}

// ValidateAndReturn returns the provided data as a JSON response with the given HTTP status code after
// performing payload validation.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Error().Err(err).Msg("Response did not match schema, returning internal server error")
		return echo.ErrInternalServerError
	}

	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var valErrs []*types.HTTPValidationErrorDetail

		var compositeError *oerrors.CompositeError
		var validationError *oerrors.Validation
		switch {
		case errors.As(err, &compositeError):
			valErrs = formatValidationErrors(c.Request().Context(), compositeError)
		case errors.As(err, &validationError):
			valErrs = []*types.HTTPValidationErrorDetail{formatValidationError(validationError)}
		default:
			LogFromEchoContext(c).Error().Err(err).Msg("Failed to validate payload, returning generic HTTP error")
			return echo.ErrBadRequest
		}

		LogFromEchoContext(c).Debug().Errs("validation_errors", []error{err}).Msg("Payload did not match schema, returning HTTP validation error")

		return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusBadRequest), valErrs)
	}

	return nil
}

func formatValidationErrors(ctx context.Context, err *oerrors.CompositeError) []*types.HTTPValidationErrorDetail {
	valErrs := make([]*types.HTTPValidationErrorDetail, 0, len(err.Errors))
	for _, e := range err.Errors {
		switch ee := e.(type) {
		case *oerrors.Validation:
			valErrs = append(valErrs, formatValidationError(ee))
		case *oerrors.CompositeError:
			valErrs = append(valErrs, formatValidationErrors(ctx, ee)...)
		default:
			LogFromContext(ctx).Warn().Err(e).Str("err_type", fmt.Sprintf("%T", e)).Msg("Received unknown error type while validating payload, skipping")
		}
	}

	return valErrs
}

func formatValidationError(err *oerrors.Validation) *types.HTTPValidationErrorDetail {
	return &types.HTTPValidationErrorDetail{
		Key:   swag.String(err.Name),
		In:    swag.String(err.In),
		Error: swag.String(err.Error()),
	}
}
