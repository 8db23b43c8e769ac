package test

import (
	"net/http/httptest"
	"testing"

	"github.com/SafeMPC/onramp-service/internal/api/httperrors"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireHTTPError asserts status, type and title of an error response and returns it
// for further inspection.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpErr *httperrors.HTTPError) types.PublicHTTPError {
	t.Helper()

	require.Equal(t, int(*httpErr.Code), res.Result().StatusCode, "Unexpected HTTP status code, body: %s", res.Body.String())

	var response types.PublicHTTPError
	ParseResponseAndValidate(t, res, &response)

	assert.Equal(t, *httpErr.Code, *response.Code)
	assert.Equal(t, *httpErr.Type, *response.Type)
	assert.Equal(t, *httpErr.Title, *response.Title)

	return response
}

// RequireHTTPValidationError asserts a 400 schema validation response and returns its details.
func RequireHTTPValidationError(t *testing.T, res *httptest.ResponseRecorder) types.PublicHTTPValidationError {
	t.Helper()

	require.Equal(t, 400, res.Result().StatusCode, "Unexpected HTTP status code, body: %s", res.Body.String())

	var response types.PublicHTTPValidationError
	ParseResponseAndValidate(t, res, &response)

	assert.Equal(t, types.PublicHTTPErrorTypeGeneric, *response.Type)
	require.NotEmpty(t, response.ValidationErrors)

	return response
}
