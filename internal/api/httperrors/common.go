package httperrors

import (
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/types"
)

var (
	ErrBadRequestMalformedBody = NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeMALFORMEDREQUEST, http.StatusText(http.StatusBadRequest), "Request body is not valid JSON.")
)

// NewInvalidAddressError reports a destination address that does not match the format of one of its blockchains.
func NewInvalidAddressError(detail string) *HTTPError {
	return NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDADDRESS, "Invalid destination address.", detail)
}
