package util

import "errors"

var (
	ErrRequestIDNotFound   = errors.New("request ID not found in context")
	ErrTrailingRequestData = errors.New("unexpected data after JSON value in request body")
)
