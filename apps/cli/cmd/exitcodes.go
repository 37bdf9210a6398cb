package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/hitcurl/packages/core/config"
	"github.com/abdul-hamid-achik/hitcurl/packages/http"
	"github.com/abdul-hamid-achik/hitcurl/packages/output"
	"github.com/abdul-hamid-achik/hitcurl/packages/request"
)

// Exit codes for hitcurl CLI
const (
	// ExitSuccess indicates the response was received and printed
	ExitSuccess = 0

	// ExitHTTPError indicates a non-2xx response status
	ExitHTTPError = 1

	// ExitURLError indicates a malformed URL or an unsupported scheme
	ExitURLError = 2

	// ExitConfigError indicates a configuration error, including an invalid --json payload
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitDecodeError indicates a response body that is not valid text
	ExitDecodeError = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitCode maps an error returned by the request flow to a process exit code.
func exitCode(err error) int {
	var urlErr *request.URLError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &urlErr), errors.Is(err, request.ErrUnsupportedScheme):
		return ExitURLError
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, request.ErrInvalidJSONPayload),
		errors.Is(err, request.ErrInvalidMethod),
		errors.Is(err, request.ErrInvalidHeader):
		return ExitConfigError
	case errors.Is(err, http.ErrTransport):
		return ExitNetworkError
	case errors.Is(err, http.ErrBodyDecode):
		return ExitDecodeError
	case errors.Is(err, output.ErrHTTPStatus):
		return ExitHTTPError
	default:
		return ExitHTTPError
	}
}
