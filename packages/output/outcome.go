package output

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/hitcurl/packages/http"
)

// ErrHTTPStatus matches any StatusError.
var ErrHTTPStatus = errors.New("request failed")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// Outcome is the result of sending the request: TransportFailure,
// StatusFailure or Success.
type Outcome interface {
	outcome()
}

type TransportFailure struct {
	Err error
}

type StatusFailure struct {
	Code int
}

type Success struct {
	Response *http.Response
}

func (TransportFailure) outcome() {}
func (StatusFailure) outcome()    {}
func (Success) outcome()          {}

// Classify turns a transport result into an Outcome. Any error, whatever its
// cause, is a transport failure.
func Classify(resp *http.Response, err error) Outcome {
	if err != nil {
		return TransportFailure{Err: err}
	}
	if resp == nil {
		return TransportFailure{Err: http.ErrTransport}
	}
	if !resp.IsSuccess() {
		return StatusFailure{Code: resp.StatusCode}
	}
	return Success{Response: resp}
}

// UserMessage returns the one-line message shown for err. Transport failures
// are never broken down into their causes.
func UserMessage(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, http.ErrTransport):
		return http.ErrTransport.Error()
	default:
		return err.Error()
	}
}
