package request

import (
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/abdul-hamid-achik/hitcurl/packages/canon"
	"golang.org/x/net/http/httpguts"
)

const (
	// DefaultMethod is used when no method, data or JSON payload is given
	DefaultMethod = "GET"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

var (
	// ErrInvalidJSONPayload is returned when the --json argument does not parse
	ErrInvalidJSONPayload = errors.New("invalid JSON payload")
	// ErrInvalidMethod is returned for methods that are not valid HTTP tokens
	ErrInvalidMethod = errors.New("invalid HTTP method")
	// ErrInvalidHeader is returned for malformed "Name: value" header arguments
	ErrInvalidHeader = errors.New("invalid header")
)

// BodyKind says how the request body was supplied.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyRawForm
	BodyJSONPayload
)

func (k BodyKind) String() string {
	switch k {
	case BodyRawForm:
		return "form"
	case BodyJSONPayload:
		return "json"
	default:
		return "none"
	}
}

type Body struct {
	Kind    BodyKind
	Content string
}

// Spec is the fully resolved request. It is not modified after Build.
type Spec struct {
	URL     *neturl.URL
	Method  string
	Body    Body
	Headers map[string]string
}

// HasBody reports whether the request carries a body.
func (s *Spec) HasBody() bool {
	return s.Body.Kind != BodyNone
}

// ContentType returns the Content-Type header the request will be sent with.
func (s *Spec) ContentType() string {
	return s.Headers["Content-Type"]
}

// Options is the raw caller input. A nil Data or JSON means the flag was not given.
type Options struct {
	URL            string
	Method         string
	Data           *string
	JSON           *string
	Headers        []string
	DefaultHeaders map[string]string
}

// Build validates the URL and resolves method, body and headers.
//
// A JSON payload takes priority over raw data. Either one forces POST and sets
// Content-Type, overriding any header of the same name given by the caller.
func Build(opts Options) (*Spec, error) {
	u, err := ValidateURL(opts.URL)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(opts.DefaultHeaders)+len(opts.Headers)+1)
	for k, v := range opts.DefaultHeaders {
		headers[canonicalHeaderKey(k)] = v
	}
	for _, raw := range opts.Headers {
		name, value, err := ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}

	spec := &Spec{
		URL:     u,
		Headers: headers,
	}

	switch {
	case opts.JSON != nil:
		if _, err := canon.ParseString(*opts.JSON); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJSONPayload, *opts.JSON)
		}
		spec.Method = "POST"
		spec.Body = Body{Kind: BodyJSONPayload, Content: *opts.JSON}
		spec.Headers["Content-Type"] = ContentTypeJSON
	case opts.Data != nil:
		spec.Method = "POST"
		spec.Body = Body{Kind: BodyRawForm, Content: *opts.Data}
		spec.Headers["Content-Type"] = ContentTypeForm
	default:
		method, err := normalizeMethod(opts.Method)
		if err != nil {
			return nil, err
		}
		spec.Method = method
	}

	return spec, nil
}

func normalizeMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultMethod, nil
	}
	if !httpguts.ValidHeaderFieldName(method) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	return strings.ToUpper(method), nil
}

// ParseHeader splits a "Name: value" argument.
func ParseHeader(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: %q (expected \"Name: value\")", ErrInvalidHeader, raw)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeader, raw)
	}
	return canonicalHeaderKey(name), value, nil
}

func canonicalHeaderKey(name string) string {
	return http.CanonicalHeaderKey(strings.TrimSpace(name))
}
