package request

import (
	"errors"
	"fmt"
	"net/netip"
	neturl "net/url"
	"strconv"
	"strings"
)

// ErrUnsupportedScheme matches any UnsupportedSchemeError.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// URLErrorKind classifies why a URL could not be parsed.
type URLErrorKind int

const (
	URLOther URLErrorKind = iota
	URLMissingScheme
	URLInvalidIPv6
	URLInvalidIPv4
	URLInvalidPort
)

func (k URLErrorKind) String() string {
	switch k {
	case URLMissingScheme:
		return "URL is missing a scheme (expected http:// or https://)"
	case URLInvalidIPv6:
		return "invalid IPv6 address in URL"
	case URLInvalidIPv4:
		return "invalid IPv4 address in URL"
	case URLInvalidPort:
		return "invalid port number in URL"
	default:
		return "invalid URL"
	}
}

// URLError is returned by ParseURL when the input is not a usable URL.
type URLError struct {
	Kind  URLErrorKind
	Input string
	Err   error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

func (e *URLError) Unwrap() error {
	return e.Err
}

// UnsupportedSchemeError is returned for URLs that parse but are not http or https.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported URL scheme: %s (only http and https are allowed)", e.Scheme)
}

func (e *UnsupportedSchemeError) Is(target error) bool {
	return target == ErrUnsupportedScheme
}

// ParseURL parses raw as an absolute URL. It does not check the scheme
// beyond requiring one; see CheckScheme.
func ParseURL(raw string) (*neturl.URL, error) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, &URLError{Kind: classifyParseError(err), Input: raw, Err: err}
	}

	if u.Scheme == "" {
		return nil, &URLError{Kind: URLMissingScheme, Input: raw}
	}

	if !isWebScheme(u.Scheme) {
		return u, nil
	}

	if u.Host == "" {
		return nil, &URLError{Kind: URLOther, Input: raw, Err: errors.New("empty host")}
	}

	if kind, ok := checkHost(u); !ok {
		return nil, &URLError{Kind: kind, Input: raw}
	}

	return u, nil
}

// CheckScheme rejects URLs whose scheme is not exactly http or https.
func CheckScheme(u *neturl.URL) error {
	if !isWebScheme(u.Scheme) {
		return &UnsupportedSchemeError{Scheme: u.Scheme}
	}
	return nil
}

// ValidateURL parses raw and checks its scheme.
func ValidateURL(raw string) (*neturl.URL, error) {
	u, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	if err := CheckScheme(u); err != nil {
		return nil, err
	}
	return u, nil
}

func isWebScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func classifyParseError(err error) URLErrorKind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "missing protocol scheme"),
		strings.Contains(msg, "first path segment in URL cannot contain colon"):
		return URLMissingScheme
	case strings.Contains(msg, "missing ']' in host"),
		strings.Contains(msg, "IPv6"),
		strings.Contains(msg, "IP-literal"):
		return URLInvalidIPv6
	case strings.Contains(msg, "invalid port"):
		return URLInvalidPort
	default:
		return URLOther
	}
}

// checkHost validates the parts of an http(s) authority that net/url accepts
// without checking.
func checkHost(u *neturl.URL) (URLErrorKind, bool) {
	host := u.Hostname()

	if strings.HasPrefix(u.Host, "[") {
		addr, err := netip.ParseAddr(host)
		if err != nil || !addr.Is6() {
			return URLInvalidIPv6, false
		}
	} else if looksLikeIPv4(host) {
		addr, err := netip.ParseAddr(strings.TrimSuffix(host, "."))
		if err != nil || !addr.Is4() {
			return URLInvalidIPv4, false
		}
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return URLInvalidPort, false
		}
	}

	return URLOther, true
}

// looksLikeIPv4 reports whether the last label of host is numeric, which
// makes the whole host an IPv4 address rather than a domain name.
func looksLikeIPv4(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return false
	}
	labels := strings.Split(host, ".")
	last := labels[len(labels)-1]
	if last == "" {
		return false
	}
	if strings.HasPrefix(last, "0x") || strings.HasPrefix(last, "0X") {
		return true
	}
	for _, r := range last {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
