package http

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrBodyDecode matches any BodyDecodeError.
var ErrBodyDecode = errors.New("response body is not valid text")

// BodyDecodeError is returned by Text when the body cannot be decoded.
type BodyDecodeError struct {
	Charset string
	Err     error
}

func (e *BodyDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (charset %s): %v", ErrBodyDecode, e.Charset, e.Err)
	}
	return fmt.Sprintf("%s (charset %s)", ErrBodyDecode, e.Charset)
}

func (e *BodyDecodeError) Unwrap() error {
	return e.Err
}

func (e *BodyDecodeError) Is(target error) bool {
	return target == ErrBodyDecode
}

type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// Text decodes the body using the charset declared in Content-Type,
// defaulting to UTF-8.
func (r *Response) Text() (string, error) {
	charset := r.Charset()

	if charset == "utf-8" || charset == "utf8" {
		if !utf8.Valid(r.Body) {
			return "", &BodyDecodeError{Charset: charset, Err: errors.New("invalid UTF-8 sequence")}
		}
		return string(r.Body), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", &BodyDecodeError{Charset: charset, Err: err}
	}

	decoded, err := enc.NewDecoder().Bytes(r.Body)
	if err != nil {
		return "", &BodyDecodeError{Charset: charset, Err: err}
	}
	return string(decoded), nil
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// Charset returns the lower-cased charset parameter of Content-Type, or "utf-8".
func (r *Response) Charset() string {
	ct := r.ContentType()
	if ct == "" {
		return "utf-8"
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "utf-8"
	}
	if cs := strings.ToLower(strings.TrimSpace(params["charset"])); cs != "" {
		return cs
	}
	return "utf-8"
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
