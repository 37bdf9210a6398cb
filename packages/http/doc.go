// Package http provides the HTTP transport hitcurl sends its request with.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts, redirect handling and proxy
//   - Default headers merged under the request's own headers
//   - Classification of connection-level failures as TransportError
//   - Charset-aware response body decoding
package http
