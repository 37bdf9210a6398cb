// Package request resolves command-line input into the single HTTP request
// hitcurl sends.
//
// ParseURL validates the target and classifies parse failures into a small
// set of human-readable reasons. Build decides the method, body and headers:
// a JSON payload forces POST with application/json, raw data forces POST with
// application/x-www-form-urlencoded, and otherwise the caller's method is
// used with no body.
package request
