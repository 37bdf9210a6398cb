// Package output renders hitcurl's request trace and response.
//
// Successful responses whose body parses as JSON are printed with object
// keys sorted at every level; other bodies are printed verbatim. Failures are
// reported as a single line on the error writer.
package output
