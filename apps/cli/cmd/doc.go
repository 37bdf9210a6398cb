// Package cmd implements the hitcurl CLI using Cobra.
//
// hitcurl has a single command taking the target URL as its only argument:
//   - -X/--method selects the method (GET by default)
//   - -d/--data sends a form-urlencoded body with POST
//   - --json sends a JSON body with POST
//   - -H/--header adds request headers
//
// Every failure is reported once on stderr and mapped to a distinct exit code.
package cmd
