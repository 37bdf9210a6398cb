package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/hitcurl/packages/canon"
	"github.com/abdul-hamid-achik/hitcurl/packages/http"
	"github.com/abdul-hamid-achik/hitcurl/packages/request"
	"github.com/fatih/color"
)

const (
	jsonBodyHeader = "Response body (JSON with sorted keys):"
	rawBodyHeader  = "Response body:"
)

type ConsoleRenderer struct {
	writer    io.Writer
	errWriter io.Writer
	noColor   bool
	colorJSON bool
	indent    string
}

type ConsoleOption func(*ConsoleRenderer)

func NewConsoleRenderer(opts ...ConsoleOption) *ConsoleRenderer {
	r := &ConsoleRenderer{
		writer:    os.Stdout,
		errWriter: os.Stderr,
		colorJSON: true,
		indent:    canon.DefaultIndent,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noColor {
		color.NoColor = true
		r.colorJSON = false
	}
	return r
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.writer = w
	}
}

func WithErrorWriter(w io.Writer) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.errWriter = w
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.noColor = nc
	}
}

// WithColorJSON toggles ANSI colouring of pretty-printed JSON bodies. It has
// no effect while colour output is disabled.
func WithColorJSON(c bool) ConsoleOption {
	return func(r *ConsoleRenderer) {
		r.colorJSON = c
	}
}

func WithIndent(indent string) ConsoleOption {
	return func(r *ConsoleRenderer) {
		if indent != "" {
			r.indent = indent
		}
	}
}

// Trace prints the resolved request before it is sent.
func (r *ConsoleRenderer) Trace(spec *request.Spec) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(r.writer, "%s %s\n", bold("Requesting URL:"), spec.URL.String())
	fmt.Fprintf(r.writer, "%s %s\n", bold("Method:"), spec.Method)

	switch spec.Body.Kind {
	case request.BodyJSONPayload:
		fmt.Fprintf(r.writer, "%s %s\n", bold("JSON:"), spec.Body.Content)
	case request.BodyRawForm:
		fmt.Fprintf(r.writer, "%s %s\n", bold("Data:"), spec.Body.Content)
	}
}

// Render prints the response body for a successful request. Transport and
// status failures print nothing here and are returned as errors for the
// caller to report once.
func (r *ConsoleRenderer) Render(resp *http.Response, err error) error {
	switch o := Classify(resp, err).(type) {
	case TransportFailure:
		if errors.Is(o.Err, http.ErrTransport) {
			return o.Err
		}
		return &http.TransportError{Err: o.Err}
	case StatusFailure:
		return &StatusError{Code: o.Code}
	case Success:
		return r.renderBody(o.Response)
	}
	return nil
}

func (r *ConsoleRenderer) renderBody(resp *http.Response) error {
	bold := color.New(color.Bold).SprintFunc()

	text, err := resp.Text()
	if err != nil {
		return err
	}

	value, err := canon.ParseString(text)
	if err != nil {
		fmt.Fprintf(r.writer, "%s\n%s\n", bold(rawBodyHeader), text)
		return nil
	}

	formatted, err := canon.Indent(canon.Canonicalize(value), &canon.IndentOptions{Indent: r.indent})
	if err != nil {
		return err
	}
	if r.colorJSON && !color.NoColor {
		formatted = canon.Colorize(formatted)
	}

	fmt.Fprintf(r.writer, "%s\n%s", bold(jsonBodyHeader), formatted)
	return nil
}

// FormatError prints a single-line error to the error writer.
func (r *ConsoleRenderer) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(r.errWriter, "%s %s\n", red("Error:"), UserMessage(err))
}
