package canon

import (
	"bytes"

	"github.com/tidwall/pretty"
)

// DefaultIndent is the indentation used for pretty output.
const DefaultIndent = "  "

// IndentOptions controls pretty output.
type IndentOptions struct {
	Prefix string
	Indent string
}

// prettyOptions never sorts keys and never packs arrays onto one line, so
// the output follows the tree exactly.
func prettyOptions(opts *IndentOptions) *pretty.Options {
	o := &pretty.Options{Width: 0, Indent: DefaultIndent}
	if opts != nil {
		o.Prefix = opts.Prefix
		if opts.Indent != "" {
			o.Indent = opts.Indent
		}
	}
	return o
}

// Indent returns the pretty encoding of v followed by a single newline.
func Indent(v *Value, opts *IndentOptions) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out := pretty.PrettyOptions(compact, prettyOptions(opts))
	out = bytes.TrimRight(out, "\n")
	return append(out, '\n'), nil
}

// Colorize adds terminal colours to already formatted JSON.
func Colorize(formatted []byte) []byte {
	return pretty.Color(formatted, nil)
}
