package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse when the input is not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a parsed JSON value. Only the fields matching Kind are meaningful.
// Numbers keep their literal text so that re-encoding never changes them.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string
	Str     string
	Items   []*Value
	Members []Member
}

// MaxDepth is the deepest array and object nesting Parse accepts.
const MaxDepth = 128

// Parse decodes data into a Value tree. Object members are kept in the order
// they appear in the document, including duplicated keys. Documents nested
// deeper than MaxDepth, or holding an unpaired UTF-16 surrogate escape, are
// rejected with ErrInvalidJSON.
func Parse(data []byte) (*Value, error) {
	if !gjson.ValidBytes(data) || nestingExceeds(data, MaxDepth) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data))
}

// ParseString is Parse for string input.
func ParseString(s string) (*Value, error) {
	return Parse([]byte(s))
}

func fromResult(r gjson.Result) (*Value, error) {
	switch r.Type {
	case gjson.Null:
		return &Value{Kind: Null}, nil
	case gjson.True:
		return &Value{Kind: Bool, Bool: true}, nil
	case gjson.False:
		return &Value{Kind: Bool, Bool: false}, nil
	case gjson.Number:
		return &Value{Kind: Number, Number: r.Raw}, nil
	case gjson.String:
		if hasLoneSurrogate(r.Raw) {
			return nil, ErrInvalidJSON
		}
		return &Value{Kind: String, Str: r.Str}, nil
	}

	var err error
	if r.IsArray() {
		v := &Value{Kind: Array, Items: []*Value{}}
		r.ForEach(func(_, item gjson.Result) bool {
			var child *Value
			if child, err = fromResult(item); err != nil {
				return false
			}
			v.Items = append(v.Items, child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	v := &Value{Kind: Object, Members: []Member{}}
	r.ForEach(func(key, item gjson.Result) bool {
		if hasLoneSurrogate(key.Raw) {
			err = ErrInvalidJSON
			return false
		}
		var child *Value
		if child, err = fromResult(item); err != nil {
			return false
		}
		v.Members = append(v.Members, Member{Key: key.Str, Value: child})
		return true
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// nestingExceeds reports whether the valid document data opens more than limit
// arrays or objects at once.
func nestingExceeds(data []byte, limit int) bool {
	depth := 0
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
			if depth > limit {
				return true
			}
		case ']', '}':
			depth--
		}
	}
	return false
}

// hasLoneSurrogate reports whether the raw JSON string literal contains a
// \u escape for a surrogate half that is not part of a high/low pair.
func hasLoneSurrogate(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		i++
		if i >= len(raw) || raw[i] != 'u' {
			continue
		}
		r, ok := hexRune(raw, i+1)
		if !ok {
			continue
		}
		i += 4
		switch {
		case r >= 0xd800 && r < 0xdc00:
			if i+6 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				if lo, ok := hexRune(raw, i+3); ok && lo >= 0xdc00 && lo < 0xe000 {
					i += 6
					continue
				}
			}
			return true
		case r >= 0xdc00 && r < 0xe000:
			return true
		}
	}
	return false
}

func hexRune(s string, at int) (rune, bool) {
	if at+4 > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[at:at+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// Get returns the value of the last member named key, which is the member
// that wins when an object repeats a key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != Object {
		return nil, false
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the object's member keys in their current order.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != Object {
		return nil
	}
	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports whether two trees are identical, including member order.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == o.Bool
	case Number:
		return v.Number == o.Number
	case String:
		return v.Str == o.Str
	case Array:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for i := range v.Members {
			if v.Members[i].Key != o.Members[i].Key || !v.Members[i].Value.Equal(o.Members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the tree compactly, keeping the current member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compact returns the compact encoding of the tree.
func (v *Value) Compact() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

func (v *Value) encode(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(v.Number)
	case String:
		return encodeString(buf, v.Str)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// encodeString writes s as a JSON string without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
