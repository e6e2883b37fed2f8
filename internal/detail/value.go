// Package detail holds free-form bill detail payloads and renders them as
// text without knowing their schema.
package detail

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	Scalar Kind = iota
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "scalar"
	}
}

// Entry is one key of a Map value. Entries keep document order.
type Entry struct {
	Key   string
	Value Value
}

// Value is a JSON document node: a scalar (string, number, bool or null), a
// list, or an ordered map. The zero Value is a null scalar.
type Value struct {
	kind    Kind
	scalar  any
	items   []Value
	entries []Entry
}

func String(s string) Value         { return Value{kind: Scalar, scalar: s} }
func Number(n string) Value         { return Value{kind: Scalar, scalar: json.Number(n)} }
func Bool(b bool) Value             { return Value{kind: Scalar, scalar: b} }
func Null() Value                   { return Value{kind: Scalar} }
func NewList(items ...Value) Value  { return Value{kind: List, items: items} }
func NewMap(entries ...Entry) Value { return Value{kind: Map, entries: entries} }

func (v Value) Kind() Kind         { return v.kind }
func (v Value) Items() []Value     { return v.items }
func (v Value) Entries() []Entry   { return v.entries }
func (v Value) IsStructured() bool { return v.kind != Scalar }

// Get returns the first entry named key of a Map value.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Text returns the literal form of a scalar: strings unquoted, numbers as
// they appeared in the document, null as "null". Structured values return
// their compact JSON.
func (v Value) Text() string {
	switch s := v.scalar.(type) {
	case nil:
		if v.kind == Scalar {
			return "null"
		}
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// MarshalJSON writes the value back out with map order preserved.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case List:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		data, err := json.Marshal(v.scalar)
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	return nil
}

// Parse decodes a JSON document.
func Parse(data []byte) (Value, error) {
	return decode(bytes.NewReader(data))
}

// decode reads exactly one JSON document from r.
func decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMap(dec)
		case '[':
			return decodeList(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMap(dec *json.Decoder) (Value, error) {
	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T, want string", tok)
		}
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: child})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewMap(entries...), nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		child, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(items), err)
		}
		items = append(items, child)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return NewList(items...), nil
}
