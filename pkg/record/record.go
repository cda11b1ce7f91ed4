// Package record loads agent analysis artifacts: UTF-8 JSON documents whose
// top level must be an object. Parsing preserves the insertion order of the
// object's fields, which downstream renderers rely on.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Record is a parsed analysis artifact. Field order matches the source
// document. Records are read-only after parsing.
type Record struct {
	fields []Field
	index  map[string]int
}

// Field is a single name/value pair. Value is one of: nil, bool, json.Number,
// string, []any, or *Record for nested objects.
type Field struct {
	Name  string
	Value any
}

// Parse decodes data as a JSON object. A top-level non-object or malformed
// input yields a *ParseError.
func Parse(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read document: %w", err)}
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, &ParseError{Err: fmt.Errorf("top-level value must be an object, got %v", tok)}
	}

	rec, err := parseObject(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// Trailing content after the closing brace is malformed input, not an
	// extra document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("unexpected content after document")}
	}

	return rec, nil
}

// Len reports the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Fields returns the fields in insertion order. The returned slice is shared;
// callers must not mutate it.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// Get returns the value for name and whether the field exists.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// GetString returns the field as a string. Missing fields and non-string
// values return fallback.
func (r *Record) GetString(name, fallback string) string {
	v, ok := r.Get(name)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

func parseObject(dec *json.Decoder) (*Record, error) {
	rec := &Record{index: make(map[string]int)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read field name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", tok)
		}

		value, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		if i, exists := rec.index[name]; exists {
			// Duplicate keys keep their original position; the later value
			// wins, matching encoding/json map decoding.
			rec.fields[i].Value = value
			continue
		}
		rec.index[name] = len(rec.fields)
		rec.fields = append(rec.fields, Field{Name: name, Value: value})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read object end: %w", err)
	}

	return rec, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read value: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		// bool, json.Number, string, or nil.
		return t, nil
	}
}

func parseArray(dec *json.Decoder) ([]any, error) {
	items := []any{}
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read array end: %w", err)
	}
	return items, nil
}
