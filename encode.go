package apikit

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Field is a single name/value pair produced by Encode.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered field list. Order follows struct declaration order so
// serialized bodies are stable across runs.
type Fields []Field

// Map returns the fields as a plain map for callers that do not care about
// ordering.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Name] = field.Value
	}
	return m
}

// MarshalJSON emits a JSON object preserving field order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode serializes a model struct (or pointer to one) into an ordered field
// list suitable for a JSON encoder or form body:
//
//   - unset Optional fields are omitted entirely
//   - null Optional fields are emitted as explicit nil
//   - slice values are copied with unset Optional elements dropped,
//     preserving the order of the remainder
//   - everything else, including nil pointers, is included unchanged
//
// Field names come from the json struct tag when present ("-" skips the
// field), the Go field name otherwise. Only one level of slice unwrapping is
// applied; nested structs and maps are not scanned.
func Encode(v any) (Fields, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &ClientError{Type: ErrorTypeEncode, Message: "cannot encode nil pointer"}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &ClientError{Type: ErrorTypeEncode, Message: "cannot encode " + rv.Kind().String() + ", need struct"}
	}

	rt := rv.Type()
	fields := make(Fields, 0, rt.NumField())
	for _, sf := range reflect.VisibleFields(rt) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		fv := rv.FieldByIndex(sf.Index)
		value, include := encodeValue(fv)
		if !include {
			continue
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields, nil
}

// encodeValue resolves one field value, reporting include=false for unset
// optionals.
func encodeValue(fv reflect.Value) (any, bool) {
	raw := fv.Interface()
	if opt, ok := raw.(optionalValue); ok {
		if opt.optionalUnset() {
			return nil, false
		}
		return opt.optionalAny(), true
	}
	if fv.Kind() == reflect.Slice || fv.Kind() == reflect.Array {
		return filterSlice(fv), true
	}
	return raw, true
}

// filterSlice drops unset Optional elements from a sequence value. Sequences
// without Optional elements are returned unchanged.
func filterSlice(fv reflect.Value) any {
	n := fv.Len()
	hasOptional := false
	for i := 0; i < n; i++ {
		if _, ok := fv.Index(i).Interface().(optionalValue); ok {
			hasOptional = true
			break
		}
	}
	if !hasOptional {
		return fv.Interface()
	}

	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		elem := fv.Index(i).Interface()
		opt, ok := elem.(optionalValue)
		if !ok {
			out = append(out, elem)
			continue
		}
		if opt.optionalUnset() {
			continue
		}
		out = append(out, opt.optionalAny())
	}
	return out
}
