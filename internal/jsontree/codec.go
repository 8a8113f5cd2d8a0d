package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// EncodingError reports input that is not valid UTF-8. Offset is the byte
// position of the first invalid sequence.
type EncodingError struct {
	Offset int64
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte offset %d", e.Offset)
}

// Decode parses a single JSON document. Syntax errors are returned as
// *json.SyntaxError so callers can map the offset back to a line.
// Trailing data after the document is rejected. Input that is not valid
// UTF-8 is rejected with *EncodingError, since encoding/json would replace
// the bad bytes with U+FFFD and the document could not be written back
// unchanged.
func Decode(data []byte) (*Value, error) {
	if offset := invalidUTF8(data); offset >= 0 {
		return nil, &EncodingError{Offset: int64(offset)}
	}

	// Full validation first so malformed input yields an offset-bearing error.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return decodeValue(dec)
}

// invalidUTF8 returns the offset of the first invalid sequence, or -1.
func invalidUTF8(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t), nil
	case string:
		return NewString(t), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.members = append(obj.members, Member{Key: key, Value: val})
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, val)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Encode serializes v with the given indent string ("" for compact output).
// HTML characters are not escaped and the output ends with a newline.
func Encode(v *Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler, writing v in compact form.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Decode(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func (v *Value) write(buf *bytes.Buffer) error {
	switch v.Kind() {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if v.number == "" {
			return fmt.Errorf("empty number literal")
		}
		buf.WriteString(string(v.number))
	case String:
		return writeString(buf, v.str)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// Interface converts v to plain Go values (map[string]any, []any, string,
// bool, int64, float64, nil) for serializers that do not know about Value.
// Object member order is lost.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Bool:
		return v.boolean
	case Number:
		if n, err := v.number.Int64(); err == nil {
			return n
		}
		if f, err := v.number.Float64(); err == nil {
			return f
		}
		return string(v.number)
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
