package lang

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON implements json.Marshaler for Document.
// Entries are written in document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.appendJSON(nil)
}

// MarshalJSON implements json.Marshaler for Value.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

func (d *Document) appendJSON(buf []byte) ([]byte, error) {
	buf = append(buf, '{')

	i := 0
	for key, v := range d.All() {
		if i > 0 {
			buf = append(buf, ',')
		}

		i++

		var err error

		if buf, err = appendJSONString(buf, key); err != nil {
			return nil, err
		}

		buf = append(buf, ':')

		if buf, err = v.appendJSON(buf); err != nil {
			return nil, err
		}
	}

	return append(buf, '}'), nil
}

func (v Value) appendJSON(buf []byte) ([]byte, error) {
	switch v.kind {
	case KindFloat:
		return append(buf, formatFloat(v.f)...), nil

	case KindString:
		return appendJSONString(buf, v.s)

	case KindArray:
		buf = append(buf, '[')

		for i, elem := range v.a {
			if i > 0 {
				buf = append(buf, ',')
			}

			var err error
			if buf, err = elem.appendJSON(buf); err != nil {
				return nil, err
			}
		}

		return append(buf, ']'), nil

	default:
		return strconv.AppendInt(buf, v.i, 10), nil
	}
}

// appendJSONString appends s as a JSON string literal, escaping quotes,
// backslashes, and control characters.
func appendJSONString(buf []byte, s string) ([]byte, error) {
	var enc bytes.Buffer

	e := json.NewEncoder(&enc)
	e.SetEscapeHTML(false)

	if err := e.Encode(s); err != nil {
		return nil, err
	}

	return append(buf, bytes.TrimRight(enc.Bytes(), "\n")...), nil
}
