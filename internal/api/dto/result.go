package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result is the output record of one command. Exactly one of Error and Body
// is set. Body must encode as a JSON object; its fields follow the header.
type Result struct {
	Command   Kind
	Username  string
	Timestamp string
	Error     string
	Body      any
}

// ErrorResult addresses message to the command's user and timestamp.
func ErrorResult(cmd Command, message string) *Result {
	return &Result{Command: cmd.Kind, Username: cmd.Username, Timestamp: cmd.Timestamp, Error: message}
}

// BodyResult wraps a successful payload.
func BodyResult(cmd Command, body any) *Result {
	return &Result{Command: cmd.Kind, Username: cmd.Username, Timestamp: cmd.Timestamp, Body: body}
}

// MarshalJSON writes command, username and timestamp first, then either the
// error or the body's fields in declaration order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range []struct {
		key   string
		value string
	}{{"command", string(r.Command)}, {"username", r.Username}, {"timestamp", r.Timestamp}} {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(&buf, field.key, field.value); err != nil {
			return nil, err
		}
	}

	switch {
	case r.Error != "":
		buf.WriteByte(',')
		if err := writeField(&buf, "error", r.Error); err != nil {
			return nil, err
		}
	case r.Body != nil:
		body, err := Marshal(r.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.TrimSpace(body)
		if len(body) < 2 || body[0] != '{' {
			return nil, fmt.Errorf("result body for %s is not an object", r.Command)
		}
		if inner := body[1 : len(body)-1]; len(bytes.TrimSpace(inner)) > 0 {
			buf.WriteByte(',')
			buf.Write(inner)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := Marshal(key)
	if err != nil {
		return err
	}
	v, err := Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// Marshal encodes v without HTML escaping and without a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decimal is a float rendered with at least one fractional digit, so 15
// encodes as 15.0.
type Decimal float64

func (d Decimal) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("unsupported decimal value %v", f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}
