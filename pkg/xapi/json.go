package xapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	dErrors "xapi/pkg/domain-errors"
)

// marshal encodes v without HTML escaping so IRIs with query strings keep
// their literal "&".
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshalString(v any, pretty bool) (string, error) {
	data, err := marshal(v)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode")
	}
	if !pretty {
		return string(data), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to indent")
	}
	return out.String(), nil
}

// checkSyntax reports malformed input as CodeParse before any structural
// decoding starts.
func checkSyntax(data []byte) error {
	if !json.Valid(data) {
		return dErrors.New(dErrors.CodeParse, "input is not valid JSON")
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// fields is a decoded JSON object whose members are still raw. An explicit
// null is treated the same as an absent member.
type fields map[string]json.RawMessage

func readFields(raw json.RawMessage) (fields, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, dErrors.New(dErrors.CodeFormat, "expected a JSON object")
	}
	var f fields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeFormat, "expected a JSON object")
	}
	return f, nil
}

func (f fields) raw(key string) (json.RawMessage, bool) {
	r, ok := f[key]
	if !ok || isNull(r) {
		return nil, false
	}
	return r, true
}

func (f fields) has(key string) bool {
	_, ok := f.raw(key)
	return ok
}

func (f fields) object(key string) (fields, bool, error) {
	r, ok := f.raw(key)
	if !ok {
		return nil, false, nil
	}
	obj, err := readFields(r)
	if err != nil {
		return nil, true, dErrors.AtPath(err, key)
	}
	return obj, true, nil
}

func (f fields) str(key string) (string, bool, error) {
	r, ok := f.raw(key)
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(r, &s); err != nil {
		return "", true, dErrors.Format(key, string(r), "expected a string")
	}
	return s, true, nil
}

func (f fields) requiredStr(key string) (string, error) {
	s, ok, err := f.str(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", dErrors.MissingField(key)
	}
	return s, nil
}

func (f fields) boolean(key string) (*bool, error) {
	r, ok := f.raw(key)
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(r, &b); err != nil {
		return nil, dErrors.Format(key, string(r), "expected a boolean")
	}
	return &b, nil
}

func (f fields) number(key string) (*float64, error) {
	r, ok := f.raw(key)
	if !ok {
		return nil, nil
	}
	var n float64
	if err := json.Unmarshal(r, &n); err != nil {
		return nil, dErrors.Format(key, string(r), "expected a number")
	}
	return &n, nil
}

func (f fields) integer(key string) (*int64, error) {
	r, ok := f.raw(key)
	if !ok {
		return nil, nil
	}
	var n int64
	if err := json.Unmarshal(r, &n); err != nil {
		return nil, dErrors.Format(key, string(r), "expected an integer")
	}
	return &n, nil
}

func (f fields) timestamp(key string) (*time.Time, error) {
	s, ok, err := f.str(key)
	if err != nil || !ok {
		return nil, err
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return nil, dErrors.AtPath(err, key)
	}
	return &t, nil
}

// array returns the raw elements of an array member.
func (f fields) array(key string) ([]json.RawMessage, bool, error) {
	r, ok := f.raw(key)
	if !ok {
		return nil, false, nil
	}
	var items []json.RawMessage
	if !isArray(r) {
		return nil, true, dErrors.Format(key, "", "expected an array")
	}
	if err := json.Unmarshal(r, &items); err != nil {
		return nil, true, dErrors.Wrap(err, dErrors.CodeFormat, "expected an array").WithField(key)
	}
	return items, true, nil
}

// decodeList decodes every element of an array member. Element errors are
// reported at key[i].
func decodeList[T any](f fields, key string, decode func(json.RawMessage) (T, error)) ([]T, error) {
	items, ok, err := f.array(key)
	if err != nil || !ok {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, dErrors.AtPath(err, indexPath(key, i))
		}
		out = append(out, v)
	}
	return out, nil
}

func indexPath(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeFormat, "expected an RFC 3339 timestamp").WithValue(s)
	}
	return t.UTC(), nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
