package xapi

import (
	"bytes"
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// ExtensionEntry is one extension: an IRI key and a JSON-encoded value.
type ExtensionEntry struct {
	Key   string
	Value string
}

// Ext is shorthand for an ExtensionEntry. value is JSON text: `42`,
// `"text"` or `{"name":"Kilby"}`.
func Ext(key, value string) ExtensionEntry {
	return ExtensionEntry{Key: key, Value: value}
}

// Extensions is an IRI-keyed map of embedded JSON values. Values are held as
// compact JSON text and embedded as JSON nodes on the wire. The zero value
// is empty.
type Extensions struct {
	entries []extension
}

type extension struct {
	key   domain.IRI
	value string
}

// NewExtensions validates and compacts entries, keeping their order.
//
// Errors: returns CodeFormat for a key that is not an absolute IRI and
// CodeValidation for a value that is not valid JSON or a key given twice.
func NewExtensions(entries ...ExtensionEntry) (Extensions, error) {
	if len(entries) == 0 {
		return Extensions{}, nil
	}
	seen := make(map[domain.IRI]struct{}, len(entries))
	out := make([]extension, 0, len(entries))
	for _, e := range entries {
		key, err := domain.ParseIRI(e.Key)
		if err != nil {
			return Extensions{}, err
		}
		if _, dup := seen[key]; dup {
			return Extensions{}, dErrors.New(dErrors.CodeValidation, "duplicate extension key").WithValue(e.Key)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(e.Value)); err != nil {
			return Extensions{}, dErrors.Wrap(err, dErrors.CodeValidation, "extension value must be valid JSON").
				WithField(e.Key).WithValue(e.Value)
		}
		seen[key] = struct{}{}
		out = append(out, extension{key: key, value: compact.String()})
	}
	return Extensions{entries: out}, nil
}

func (x Extensions) Len() int {
	return len(x.entries)
}

// IsZero reports whether there are no extensions. Encoders omit empty maps.
func (x Extensions) IsZero() bool {
	return len(x.entries) == 0
}

// Get returns the JSON text stored under key.
func (x Extensions) Get(key string) (string, bool) {
	for _, e := range x.entries {
		if e.key.String() == key {
			return e.value, true
		}
	}
	return "", false
}

// Decode unmarshals the value stored under key into v.
func (x Extensions) Decode(key string, v any) error {
	raw, ok := x.Get(key)
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "extension not present").WithField(key)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeFormat, "extension value does not match target").WithField(key)
	}
	return nil
}

// Entries returns a copy of the entries in order.
func (x Extensions) Entries() []ExtensionEntry {
	if len(x.entries) == 0 {
		return nil
	}
	out := make([]ExtensionEntry, len(x.entries))
	for i, e := range x.entries {
		out[i] = ExtensionEntry{Key: e.key.String(), Value: e.value}
	}
	return out
}

func (x Extensions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range x.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(e.key.String())
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(e.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeExtensions(raw json.RawMessage) (Extensions, error) {
	var entries []ExtensionEntry
	index := make(map[string]int)
	err := walkObject(raw, func(key string, value json.RawMessage) error {
		if i, dup := index[key]; dup {
			entries[i].Value = string(value)
			return nil
		}
		index[key] = len(entries)
		entries = append(entries, ExtensionEntry{Key: key, Value: string(value)})
		return nil
	})
	if err != nil {
		return Extensions{}, err
	}
	return NewExtensions(entries...)
}
