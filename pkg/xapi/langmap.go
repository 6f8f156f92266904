package xapi

import (
	"bytes"
	"encoding/json"
	"io"

	dErrors "xapi/pkg/domain-errors"
)

// LanguageEntry is one translation in a LanguageMap.
type LanguageEntry struct {
	Language string
	Text     string
}

// Lang is shorthand for a LanguageEntry.
func Lang(language, text string) LanguageEntry {
	return LanguageEntry{Language: language, Text: text}
}

// LanguageMap maps language tags to translations. It keeps insertion order
// so encoded output is stable. The zero value is an empty map.
type LanguageMap struct {
	entries []LanguageEntry
}

// NewLanguageMap builds a map from entries.
//
// Errors: returns CodeValidation for an empty language tag or a tag given
// twice.
func NewLanguageMap(entries ...LanguageEntry) (LanguageMap, error) {
	if len(entries) == 0 {
		return LanguageMap{}, nil
	}
	seen := make(map[string]struct{}, len(entries))
	out := make([]LanguageEntry, 0, len(entries))
	for _, e := range entries {
		if e.Language == "" {
			return LanguageMap{}, dErrors.New(dErrors.CodeValidation, "language tag cannot be empty")
		}
		if _, dup := seen[e.Language]; dup {
			return LanguageMap{}, dErrors.New(dErrors.CodeValidation, "duplicate language tag").WithValue(e.Language)
		}
		seen[e.Language] = struct{}{}
		out = append(out, e)
	}
	return LanguageMap{entries: out}, nil
}

// MustLanguageMap is NewLanguageMap that panics on error. For literals.
func MustLanguageMap(entries ...LanguageEntry) LanguageMap {
	m, err := NewLanguageMap(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m LanguageMap) Len() int {
	return len(m.entries)
}

// IsZero reports whether the map is empty. Encoders omit empty maps.
func (m LanguageMap) IsZero() bool {
	return len(m.entries) == 0
}

// Get returns the translation for language.
func (m LanguageMap) Get(language string) (string, bool) {
	for _, e := range m.entries {
		if e.Language == language {
			return e.Text, true
		}
	}
	return "", false
}

// Entries returns a copy of the entries in insertion order.
func (m LanguageMap) Entries() []LanguageEntry {
	if len(m.entries) == 0 {
		return nil
	}
	out := make([]LanguageEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m LanguageMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(e.Language)
		if err != nil {
			return nil, err
		}
		v, err := marshal(e.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeLanguageMap(raw json.RawMessage) (LanguageMap, error) {
	var entries []LanguageEntry
	index := make(map[string]int)
	err := walkObject(raw, func(key string, value json.RawMessage) error {
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return dErrors.Format(key, string(value), "translation must be a string")
		}
		if i, dup := index[key]; dup {
			entries[i].Text = text
			return nil
		}
		index[key] = len(entries)
		entries = append(entries, LanguageEntry{Language: key, Text: text})
		return nil
	})
	if err != nil {
		return LanguageMap{}, err
	}
	return NewLanguageMap(entries...)
}

// walkObject visits the members of a JSON object in document order.
func walkObject(raw json.RawMessage, visit func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeFormat, "expected a JSON object")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return dErrors.New(dErrors.CodeFormat, "expected a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeFormat, "malformed JSON object")
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return dErrors.Wrap(err, dErrors.CodeFormat, "malformed JSON object").WithField(key)
		}
		if err := visit(key, value); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return dErrors.Wrap(err, dErrors.CodeFormat, "malformed JSON object")
	}
	return nil
}
