package xapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "xapi/pkg/domain-errors"
)

func TestLanguageMap(t *testing.T) {
	t.Run("keeps insertion order on the wire", func(t *testing.T) {
		m, err := NewLanguageMap(Lang("fr-FR", "envoyé"), Lang("en-US", "sent"), Lang("de-DE", "gesendet"))
		require.NoError(t, err)

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"fr-FR":"envoyé","en-US":"sent","de-DE":"gesendet"}`, string(data))
	})

	t.Run("duplicate tag is an error, not a merge", func(t *testing.T) {
		_, err := NewLanguageMap(Lang("en-US", "sent"), Lang("en-US", "posted"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("empty tag is rejected", func(t *testing.T) {
		_, err := NewLanguageMap(Lang("", "sent"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("no entries is the zero map", func(t *testing.T) {
		m, err := NewLanguageMap()
		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.Equal(t, LanguageMap{}, m)
	})

	t.Run("entries are copied out", func(t *testing.T) {
		m := MustLanguageMap(Lang("en-US", "sent"))
		entries := m.Entries()
		entries[0].Text = "changed"

		got, ok := m.Get("en-US")
		require.True(t, ok)
		assert.Equal(t, "sent", got)
	})
}

func TestDecodeLanguageMap(t *testing.T) {
	t.Run("preserves document order", func(t *testing.T) {
		m, err := decodeLanguageMap(json.RawMessage(`{"zh-CN":"发送","en-US":"sent"}`))
		require.NoError(t, err)
		assert.Equal(t, []LanguageEntry{Lang("zh-CN", "发送"), Lang("en-US", "sent")}, m.Entries())
	})

	t.Run("duplicate wire keys keep the last value", func(t *testing.T) {
		m, err := decodeLanguageMap(json.RawMessage(`{"en-US":"sent","fr-FR":"envoyé","en-US":"posted"}`))
		require.NoError(t, err)
		assert.Equal(t, []LanguageEntry{Lang("en-US", "posted"), Lang("fr-FR", "envoyé")}, m.Entries())
	})

	t.Run("non-string translation", func(t *testing.T) {
		_, err := decodeLanguageMap(json.RawMessage(`{"en-US":42}`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
		assert.Equal(t, "en-US", dErrors.FieldOf(err))
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := decodeLanguageMap(json.RawMessage(`["en-US"]`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("empty object decodes to the zero map", func(t *testing.T) {
		m, err := decodeLanguageMap(json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})
}

func TestExtensions(t *testing.T) {
	const key = "http://example.com/profiles/meetings/extension/attendee"

	t.Run("object values are embedded as nodes", func(t *testing.T) {
		x, err := NewExtensions(Ext(key, `{"name":"Kilby"}`))
		require.NoError(t, err)

		data, err := json.Marshal(x)
		require.NoError(t, err)
		assert.JSONEq(t, `{"`+key+`":{"name":"Kilby"}}`, string(data))
		assert.NotContains(t, string(data), `\"`)
	})

	t.Run("scalars are embedded as scalars", func(t *testing.T) {
		x, err := NewExtensions(
			Ext("http://example.com/ext/count", `42`),
			Ext("http://example.com/ext/label", `"text"`),
			Ext("http://example.com/ext/tags", `["a","b"]`),
		)
		require.NoError(t, err)

		data, err := json.Marshal(x)
		require.NoError(t, err)
		assert.Equal(t,
			`{"http://example.com/ext/count":42,"http://example.com/ext/label":"text","http://example.com/ext/tags":["a","b"]}`,
			string(data))
	})

	t.Run("decoded object value parses back to the same structure", func(t *testing.T) {
		x, err := decodeExtensions(json.RawMessage(`{"` + key + `": { "name" : "Kilby" }}`))
		require.NoError(t, err)

		raw, ok := x.Get(key)
		require.True(t, ok)
		assert.Equal(t, `{"name":"Kilby"}`, raw)

		var v map[string]string
		require.NoError(t, x.Decode(key, &v))
		assert.Equal(t, map[string]string{"name": "Kilby"}, v)
	})

	t.Run("values are compacted at construction", func(t *testing.T) {
		x, err := NewExtensions(Ext(key, "{ \"name\" :\n \"Kilby\" }"))
		require.NoError(t, err)
		raw, _ := x.Get(key)
		assert.Equal(t, `{"name":"Kilby"}`, raw)
	})

	t.Run("relative key", func(t *testing.T) {
		_, err := NewExtensions(Ext("attendee", `1`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("value that is not JSON", func(t *testing.T) {
		_, err := NewExtensions(Ext(key, `Kilby`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := NewExtensions(Ext(key, `1`), Ext(key, `2`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("decode rejects relative keys", func(t *testing.T) {
		_, err := decodeExtensions(json.RawMessage(`{"attendee":1}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("decode into a missing key", func(t *testing.T) {
		var v int
		err := Extensions{}.Decode(key, &v)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		scaled  float64
		opts    []ScoreOption
		wantErr string
	}{
		{name: "scaled above range", scaled: 1.5, wantErr: "scaled"},
		{name: "scaled below range", scaled: -1.01, wantErr: "scaled"},
		{name: "raw above max", scaled: 0.5, opts: []ScoreOption{WithRaw(10), WithMin(0), WithMax(5)}, wantErr: "raw"},
		{name: "raw below min", scaled: 0.5, opts: []ScoreOption{WithRaw(-1), WithMin(0)}, wantErr: "raw"},
		{name: "min above max", scaled: 0.5, opts: []ScoreOption{WithMin(6), WithMax(5)}, wantErr: "min"},
		{name: "raw within bounds", scaled: 0.5, opts: []ScoreOption{WithRaw(3), WithMin(0), WithMax(5)}},
		{name: "boundaries are inclusive", scaled: -1, opts: []ScoreOption{WithRaw(5), WithMin(5), WithMax(5)}},
		{name: "raw without bounds", scaled: 1, opts: []ScoreOption{WithRaw(1000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScore(tt.scaled, tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, s)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				assert.Equal(t, tt.wantErr, dErrors.FieldOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.scaled, s.Scaled())
		})
	}

	t.Run("accessors report absence", func(t *testing.T) {
		s, err := NewScore(0.25, WithMax(100))
		require.NoError(t, err)

		_, ok := s.Raw()
		assert.False(t, ok)
		_, ok = s.Min()
		assert.False(t, ok)
		high, ok := s.Max()
		assert.True(t, ok)
		assert.Equal(t, 100.0, high)
	})

	t.Run("wire form omits absent components", func(t *testing.T) {
		s, err := NewScore(0.5, WithRaw(3))
		require.NoError(t, err)
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"scaled":0.5,"raw":3}`, string(data))
	})

	t.Run("decode requires scaled", func(t *testing.T) {
		_, err := decodeScore(json.RawMessage(`{"raw":3}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMissingField))
		assert.Equal(t, "scaled", dErrors.FieldOf(err))
	})

	t.Run("decode applies the same bounds", func(t *testing.T) {
		_, err := decodeScore(json.RawMessage(`{"scaled":0.5,"raw":10,"min":0,"max":5}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
