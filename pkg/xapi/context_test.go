package xapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

func TestContextBuilder(t *testing.T) {
	t.Run("context activities absent unless a list is non-empty", func(t *testing.T) {
		c, err := NewContextBuilder().WithPlatform("web").Build()
		require.NoError(t, err)
		assert.Nil(t, c.ContextActivities())

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"platform":"web"}`, string(data))
	})

	t.Run("lists are materialized together", func(t *testing.T) {
		a, err := NewActivityBuilder("http://example.com/a").Build()
		require.NoError(t, err)
		c, err := NewContextBuilder().AddGrouping(a).Build()
		require.NoError(t, err)

		ca := c.ContextActivities()
		require.NotNil(t, ca)
		assert.Equal(t, []*Activity{a}, ca.Grouping())
		assert.Nil(t, ca.Parent())

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Equal(t, `{"contextActivities":{"grouping":[{"objectType":"Activity","id":"http://example.com/a"}]}}`, string(data))
	})

	t.Run("nil activity", func(t *testing.T) {
		_, err := NewContextBuilder().AddOther(nil).Build()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "contextActivities.other[0]", dErrors.FieldOf(err))
	})

	t.Run("typed-nil instructor is dropped", func(t *testing.T) {
		for _, instructor := range []Actor{(*Agent)(nil), (*Group)(nil)} {
			c, err := NewContextBuilder().WithInstructor(instructor).WithPlatform("web").Build()
			require.NoError(t, err)
			assert.Nil(t, c.Instructor())

			data, err := json.Marshal(c)
			require.NoError(t, err)
			assert.Equal(t, `{"platform":"web"}`, string(data))
		}
	})

	t.Run("bad extension value", func(t *testing.T) {
		_, err := NewContextBuilder().AddExtension("http://example.com/ext", `{`).Build()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("registration and statement reference", func(t *testing.T) {
		reg := domain.NewRegistrationID()
		ref := domain.NewStatementID()
		c, err := NewContextBuilder().WithRegistration(reg).WithStatementReference(ref).Build()
		require.NoError(t, err)

		got, ok := c.Registration()
		assert.True(t, ok)
		assert.Equal(t, reg, got)
		assert.Equal(t, ref, c.Statement().ID())
	})
}

func TestDecodeContext(t *testing.T) {
	t.Run("single activity objects are accepted as lists", func(t *testing.T) {
		c, err := decodeContext(json.RawMessage(`{
			"contextActivities":{
				"parent":{"id":"http://example.com/p"},
				"category":[{"objectType":"Activity","id":"http://example.com/c1"},{"id":"http://example.com/c2"}]
			}}`))
		require.NoError(t, err)

		ca := c.ContextActivities()
		require.NotNil(t, ca)
		require.Len(t, ca.Parent(), 1)
		assert.Equal(t, domain.IRI("http://example.com/p"), ca.Parent()[0].ID())
		assert.Len(t, ca.Category(), 2)

		data, err := json.Marshal(c)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"parent":[{`)
	})

	t.Run("empty lists leave context activities absent", func(t *testing.T) {
		c, err := decodeContext(json.RawMessage(`{"contextActivities":{"parent":[],"other":[]}}`))
		require.NoError(t, err)
		assert.Nil(t, c.ContextActivities())
	})

	t.Run("list element errors carry their index", func(t *testing.T) {
		_, err := decodeContext(json.RawMessage(`{"contextActivities":{"other":[{"id":"http://example.com/ok"},{"objectType":"StatementRef"}]}}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnsupportedType))
		assert.Equal(t, "contextActivities.other[1].objectType", dErrors.FieldOf(err))
	})

	t.Run("instructor can be a group", func(t *testing.T) {
		c, err := decodeContext(json.RawMessage(`{"instructor":{"objectType":"Group","member":[{"mbox":"mailto:a@example.com"}]}}`))
		require.NoError(t, err)
		assert.Equal(t, ObjectTypeGroup, c.Instructor().ObjectType())
	})

	t.Run("bad registration", func(t *testing.T) {
		_, err := decodeContext(json.RawMessage(`{"registration":"abc"}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
		assert.Equal(t, "registration", dErrors.FieldOf(err))
	})

	t.Run("statement must be a reference", func(t *testing.T) {
		_, err := decodeContext(json.RawMessage(`{"statement":{"objectType":"Activity","id":"http://example.com/a"}}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnsupportedType))
		assert.Equal(t, "statement.objectType", dErrors.FieldOf(err))
	})
}

func TestResult(t *testing.T) {
	t.Run("empty result encodes as an empty object", func(t *testing.T) {
		r, err := NewResultBuilder().Build()
		require.NoError(t, err)
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("fields in wire order", func(t *testing.T) {
		score, err := NewScore(1)
		require.NoError(t, err)
		r, err := NewResultBuilder().
			WithDuration(time.Hour).
			WithResponse("yes").
			WithCompletion(true).
			WithSuccess(false).
			WithScore(score).
			Build()
		require.NoError(t, err)

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, `{"score":{"scaled":1},"success":false,"completion":true,"response":"yes","duration":"PT1H"}`, string(data))

		success, ok := r.Success()
		assert.True(t, ok)
		assert.False(t, success)
		d, ok := r.Duration()
		assert.True(t, ok)
		assert.Equal(t, time.Hour, d)
	})

	t.Run("builder changes after build do not leak", func(t *testing.T) {
		b := NewResultBuilder().WithSuccess(true)
		r, err := b.Build()
		require.NoError(t, err)
		b.WithSuccess(false)

		success, _ := r.Success()
		assert.True(t, success)
	})

	t.Run("decode rejects wrong types", func(t *testing.T) {
		_, err := decodeResult(json.RawMessage(`{"success":"yes"}`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
		assert.Equal(t, "success", dErrors.FieldOf(err))
	})
}

func TestAttachment(t *testing.T) {
	display := MustLanguageMap(Lang("en-US", "Certificate"))

	t.Run("wire form", func(t *testing.T) {
		a, err := NewAttachment("http://example.com/usage", display, "text/plain", 12, "abc",
			WithAttachmentDescription(MustLanguageMap(Lang("en-US", "A file"))))
		require.NoError(t, err)

		data, err := json.Marshal(a)
		require.NoError(t, err)
		assert.Equal(t, `{"usageType":"http://example.com/usage","display":{"en-US":"Certificate"},`+
			`"description":{"en-US":"A file"},"contentType":"text/plain","length":12,"sha2":"abc"}`, string(data))
	})

	tests := []struct {
		name        string
		usageType   string
		display     LanguageMap
		contentType string
		length      int64
		sha2        string
		field       string
	}{
		{"relative usage type", "usage", display, "text/plain", 1, "abc", "usageType"},
		{"empty display", "http://example.com/u", LanguageMap{}, "text/plain", 1, "abc", "display"},
		{"empty content type", "http://example.com/u", display, "", 1, "abc", "contentType"},
		{"negative length", "http://example.com/u", display, "text/plain", -1, "abc", "length"},
		{"empty sha2", "http://example.com/u", display, "text/plain", 1, "", "sha2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAttachment(tt.usageType, tt.display, tt.contentType, tt.length, tt.sha2)
			require.Error(t, err)
			assert.Equal(t, tt.field, dErrors.FieldOf(err))
		})
	}

	t.Run("relative file url", func(t *testing.T) {
		_, err := NewAttachment("http://example.com/u", display, "text/plain", 1, "abc", WithFileURL("cert.pdf"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
		assert.Equal(t, "fileUrl", dErrors.FieldOf(err))
	})
}
