package xapi

import (
	"encoding/json"
	"time"

	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/isoduration"
)

// Result is the measured outcome of a Statement.
type Result struct {
	score      *Score
	success    *bool
	completion *bool
	response   string
	duration   *time.Duration
	extensions Extensions
}

func (r *Result) Score() *Score                   { return r.score }
func (r *Result) Success() (bool, bool)           { return deref(r.success) }
func (r *Result) Completion() (bool, bool)        { return deref(r.completion) }
func (r *Result) Response() string                { return r.response }
func (r *Result) Duration() (time.Duration, bool) { return deref(r.duration) }
func (r *Result) Extensions() Extensions          { return r.extensions }

type resultWire struct {
	Score      *Score     `json:"score,omitempty"`
	Success    *bool      `json:"success,omitempty"`
	Completion *bool      `json:"completion,omitempty"`
	Response   string     `json:"response,omitempty"`
	Duration   string     `json:"duration,omitempty"`
	Extensions Extensions `json:"extensions,omitzero"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	w := resultWire{
		Score:      r.score,
		Success:    r.success,
		Completion: r.completion,
		Response:   r.response,
		Extensions: r.extensions,
	}
	if r.duration != nil {
		w.Duration = isoduration.Format(*r.duration)
	}
	return marshal(w)
}

// ResultBuilder accumulates a Result.
type ResultBuilder struct {
	score      *Score
	success    *bool
	completion *bool
	response   string
	duration   *time.Duration
	extensions []ExtensionEntry
}

func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{}
}

func (b *ResultBuilder) WithScore(s *Score) *ResultBuilder {
	b.score = s
	return b
}

func (b *ResultBuilder) WithSuccess(success bool) *ResultBuilder {
	b.success = &success
	return b
}

func (b *ResultBuilder) WithCompletion(completion bool) *ResultBuilder {
	b.completion = &completion
	return b
}

func (b *ResultBuilder) WithResponse(response string) *ResultBuilder {
	b.response = response
	return b
}

func (b *ResultBuilder) WithDuration(d time.Duration) *ResultBuilder {
	b.duration = &d
	return b
}

// AddExtension adds one extension. value is JSON text.
func (b *ResultBuilder) AddExtension(key, value string) *ResultBuilder {
	b.extensions = append(b.extensions, Ext(key, value))
	return b
}

func (b *ResultBuilder) WithExtensions(x Extensions) *ResultBuilder {
	b.extensions = append(b.extensions, x.Entries()...)
	return b
}

// Build validates the extensions and returns the Result.
func (b *ResultBuilder) Build() (*Result, error) {
	x, err := NewExtensions(b.extensions...)
	if err != nil {
		return nil, dErrors.AtPath(err, "extensions")
	}
	r := &Result{
		score:      b.score,
		success:    copyPtr(b.success),
		completion: copyPtr(b.completion),
		response:   b.response,
		duration:   copyPtr(b.duration),
		extensions: x,
	}
	return r, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func decodeResult(raw json.RawMessage) (*Result, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	b := NewResultBuilder()
	if r, ok := f.raw("score"); ok {
		s, err := decodeScore(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "score")
		}
		b.WithScore(s)
	}
	success, err := f.boolean("success")
	if err != nil {
		return nil, err
	}
	completion, err := f.boolean("completion")
	if err != nil {
		return nil, err
	}
	response, _, err := f.str("response")
	if err != nil {
		return nil, err
	}
	b.success, b.completion = success, completion
	b.WithResponse(response)

	dur, ok, err := f.str("duration")
	if err != nil {
		return nil, err
	}
	if ok {
		d, err := isoduration.Parse(dur)
		if err != nil {
			return nil, dErrors.AtPath(err, "duration")
		}
		b.WithDuration(d)
	}
	if r, ok := f.raw("extensions"); ok {
		x, err := decodeExtensions(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "extensions")
		}
		b.WithExtensions(x)
	}
	return b.Build()
}
