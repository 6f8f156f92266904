package xapi

import (
	"encoding/json"
	"math"

	dErrors "xapi/pkg/domain-errors"
)

// Score is the outcome of a scored activity.
type Score struct {
	scaled float64
	raw    *float64
	min    *float64
	max    *float64
}

// ScoreOption sets an optional Score component.
type ScoreOption func(*Score)

func WithRaw(raw float64) ScoreOption {
	return func(s *Score) { s.raw = &raw }
}

func WithMin(low float64) ScoreOption {
	return func(s *Score) { s.min = &low }
}

func WithMax(high float64) ScoreOption {
	return func(s *Score) { s.max = &high }
}

// NewScore validates a score. Out-of-range values are rejected, never
// clamped.
//
// Errors: returns CodeValidation when scaled is outside [-1, 1], when any
// component is NaN or infinite, when min > max, or when raw falls outside
// [min, max].
func NewScore(scaled float64, opts ...ScoreOption) (*Score, error) {
	s := &Score{scaled: scaled}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Score) validate() error {
	if !finite(s.scaled) || s.scaled < -1 || s.scaled > 1 {
		return dErrors.Validation("scaled", "scaled score must be within [-1, 1]")
	}
	for _, c := range []struct {
		field string
		v     *float64
	}{{"raw", s.raw}, {"min", s.min}, {"max", s.max}} {
		if c.v != nil && !finite(*c.v) {
			return dErrors.Validation(c.field, "score component must be a finite number")
		}
	}
	if s.min != nil && s.max != nil && *s.min > *s.max {
		return dErrors.Validation("min", "min score cannot exceed max score")
	}
	if s.raw != nil {
		if s.min != nil && *s.raw < *s.min {
			return dErrors.Validation("raw", "raw score cannot be below min score")
		}
		if s.max != nil && *s.raw > *s.max {
			return dErrors.Validation("raw", "raw score cannot exceed max score")
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (s *Score) Scaled() float64 {
	return s.scaled
}

func (s *Score) Raw() (float64, bool) {
	return deref(s.raw)
}

func (s *Score) Min() (float64, bool) {
	return deref(s.min)
}

func (s *Score) Max() (float64, bool) {
	return deref(s.max)
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

type scoreWire struct {
	Scaled float64  `json:"scaled"`
	Raw    *float64 `json:"raw,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

func (s *Score) MarshalJSON() ([]byte, error) {
	return marshal(scoreWire{Scaled: s.scaled, Raw: s.raw, Min: s.min, Max: s.max})
}

func decodeScore(raw json.RawMessage) (*Score, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	scaled, err := f.number("scaled")
	if err != nil {
		return nil, err
	}
	if scaled == nil {
		return nil, dErrors.MissingField("scaled")
	}
	var opts []ScoreOption
	for _, c := range []struct {
		key string
		opt func(float64) ScoreOption
	}{{"raw", WithRaw}, {"min", WithMin}, {"max", WithMax}} {
		v, err := f.number(c.key)
		if err != nil {
			return nil, err
		}
		if v != nil {
			opts = append(opts, c.opt(*v))
		}
	}
	return NewScore(*scaled, opts...)
}
