// Package isoduration converts between time.Duration and the ISO-8601
// duration strings used by xAPI results ("PT1H", "PT0.25S", "P1DT2H").
//
// Calendar components have no fixed length, so decoding uses fixed
// approximations: a year is 365 days, a month 30 days, a week 7 days.
// Encoding only emits days and smaller, so Format output always
// round-trips exactly through Parse.
package isoduration

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	dErrors "xapi/pkg/domain-errors"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

var pattern = regexp.MustCompile(`^(-)?P` +
	`(?:(\d+(?:[.,]\d+)?)Y)?` +
	`(?:(\d+(?:[.,]\d+)?)M)?` +
	`(?:(\d+(?:[.,]\d+)?)W)?` +
	`(?:(\d+(?:[.,]\d+)?)D)?` +
	`(?:T` +
	`(?:(\d+(?:[.,]\d+)?)H)?` +
	`(?:(\d+(?:[.,]\d+)?)M)?` +
	`(?:(\d+(?:[.,]\d+)?)S)?` +
	`)?$`)

// units lines up with the capture groups after the sign.
var units = []time.Duration{year, month, week, day, time.Hour, time.Minute, time.Second}

// Format encodes d as an ISO-8601 duration. Zero is "PT0S"; negative
// durations carry a leading "-".
func Format(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}

	var b strings.Builder
	// math.MinInt64 has no positive counterpart, so work in uint64.
	u := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		u = -u
	}
	b.WriteByte('P')

	days := u / uint64(day)
	u %= uint64(day)
	if days > 0 {
		b.WriteString(strconv.FormatUint(days, 10))
		b.WriteByte('D')
	}
	if u == 0 {
		return b.String()
	}

	b.WriteByte('T')
	hours := u / uint64(time.Hour)
	u %= uint64(time.Hour)
	minutes := u / uint64(time.Minute)
	u %= uint64(time.Minute)
	if hours > 0 {
		b.WriteString(strconv.FormatUint(hours, 10))
		b.WriteByte('H')
	}
	if minutes > 0 {
		b.WriteString(strconv.FormatUint(minutes, 10))
		b.WriteByte('M')
	}
	if u > 0 {
		secs := u / uint64(time.Second)
		frac := u % uint64(time.Second)
		b.WriteString(strconv.FormatUint(secs, 10))
		if frac > 0 {
			f := strconv.FormatUint(frac+uint64(time.Second), 10)[1:] // zero-padded to 9 digits
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(f, "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}

// Parse decodes an ISO-8601 duration. Fractions finer than a nanosecond are
// rounded to the nearest nanosecond.
//
// Errors: returns CodeFormat when s is not an ISO-8601 duration or does not
// fit in a time.Duration.
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil || strings.HasSuffix(s, "T") || !hasComponent(m[2:]) {
		return 0, dErrors.New(dErrors.CodeFormat, "not an ISO-8601 duration").WithValue(s)
	}

	total := new(big.Rat)
	for i, part := range m[2:] {
		if part == "" {
			continue
		}
		v, ok := new(big.Rat).SetString(strings.Replace(part, ",", ".", 1))
		if !ok {
			return 0, dErrors.New(dErrors.CodeFormat, "not an ISO-8601 duration").WithValue(s)
		}
		total.Add(total, v.Mul(v, new(big.Rat).SetInt64(int64(units[i]))))
	}

	ns := roundRat(total)
	if m[1] == "-" {
		ns.Neg(ns)
	}
	if !ns.IsInt64() {
		return 0, dErrors.New(dErrors.CodeFormat, "duration out of range").WithValue(s)
	}
	return time.Duration(ns.Int64()), nil
}

func hasComponent(parts []string) bool {
	for _, p := range parts {
		if p != "" {
			return true
		}
	}
	return false
}

// roundRat rounds a non-negative rational half-up to an integer.
func roundRat(r *big.Rat) *big.Int {
	num := new(big.Int).Mul(r.Num(), big.NewInt(2))
	num.Add(num, r.Denom())
	den := new(big.Int).Mul(r.Denom(), big.NewInt(2))
	return new(big.Int).Quo(num, den)
}
