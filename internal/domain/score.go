package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Score is an optional validation score. The zero value is an absent score.
type Score struct {
	value float64
	set   bool
}

// NewScore wraps v as a present score; v is kept as-is, normalization
// happens on read.
func NewScore(v float64) Score {
	return Score{value: v, set: true}
}

// Raw returns the stored value and whether one is present
func (s Score) Raw() (float64, bool) {
	return s.value, s.set
}

// Normalized returns the score if it is a finite number in [0,100], else 0.
// Every display and aggregate goes through here.
func (s Score) Normalized() float64 {
	return NormalizeScore(s.value, s.set)
}

// NormalizeScore maps v to 0 unless present, finite, and within [0,100]
func NormalizeScore(v float64, present bool) float64 {
	if !present || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 || v > 100 {
		return 0
	}
	return v
}

// MarshalJSON writes null for absent or non-finite scores
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.set || math.IsNaN(s.value) || math.IsInf(s.value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON accepts a number, a numeric string, or null. Anything else
// decodes to an absent score rather than failing the whole record.
func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = NewScore(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			*s = NewScore(n)
		}
	}
	return nil
}
