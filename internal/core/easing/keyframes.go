package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// NameCustom is the curve name stored alongside keyframes.
const NameCustom = "custom"

// ErrInvalidKey indicates a keyframe with a non-finite field.
var ErrInvalidKey = errors.New("invalid keyframe")

// Key is a single control point of a Keyframes curve.
type Key struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Keyframes is a piecewise cubic Hermite curve through a set of keys.
// Outside the first and last key the curve holds the end values.
type Keyframes struct {
	keys []Key
}

// NewKeyframes sorts the keys by time and builds a curve. With no keys the
// curve evaluates to 0 everywhere.
func NewKeyframes(keys ...Key) *Keyframes {
	sorted := append([]Key(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Keyframes{keys: sorted}
}

// Resolve builds a Keyframes curve when keys are given and otherwise looks
// up the built-in curve called name.
func Resolve(name string, keys []Key) (Curve, error) {
	if len(keys) > 0 {
		if err := ValidateKeys(keys); err != nil {
			return nil, err
		}
		return NewKeyframes(keys...), nil
	}
	return ByName(name)
}

// ValidateKeys rejects keys with NaN or infinite fields.
func ValidateKeys(keys []Key) error {
	for index, key := range keys {
		for _, value := range []float64{key.Time, key.Value, key.InTangent, key.OutTangent} {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("key %d: %w", index, ErrInvalidKey)
			}
		}
	}
	return nil
}

// Keys returns a copy of the control points.
func (curve *Keyframes) Keys() []Key {
	return append([]Key(nil), curve.keys...)
}

// Evaluate returns the curve value at u.
func (curve *Keyframes) Evaluate(u float64) float64 {
	count := len(curve.keys)
	if count == 0 {
		return 0
	}
	first := curve.keys[0]
	last := curve.keys[count-1]
	if count == 1 || u <= first.Time {
		return first.Value
	}
	if u >= last.Time {
		return last.Value
	}

	index := sort.Search(count, func(i int) bool {
		return curve.keys[i].Time > u
	})
	left := curve.keys[index-1]
	right := curve.keys[index]

	span := right.Time - left.Time
	if span <= 0 {
		return right.Value
	}
	t := (u - left.Time) / span
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*left.Value + h10*span*left.OutTangent + h01*right.Value + h11*span*right.InTangent
}
