// Package easing maps normalized phase progress to eased progress.
package easing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCurve indicates a curve name that has no registered curve.
var ErrUnknownCurve = errors.New("unknown easing curve")

// Curve maps normalized progress u in [0,1] to eased progress.
// The result is not required to stay within [0,1].
type Curve interface {
	Evaluate(u float64) float64
}

// Func adapts a plain function to Curve.
type Func func(u float64) float64

// Evaluate calls fn.
func (fn Func) Evaluate(u float64) float64 {
	return fn(u)
}

// Names of the built-in curves as stored in settings files.
const (
	NameEaseInOut = "ease_in_out"
	NameLinear    = "linear"
	NameEaseIn    = "ease_in"
	NameEaseOut   = "ease_out"
)

// EaseInOut is the cubic Hermite curve from (0,0) to (1,1) with zero
// tangents at both ends.
func EaseInOut() Curve {
	return Func(func(u float64) float64 {
		u = clamp01(u)
		return u * u * (3 - 2*u)
	})
}

// Linear returns u unchanged.
func Linear() Curve {
	return Func(func(u float64) float64 {
		return u
	})
}

// EaseIn starts with a zero tangent and ends with slope 2.
func EaseIn() Curve {
	return Func(func(u float64) float64 {
		u = clamp01(u)
		return u * u
	})
}

// EaseOut starts with slope 2 and ends with a zero tangent.
func EaseOut() Curve {
	return Func(func(u float64) float64 {
		u = clamp01(u)
		return u * (2 - u)
	})
}

var builtins = map[string]func() Curve{
	NameEaseInOut: EaseInOut,
	NameLinear:    Linear,
	NameEaseIn:    EaseIn,
	NameEaseOut:   EaseOut,
}

// ByName returns a built-in curve. Names are case-insensitive; an empty
// name yields EaseInOut.
func ByName(name string) (Curve, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return EaseInOut(), nil
	}
	factory, ok := builtins[key]
	if !ok {
		return nil, fmt.Errorf("curve %q: %w", name, ErrUnknownCurve)
	}
	return factory(), nil
}

// Names lists the built-in curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
