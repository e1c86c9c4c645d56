// Package motion animates dom elements against a clock.Scheduler: eased
// tweens, one-shot scroll triggers, reveal rules, and the counter and bar
// drivers of the skills section.
package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float64) float64

// Linear is the identity ease.
func Linear(p float64) float64 { return p }

func powerIn(power float64) Ease {
	return func(p float64) float64 { return math.Pow(p, power) }
}

func powerOut(power float64) Ease {
	return func(p float64) float64 { return 1 - math.Pow(1-p, power) }
}

func powerInOut(power float64) Ease {
	return func(p float64) float64 {
		if p < 0.5 {
			return math.Pow(2*p, power) / 2
		}
		return 1 - math.Pow(2*(1-p), power)/2
	}
}

// BackOut overshoots past 1 before settling; s controls the overshoot.
func BackOut(s float64) Ease {
	return func(p float64) float64 {
		q := p - 1
		return q*q*((s+1)*q+s) + 1
	}
}

const defaultBackOvershoot = 1.70158

// ParseEase resolves eases by name: "none", "power1".."power4" with ".in",
// ".out" or ".inOut", and "back.out" with an optional overshoot such as
// "back.out(1.7)". An empty name is "power1.out".
func ParseEase(name string) (Ease, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "power1.out"
	}
	if name == "none" || name == "linear" {
		return Linear, nil
	}

	base, arg := name, ""
	if i := strings.IndexByte(name, '('); i >= 0 {
		if !strings.HasSuffix(name, ")") {
			return nil, fmt.Errorf("ease %q: missing ')'", name)
		}
		base, arg = name[:i], name[i+1:len(name)-1]
	}

	family, kind, ok := strings.Cut(base, ".")
	if !ok {
		kind = "out"
	}

	if family == "back" {
		s := defaultBackOvershoot
		if arg != "" {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("ease %q: bad overshoot: %w", name, err)
			}
			s = v
		}
		if kind != "out" {
			return nil, fmt.Errorf("ease %q: only back.out is supported", name)
		}
		return BackOut(s), nil
	}

	if !strings.HasPrefix(family, "power") {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(family, "power"))
	if err != nil || n < 0 || n > 4 {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	power := float64(n + 1)
	switch kind {
	case "in":
		return powerIn(power), nil
	case "out":
		return powerOut(power), nil
	case "inOut":
		return powerInOut(power), nil
	}
	return nil, fmt.Errorf("unknown ease %q", name)
}

// MustEase is ParseEase for names known at compile time.
func MustEase(name string) Ease {
	e, err := ParseEase(name)
	if err != nil {
		panic(err)
	}
	return e
}
