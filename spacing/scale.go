// Package spacing derives spacing size presets from a compact scale
// description.
package spacing

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"themec/tree"
)

// ErrInvalidScale is returned by Validate, Generate treats invalid scale as
// "no spacing presets".
var ErrInvalidScale = errors.New("invalid spacing scale")

const (
	mediumSlug    = 50
	slugStep      = 10
	maxBelowSlots = 4
	// above that number of steps sizes get numbered names
	semanticNamesLimit = 7
)

var unitRe = regexp.MustCompile(`^(%|[a-zA-Z]+)$`)

// Scale describes spacing sizes around a medium step.
type Scale struct {
	Operator   string  `yaml:"operator"`
	Increment  float64 `yaml:"increment"`
	Steps      float64 `yaml:"steps"`
	MediumStep float64 `yaml:"mediumStep"`
	Unit       string  `yaml:"unit"`
}

// Size is a single generated preset.
type Size struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
	Size string `yaml:"size"`
}

// Value returns size as preset entry.
func (s Size) Value() tree.Value {
	return tree.Object(tree.MapOf("name", s.Name, "slug", s.Slug, "size", s.Size))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks that scale could produce sizes. Zero steps is valid and
// means no scale.
func (s Scale) Validate() error {
	switch {
	case s.Operator != "+" && s.Operator != "*":
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidScale, s.Operator)
	case !finite(s.Increment) || s.Increment <= 0:
		return fmt.Errorf("%w: increment must be positive number", ErrInvalidScale)
	case !finite(s.MediumStep) || s.MediumStep <= 0:
		return fmt.Errorf("%w: medium step must be positive number", ErrInvalidScale)
	case !finite(s.Steps) || s.Steps < 0 || s.Steps != math.Trunc(s.Steps):
		return fmt.Errorf("%w: steps must be non-negative integer", ErrInvalidScale)
	case !unitRe.MatchString(s.Unit):
		return fmt.Errorf("%w: bad unit %q", ErrInvalidScale, s.Unit)
	}
	return nil
}

// FromTree reads scale from spacingScale settings node. Second value is false
// when node does not look like a scale at all.
func FromTree(v tree.Value) (Scale, bool) {
	if !v.IsMap() {
		return Scale{}, false
	}
	num := func(key string) float64 {
		item, ok := v.Get(key)
		if !ok {
			return math.NaN()
		}
		if n, ok := item.Number(); ok {
			return n
		}
		if s, ok := item.Str(); ok {
			if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return n
			}
		}
		return math.NaN()
	}
	str := func(key string) string {
		item, _ := v.Get(key)
		s, _ := item.Str()
		return s
	}
	return Scale{
		Operator:   str("operator"),
		Increment:  num("increment"),
		Steps:      num("steps"),
		MediumStep: num("mediumStep"),
		Unit:       str("unit"),
	}, true
}

// Generate produces sizes ordered from the smallest one. Invalid scale and
// scale with zero steps produce nil. Half of the remaining steps (rounded
// down) go below medium, but there are at most four of them (slugs 10 to 40)
// and none that would round to zero or less; the rest go above medium.
func Generate(s Scale) []Size {
	if err := s.Validate(); err != nil || s.Steps == 0 {
		return nil
	}
	steps := int(s.Steps)

	factor := s.Increment
	if s.Operator == "*" && factor < 1 {
		factor = 1 / factor
	}
	down := func(v float64) float64 {
		if s.Operator == "+" {
			return v - s.Increment
		}
		return v / factor
	}
	up := func(v float64) float64 {
		if s.Operator == "+" {
			return v + s.Increment
		}
		return v * factor
	}

	wantBelow := (steps - 1) / 2
	var below []float64
	for cur := s.MediumStep; len(below) < wantBelow && len(below) < maxBelowSlots; {
		cur = down(cur)
		if round(cur) <= 0 {
			break
		}
		below = append(below, cur)
	}
	above := steps - 1 - len(below)

	numbered := steps > semanticNamesLimit
	sizes := make([]Size, 0, steps)
	for i := len(below) - 1; i >= 0; i-- {
		sizes = append(sizes, Size{
			Name: name(i+1, "Small", numbered),
			Slug: strconv.Itoa(mediumSlug - (i+1)*slugStep),
			Size: format(below[i], s.Unit),
		})
	}
	sizes = append(sizes, Size{Name: "Medium", Slug: strconv.Itoa(mediumSlug), Size: format(s.MediumStep, s.Unit)})
	cur := s.MediumStep
	for i := 1; i <= above; i++ {
		cur = up(cur)
		sizes = append(sizes, Size{
			Name: name(i, "Large", numbered),
			Slug: strconv.Itoa(mediumSlug + i*slugStep),
			Size: format(cur, s.Unit),
		})
	}
	return sizes
}

// name returns name for the size dist steps away from medium.
func name(dist int, base string, numbered bool) string {
	switch {
	case dist == 1:
		return base
	case dist == 2:
		return "X-" + base
	case numbered:
		return strconv.Itoa(dist-1) + "X-" + base
	default:
		return strings.Repeat("X", dist-1) + "-" + base
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func format(v float64, unit string) string {
	return tree.FormatNumber(round(v)) + unit
}
