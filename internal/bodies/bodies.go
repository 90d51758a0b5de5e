// Package bodies provides ordered reference-body tables for Tisserand curves.
package bodies

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetelements"

	"github.com/san-kum/tisserand/internal/tisserand"
)

const (
	SetDefault   = "default"
	SetExtended  = "extended"
	SetEphemeris = "ephemeris"
)

var (
	ErrUnknownSet   = errors.New("bodies: unknown body set")
	ErrEmptyTable   = errors.New("bodies: empty table")
	ErrDuplicate    = errors.New("bodies: duplicate entry")
	ErrInvalidEpoch = errors.New("bodies: invalid epoch")
)

// Semi-major axes in AU, rounded as in common planetary fact sheets.
var defaultTable = []tisserand.ReferenceBody{
	{Name: "Mercury", Axis: 0.387},
	{Name: "Venus", Axis: 0.723},
	{Name: "Earth", Axis: 1.000},
	{Name: "Mars", Axis: 1.524},
	{Name: "Jupiter", Axis: 5.203},
	{Name: "Saturn", Axis: 9.537},
}

var outerTable = []tisserand.ReferenceBody{
	{Name: "Uranus", Axis: 19.191},
	{Name: "Neptune", Axis: 30.069},
}

var planets = []struct {
	name string
	id   int
}{
	{"Mercury", planetelements.Mercury},
	{"Venus", planetelements.Venus},
	{"Earth", planetelements.Earth},
	{"Mars", planetelements.Mars},
	{"Jupiter", planetelements.Jupiter},
	{"Saturn", planetelements.Saturn},
	{"Uranus", planetelements.Uranus},
	{"Neptune", planetelements.Neptune},
}

// Default returns the six-planet table Mercury through Saturn.
func Default() []tisserand.ReferenceBody {
	return clone(defaultTable)
}

// Extended returns Default followed by Uranus and Neptune.
func Extended() []tisserand.ReferenceBody {
	return append(clone(defaultTable), outerTable...)
}

// Ephemeris returns Mercury through Neptune with semi-major axes taken from
// the mean orbital elements at epoch.
func Ephemeris(epoch time.Time) ([]tisserand.ReferenceBody, error) {
	if epoch.IsZero() {
		return nil, fmt.Errorf("%w: zero time", ErrInvalidEpoch)
	}
	jde := julian.TimeToJD(epoch)

	out := make([]tisserand.ReferenceBody, len(planets))
	for i, p := range planets {
		var el planetelements.Elements
		planetelements.Mean(p.id, jde, &el)
		out[i] = tisserand.ReferenceBody{Name: p.name, Axis: el.Axis}
	}
	return out, nil
}

// Set resolves a named table. The epoch is only used by SetEphemeris.
func Set(name string, epoch time.Time) ([]tisserand.ReferenceBody, error) {
	switch strings.ToLower(name) {
	case "", SetDefault:
		return Default(), nil
	case SetExtended:
		return Extended(), nil
	case SetEphemeris:
		return Ephemeris(epoch)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSet, name, Sets())
	}
}

// Sets lists the table names accepted by Set.
func Sets() []string {
	return []string{SetDefault, SetExtended, SetEphemeris}
}

// Validate checks every body and that no two share a name or an axis.
func Validate(table []tisserand.ReferenceBody) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}
	names := make(map[string]int, len(table))
	axes := make(map[float64]int, len(table))
	for i, b := range table {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
		key := strings.ToLower(b.Name)
		if j, ok := names[key]; ok {
			return fmt.Errorf("%w: name %q at %d and %d", ErrDuplicate, b.Name, j, i)
		}
		if j, ok := axes[b.Axis]; ok {
			return fmt.Errorf("%w: axis %g at %d and %d", ErrDuplicate, b.Axis, j, i)
		}
		names[key] = i
		axes[b.Axis] = i
	}
	return nil
}

// Lookup finds a body by case-insensitive name.
func Lookup(table []tisserand.ReferenceBody, name string) (tisserand.ReferenceBody, bool) {
	for _, b := range table {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return tisserand.ReferenceBody{}, false
}

// ByAxis finds a body by exact semi-major axis.
func ByAxis(table []tisserand.ReferenceBody, axis float64) (tisserand.ReferenceBody, bool) {
	for _, b := range table {
		if b.Axis == axis {
			return b, true
		}
	}
	return tisserand.ReferenceBody{}, false
}

// Filter keeps the named bodies, in table order.
func Filter(table []tisserand.ReferenceBody, names []string) ([]tisserand.ReferenceBody, error) {
	if len(names) == 0 {
		return clone(table), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := Lookup(table, n); !ok {
			return nil, fmt.Errorf("bodies: %q not in table", n)
		}
		want[strings.ToLower(n)] = true
	}
	var out []tisserand.ReferenceBody
	for _, b := range table {
		if want[strings.ToLower(b.Name)] {
			out = append(out, b)
		}
	}
	return out, nil
}

// SortedByAxis returns a copy ordered by increasing semi-major axis.
func SortedByAxis(table []tisserand.ReferenceBody) []tisserand.ReferenceBody {
	out := clone(table)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Axis < out[j].Axis })
	return out
}

func clone(table []tisserand.ReferenceBody) []tisserand.ReferenceBody {
	out := make([]tisserand.ReferenceBody, len(table))
	copy(out, table)
	return out
}
