package semantic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/flux/ast"
)

// Duration is a folded duration literal. Calendar units are kept apart from
// fixed ones because a month has no fixed length. Both magnitudes are
// non-negative; Negative carries the sign.
type Duration struct {
	Months      int64
	Nanoseconds int64
	Negative    bool
}

const (
	monthsPerYear = 12
	nsPerWeek     = 7 * 24 * int64(time.Hour)
	nsPerDay      = 24 * int64(time.Hour)
)

var unitNanoseconds = map[string]int64{
	"w":  nsPerWeek,
	"d":  nsPerDay,
	"h":  int64(time.Hour),
	"m":  int64(time.Minute),
	"s":  int64(time.Second),
	"ms": int64(time.Millisecond),
	"us": int64(time.Microsecond),
	"µs": int64(time.Microsecond),
	"ns": 1,
}

var maxMagnitude = decimal.NewFromInt(math.MaxInt64)

// ConvertDuration folds the magnitude/unit pairs of a duration literal into a
// single Duration. All magnitudes must share a sign.
func ConvertDuration(values []ast.Duration) (Duration, error) {
	if len(values) == 0 {
		return Duration{}, errors.New("AST duration vector must contain at least one duration value")
	}

	negative := values[0].Magnitude < 0
	months := decimal.Zero
	nanoseconds := decimal.Zero
	for _, d := range values {
		if (d.Magnitude < 0) != negative {
			return Duration{}, errors.New("all values in AST duration vector must have the same sign")
		}
		magnitude := decimal.NewFromInt(d.Magnitude)
		switch d.Unit {
		case "y":
			months = months.Add(magnitude.Mul(decimal.NewFromInt(monthsPerYear)))
		case "mo":
			months = months.Add(magnitude)
		default:
			ns, ok := unitNanoseconds[d.Unit]
			if !ok {
				return Duration{}, fmt.Errorf("unrecognized magnitude for duration: %s", d.Unit)
			}
			nanoseconds = nanoseconds.Add(magnitude.Mul(decimal.NewFromInt(ns)))
		}
	}

	months = months.Abs()
	nanoseconds = nanoseconds.Abs()
	if months.GreaterThan(maxMagnitude) || nanoseconds.GreaterThan(maxMagnitude) {
		return Duration{}, errors.New("duration overflows int64")
	}
	return Duration{
		Months:      months.IntPart(),
		Nanoseconds: nanoseconds.IntPart(),
		Negative:    negative,
	}, nil
}

var nanosecondUnits = []struct {
	unit string
	ns   int64
}{
	{"w", nsPerWeek},
	{"d", nsPerDay},
	{"h", int64(time.Hour)},
	{"m", int64(time.Minute)},
	{"s", int64(time.Second)},
	{"ms", int64(time.Millisecond)},
	{"us", int64(time.Microsecond)},
	{"ns", 1},
}

// String renders the duration in its normalized literal form, e.g. 1y2mo3h.
func (d Duration) String() string {
	if d.Months == 0 && d.Nanoseconds == 0 {
		return "0ns"
	}
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	if y := d.Months / monthsPerYear; y > 0 {
		b.WriteString(strconv.FormatInt(y, 10) + "y")
	}
	if mo := d.Months % monthsPerYear; mo > 0 {
		b.WriteString(strconv.FormatInt(mo, 10) + "mo")
	}
	ns := d.Nanoseconds
	for _, u := range nanosecondUnits {
		if n := ns / u.ns; n > 0 {
			b.WriteString(strconv.FormatInt(n, 10) + u.unit)
			ns %= u.ns
		}
	}
	return b.String()
}
