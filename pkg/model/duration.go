package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	customErr "github.com/mini-maxit/acick/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = time.Duration(30.44 * float64(day))
	year  = time.Duration(365.25 * float64(day))
)

var durationUnits = map[string]time.Duration{
	"nsec": time.Nanosecond, "ns": time.Nanosecond,
	"usec": time.Microsecond, "us": time.Microsecond, "µs": time.Microsecond,
	"msec": time.Millisecond, "ms": time.Millisecond,
	"seconds": time.Second, "second": time.Second, "sec": time.Second, "s": time.Second,
	"minutes": time.Minute, "minute": time.Minute, "min": time.Minute, "m": time.Minute,
	"hours": time.Hour, "hour": time.Hour, "hr": time.Hour, "h": time.Hour,
	"days": day, "day": day, "d": day,
	"weeks": week, "week": week, "w": week,
	"months": month, "month": month, "M": month,
	"years": year, "year": year, "y": year,
}

// Duration is a time span written in the human form used by judge pages and
// config files, e.g. "2 sec", "500ms" or "1min 30s".
type Duration time.Duration

func NewDuration(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// ParseDuration parses a sequence of "<number><unit>" terms, optionally
// separated by spaces. The terms are summed.
func ParseDuration(s string) (Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, fmt.Errorf("%w: empty string", customErr.ErrInvalidDuration)
	}
	var total time.Duration
	for rest != "" {
		i := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) && r != '.' })
		if i == 0 {
			return 0, fmt.Errorf("%w: expected number in %q", customErr.ErrInvalidDuration, s)
		}
		if i < 0 {
			return 0, fmt.Errorf("%w: missing unit in %q", customErr.ErrInvalidDuration, s)
		}
		number := rest[:i]
		rest = strings.TrimLeft(rest[i:], " ")

		j := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if j < 0 {
			j = len(rest)
		}
		unit, ok := durationUnits[rest[:j]]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q in %q", customErr.ErrInvalidDuration, rest[:j], s)
		}
		term, err := scaleTerm(number, unit)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", customErr.ErrInvalidDuration, s, err)
		}
		if total > math.MaxInt64-term {
			return 0, fmt.Errorf("%w: %q overflows", customErr.ErrInvalidDuration, s)
		}
		total += term
		rest = strings.TrimLeft(rest[j:], " ")
	}
	return Duration(total), nil
}

// scaleTerm multiplies a decimal number by unit using integer arithmetic only,
// so "1.001" seconds is exactly 1001ms. Fraction digits below unit's
// resolution are dropped.
func scaleTerm(number string, unit time.Duration) (time.Duration, error) {
	intPart, fracPart, _ := strings.Cut(number, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("no digits in %q", number)
	}
	var d time.Duration
	if intPart != "" {
		whole, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, err
		}
		if whole > int64(math.MaxInt64/unit) {
			return 0, fmt.Errorf("%q overflows", number)
		}
		d = time.Duration(whole) * unit
	}
	scale := unit
	for k := 0; k < len(fracPart); k++ {
		c := fracPart[k]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid fraction in %q", number)
		}
		scale /= 10
		d += time.Duration(c-'0') * scale
	}
	return d, nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
