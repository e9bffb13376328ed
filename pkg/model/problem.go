package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ProblemID identifies a problem within a contest. Ids are compared and
// displayed in uppercase.
type ProblemID string

func (p ProblemID) Normalize() string {
	return strings.ToUpper(string(p))
}

func (p ProblemID) Equal(other ProblemID) bool {
	return p.Normalize() == other.Normalize()
}

func (p ProblemID) Less(other ProblemID) bool {
	return p.Normalize() < other.Normalize()
}

func (p ProblemID) String() string {
	return p.Normalize()
}

type Problem struct {
	ID          ProblemID `yaml:"id"`
	Name        string    `yaml:"name"`
	URLName     string    `yaml:"url_name"`
	TimeLimit   *Duration `yaml:"time_limit"`
	MemoryLimit *Bytes    `yaml:"memory_limit"`
	Compare     Compare   `yaml:"compare"`
	Samples     []Sample  `yaml:"samples"`
}

func NewProblem(
	id ProblemID,
	name, urlName string,
	timeLimit *Duration,
	memoryLimit *Bytes,
	compare Compare,
	samples []Sample,
) Problem {
	if samples == nil {
		samples = []Sample{}
	}
	return Problem{
		ID:          id,
		Name:        name,
		URLName:     urlName,
		TimeLimit:   timeLimit,
		MemoryLimit: memoryLimit,
		Compare:     compare,
		Samples:     samples,
	}
}

// TakeSamples returns all samples, or only the one named sampleName when it is not empty.
func (p Problem) TakeSamples(sampleName string) *SampleIter {
	if sampleName == "" {
		return NewSampleIter(p.Samples)
	}
	var samples []Sample
	for _, s := range p.Samples {
		if s.Name == sampleName {
			samples = append(samples, s)
		}
	}
	return NewSampleIter(samples)
}

// TimeLimitOr returns the time limit of the problem, or def if it is unknown.
func (p Problem) TimeLimitOr(def time.Duration) time.Duration {
	if p.TimeLimit == nil {
		return def
	}
	return time.Duration(*p.TimeLimit)
}

// Compare selects how an actual output line is compared with the expected one.
type Compare int

const (
	// CompareDefault ignores trailing whitespace of each line.
	CompareDefault Compare = iota
)

var compareNames = map[Compare]string{
	CompareDefault: "default",
}

func ParseCompare(s string) (Compare, error) {
	for c, name := range compareNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", customErr.ErrUnknownCompare, s)
}

func (c Compare) String() string {
	if name, ok := compareNames[c]; ok {
		return name
	}
	return "unknown"
}

// Equal reports whether line a matches line b under the comparator.
func (c Compare) Equal(a, b string) bool {
	switch c {
	case CompareDefault:
		return trimLineEnd(a) == trimLineEnd(b)
	default:
		return a == b
	}
}

func trimLineEnd(s string) string {
	return strings.TrimRight(s, " \t\r\n\v\f")
}

func (c Compare) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Compare) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCompare(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Bytes is an amount of memory. It parses SI and IEC unit strings and is
// rendered in MB.
type Bytes uint64

func ParseBytes(s string) (Bytes, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return Bytes(n), nil
}

func (b Bytes) String() string {
	mb := float64(b) / float64(humanize.MByte)
	return strconv.FormatFloat(mb, 'f', -1, 64) + " MB"
}

func (b Bytes) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b *Bytes) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseBytes(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
