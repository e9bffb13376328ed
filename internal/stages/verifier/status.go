package verifier

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/mini-maxit/acick/internal/console"
)

// StatusKind is the verdict of one sample. Kinds are ordered by severity.
type StatusKind int

const (
	AC StatusKind = iota
	WA
	TLE
	RE
)

var statusKinds = []StatusKind{AC, WA, TLE, RE}

func (k StatusKind) String() string {
	switch k {
	case AC:
		return "AC"
	case WA:
		return "WA"
	case TLE:
		return "TLE"
	default:
		return "RE"
	}
}

func (k StatusKind) color() color.Attribute {
	switch k {
	case AC:
		return color.FgGreen
	case WA:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

// Status is the outcome of running a solution on one sample.
type Status struct {
	SampleName string
	Elapsed    time.Duration
	Kind       StatusKind
	// Diff is set for AC and WA.
	Diff *TextDiff
	// Reason is set for RE.
	Reason string
}

func NewAC(sampleName string, elapsed time.Duration, diff TextDiff) Status {
	return Status{SampleName: sampleName, Elapsed: elapsed, Kind: AC, Diff: &diff}
}

func NewWA(sampleName string, elapsed time.Duration, diff TextDiff) Status {
	return Status{SampleName: sampleName, Elapsed: elapsed, Kind: WA, Diff: &diff}
}

func NewTLE(sampleName string, elapsed time.Duration) Status {
	return Status{SampleName: sampleName, Elapsed: elapsed, Kind: TLE}
}

func NewRE(sampleName string, elapsed time.Duration, reason string) Status {
	return Status{SampleName: sampleName, Elapsed: elapsed, Kind: RE, Reason: reason}
}

func (s Status) elapsedText() string {
	return fmt.Sprintf("(%4dms)", s.Elapsed.Milliseconds())
}

func (s Status) String() string {
	return s.Kind.String() + " " + s.elapsedText()
}

// Styled is String colored for cnsl.
func (s Status) Styled(cnsl *console.Console) string {
	elapsed := s.elapsedText()
	if s.Kind == TLE {
		elapsed = cnsl.Styled(elapsed, s.Kind.color())
	} else {
		elapsed = cnsl.Styled(elapsed, color.Faint)
	}
	return cnsl.Styled(s.Kind.String(), s.Kind.color(), color.ReverseVideo) + " " + elapsed
}

// Describe prints the diff of a wrong answer or the reason of a runtime error.
func (s Status) Describe(cnsl *console.Console) {
	switch s.Kind {
	case WA:
		if s.Diff != nil {
			cnsl.Printf("%s", s.Diff)
		}
	case RE:
		cnsl.Println(s.Reason)
	}
}

// TotalStatus aggregates the statuses of all samples. Its kind is the most severe one.
type TotalStatus struct {
	Kind     StatusKind
	Counts   map[StatusKind]int
	Statuses []Status
}

func NewTotalStatus(statuses []Status) TotalStatus {
	total := TotalStatus{Kind: AC, Counts: make(map[StatusKind]int), Statuses: statuses}
	for _, s := range statuses {
		total.Counts[s.Kind]++
		total.Kind = max(total.Kind, s.Kind)
	}
	return total
}

func (t TotalStatus) Count() int {
	return len(t.Statuses)
}

func (t TotalStatus) String() string {
	n := t.Count()
	return fmt.Sprintf("%s (AC: %2d/%2d, WA: %2d/%2d, TLE: %2d/%2d, RE: %2d/%2d)",
		t.Kind, t.Counts[AC], n, t.Counts[WA], n, t.Counts[TLE], n, t.Counts[RE], n)
}

// Styled is String with the kind colored and non-zero failure counts underlined.
func (t TotalStatus) Styled(cnsl *console.Console) string {
	n := t.Count()
	counts := make([]interface{}, 0, 2*len(statusKinds))
	for _, kind := range statusKinds {
		count := fmt.Sprintf("%2d", t.Counts[kind])
		if kind != AC && t.Counts[kind] > 0 {
			count = cnsl.Styled(count, kind.color(), color.Underline)
		}
		counts = append(counts, count, n)
	}
	return cnsl.Styled(t.Kind.String(), t.Kind.color(), color.ReverseVideo) +
		fmt.Sprintf(" (AC: %s/%2d, WA: %s/%2d, TLE: %s/%2d, RE: %s/%2d)", counts...)
}
