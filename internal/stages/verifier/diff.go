package verifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mini-maxit/acick/pkg/model"
)

// LineDiff is one row of a TextDiff.
type LineDiff struct {
	Left     string
	Right    string
	Mismatch bool
}

// TextDiff pairs the lines of two texts. The shorter side is padded with empty lines.
type TextDiff struct {
	LeftTitle   string
	RightTitle  string
	Lines       []LineDiff
	LeftWidth   int
	RightWidth  int
	AnyMismatch bool
}

func NewTextDiff(leftTitle, rightTitle, left, right string, compare model.Compare) TextDiff {
	lLines, rLines := splitLines(left), splitLines(right)
	n := max(len(lLines), len(rLines))

	diff := TextDiff{
		LeftTitle:  leftTitle,
		RightTitle: rightTitle,
		Lines:      make([]LineDiff, n),
		LeftWidth:  utf8.RuneCountInString(leftTitle),
		RightWidth: utf8.RuneCountInString(rightTitle),
	}
	for i := range n {
		var l, r string
		if i < len(lLines) {
			l = lLines[i]
		}
		if i < len(rLines) {
			r = rLines[i]
		}
		mismatch := !compare.Equal(l, r)
		diff.Lines[i] = LineDiff{Left: l, Right: r, Mismatch: mismatch}
		diff.LeftWidth = max(diff.LeftWidth, utf8.RuneCountInString(l))
		diff.RightWidth = max(diff.RightWidth, utf8.RuneCountInString(r))
		diff.AnyMismatch = diff.AnyMismatch || mismatch
	}
	return diff
}

// splitLines splits on "\n" without yielding an empty line after a trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// String renders the diff as a two-column table. Mismatched rows start with ">".
func (d TextDiff) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s | %s\n", pad(d.LeftTitle, d.LeftWidth), d.RightTitle)
	fmt.Fprintf(&b, "  %s-+-%s\n", strings.Repeat("-", d.LeftWidth), strings.Repeat("-", d.RightWidth))
	for _, line := range d.Lines {
		gutter := " "
		if line.Mismatch {
			gutter = ">"
		}
		fmt.Fprintf(&b, "%s %s | %s\n", gutter, pad(line.Left, d.LeftWidth), line.Right)
	}
	return b.String()
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
