package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/mini-maxit/acick/utils"
)

// InOut selects the input or the output half of a testcase.
type InOut int

const (
	In InOut = iota
	Out
)

// InOuts lists both halves in directory order.
var InOuts = []InOut{In, Out}

func (d InOut) String() string {
	if d == Out {
		return constants.TestcaseOutputDir
	}
	return constants.TestcaseInputDir
}

// TestcaseName returns the testcase name of a downloaded file, which is its name without extension.
func TestcaseName(fileName string) (string, error) {
	base := path.Base(fileName)
	name := strings.TrimSuffix(base, path.Ext(base))
	if err := utils.ValidateFilename(name); err != nil {
		return "", fmt.Errorf("%w: %w", customErr.ErrInvalidTestcaseName, err)
	}
	return name, nil
}

// ValidateTestcaseFileName returns the testcase name when fileName carries the testcase extension.
func ValidateTestcaseFileName(fileName string) (string, bool) {
	ext := path.Ext(fileName)
	if ext != "."+constants.TestcaseFileExt {
		return "", false
	}
	name := strings.TrimSuffix(fileName, ext)
	return name, name != ""
}

func TestcaseFileName(name string) string {
	return name + "." + constants.TestcaseFileExt
}

// TestcasePath returns where the given half of a testcase is stored under dir.
func TestcasePath(dir workspace.AbsPath, inout InOut, name string) workspace.AbsPath {
	return dir.Join(inout.String()).Join(TestcaseFileName(name))
}

// TestcaseIter reads testcases stored as in/{name}.txt and out/{name}.txt.
// Files are read only when the testcase is reached.
type TestcaseIter struct {
	dir        workspace.AbsPath
	names      []string
	pos        int
	maxNameLen int
}

var _ model.SampleSource = (*TestcaseIter)(nil)

// LoadTestcases lists the testcases in dir. When sampleName is given only that testcase is yielded.
func LoadTestcases(dir workspace.AbsPath, sampleName string) (*TestcaseIter, error) {
	var names []string
	if sampleName != "" {
		if err := utils.ValidateFilename(sampleName); err != nil {
			return nil, fmt.Errorf("%w: %w", customErr.ErrInvalidTestcaseName, err)
		}
		names = []string{sampleName}
	} else {
		entries, err := os.ReadDir(dir.Join(In.String()).String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", customErr.ErrMissingTestcases, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			if name, ok := ValidateTestcaseFileName(entry.Name()); ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)
	}

	maxNameLen := 0
	for _, name := range names {
		if n := utf8.RuneCountInString(name); n > maxNameLen {
			maxNameLen = n
		}
	}
	return &TestcaseIter{dir: dir, names: names, maxNameLen: maxNameLen}, nil
}

func (it *TestcaseIter) Len() int {
	return len(it.names)
}

func (it *TestcaseIter) MaxNameLen() int {
	return it.maxNameLen
}

func (it *TestcaseIter) Next() (model.Sample, error) {
	if it.pos >= len(it.names) {
		return model.Sample{}, io.EOF
	}
	name := it.names[it.pos]
	it.pos++

	input, err := it.load(In, name)
	if err != nil {
		return model.Sample{}, err
	}
	output, err := it.load(Out, name)
	if err != nil {
		return model.Sample{}, err
	}
	return model.NewSample(name, input, output), nil
}

func (it *TestcaseIter) load(inout InOut, name string) (string, error) {
	var content string
	err := TestcasePath(it.dir, inout, name).Load(func(r io.Reader) error {
		b, err := io.ReadAll(r)
		content = string(b)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("could not load testcase %sput file %s: %w", inout, TestcaseFileName(name), err)
	}
	return content, nil
}
