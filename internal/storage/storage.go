package storage

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/workspace"
	"go.uber.org/zap"
)

// TestcaseWriter streams downloaded testcase files into a testcases directory.
// It is safe for concurrent use as long as each call writes a different file.
type TestcaseWriter interface {
	// Write copies r into {dir}/{in|out}/{name}.txt, where name is fileName without extension.
	Write(inout InOut, fileName string, r io.Reader) (workspace.AbsPath, error)
	// Store copies a file already on disk, such as a cached download, into the directory.
	Store(inout InOut, fileName string, src workspace.AbsPath) (workspace.AbsPath, error)
	Dir() workspace.AbsPath
	// Written returns the number of bytes written so far.
	Written() int64
}

type testcaseWriter struct {
	dir     workspace.AbsPath
	written atomic.Int64
	logger  *zap.SugaredLogger
}

func NewTestcaseWriter(dir workspace.AbsPath) TestcaseWriter {
	logger := logger.NewNamedLogger("testcaseWriter")
	return &testcaseWriter{
		dir:    dir,
		logger: logger,
	}
}

func (tw *testcaseWriter) Dir() workspace.AbsPath {
	return tw.dir
}

func (tw *testcaseWriter) Written() int64 {
	return tw.written.Load()
}

func (tw *testcaseWriter) Write(inout InOut, fileName string, r io.Reader) (workspace.AbsPath, error) {
	name, err := TestcaseName(fileName)
	if err != nil {
		return workspace.AbsPath{}, err
	}
	dest := TestcasePath(tw.dir, inout, name)

	var n int64
	_, err = dest.Save(func(w io.Writer) error {
		n, err = io.Copy(w, r)
		return err
	}, true, workspace.WithMode(0o644))
	if err != nil {
		tw.logger.Errorf("Failed to save testcase file %s: %s", dest, err)
		return workspace.AbsPath{}, fmt.Errorf("could not save testcase to file: %w", err)
	}
	tw.written.Add(n)

	tw.logger.Debugf("Testcase %s saved to %s (%d bytes)", fileName, dest, n)
	return dest, nil
}

func (tw *testcaseWriter) Store(inout InOut, fileName string, src workspace.AbsPath) (workspace.AbsPath, error) {
	var dest workspace.AbsPath
	err := src.Load(func(r io.Reader) error {
		var err error
		dest, err = tw.Write(inout, fileName, r)
		return err
	})
	if err != nil {
		return workspace.AbsPath{}, err
	}
	return dest, nil
}
