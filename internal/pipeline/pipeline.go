package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/stages/compiler"
	"github.com/mini-maxit/acick/internal/stages/executor"
	"github.com/mini-maxit/acick/internal/stages/verifier"
	"github.com/mini-maxit/acick/pkg/model"
	"go.uber.org/zap"
)

// Task describes one test run of a solution.
type Task struct {
	ProblemID model.ProblemID
	Compile   model.Command
	Run       model.Command
	Samples   model.SampleSource
	TimeLimit time.Duration
	Compare   model.Compare
}

// Tester compiles a solution once and judges it on every sample of a task.
type Tester interface {
	ProcessTask(ctx context.Context, task Task, cnsl *console.Console) (verifier.TotalStatus, error)
}

type tester struct {
	compiler compiler.Compiler
	executor executor.Executor
	verifier verifier.Verifier
	logger   *zap.SugaredLogger
}

func NewTester(
	compiler compiler.Compiler,
	executor executor.Executor,
	verifier verifier.Verifier,
) Tester {
	logger := logger.NewNamedLogger("tester")

	return &tester{
		compiler: compiler,
		executor: executor,
		verifier: verifier,
		logger:   logger,
	}
}

func (ts *tester) ProcessTask(ctx context.Context, task Task, cnsl *console.Console) (verifier.TotalStatus, error) {
	ts.logger.Infof("Testing problem %s on %d samples", task.ProblemID, task.Samples.Len())

	if err := ts.compiler.Compile(ctx, task.Compile, cnsl); err != nil {
		return verifier.TotalStatus{}, err
	}

	n := task.Samples.Len()
	width := task.Samples.MaxNameLen()
	statuses := make([]verifier.Status, 0, n)
	for i := 1; ; i++ {
		sample, err := task.Samples.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return verifier.TotalStatus{}, fmt.Errorf("could not load sample: %w", err)
		}

		cnsl.Printf("[%d/%d] %s ... ", i, n, padName(sample.Name, width))
		judge := executor.NewJudge(sample, task.TimeLimit, task.Compare, ts.executor, ts.verifier)
		status := judge.Test(ctx, task.Run)
		if err := ctx.Err(); err != nil {
			cnsl.Println("canceled")
			return verifier.TotalStatus{}, err
		}
		cnsl.Println(status.Styled(cnsl))
		status.Describe(cnsl)
		ts.logger.Infof("Sample %s of problem %s: %s", sample.Name, task.ProblemID, status)
		statuses = append(statuses, status)
	}

	total := verifier.NewTotalStatus(statuses)
	cnsl.Println()
	cnsl.Println(total.Styled(cnsl))
	ts.logger.Infof("Finished testing problem %s: %s", task.ProblemID, total)
	return total, nil
}

func padName(name string, width int) string {
	if n := utf8.RuneCountInString(name); n < width {
		return name + strings.Repeat(" ", width-n)
	}
	return name
}
