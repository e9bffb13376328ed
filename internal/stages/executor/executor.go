package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"go.uber.org/zap"
)

type ExecutionResult struct {
	Stdout   string
	Elapsed  time.Duration
	TimedOut bool
	// Err is set when the process could not be started or exited with a non-zero status.
	Err error
}

//go:generate mockgen -destination=../../../tests/mocks/executor_mock.go -package=mocks . Executor

// Executor runs a command with the given stdin under a wall-clock time limit.
type Executor interface {
	Execute(ctx context.Context, cmd model.Command, input string, timeLimit time.Duration) ExecutionResult
}

type executor struct {
	stderr io.Writer
	logger *zap.SugaredLogger
}

type Option func(*executor)

// WithStderr sets where the stderr of executed commands goes. It defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(e *executor) {
		e.stderr = w
	}
}

func NewExecutor(opts ...Option) Executor {
	logger := logger.NewNamedLogger("executor")
	e := &executor{
		stderr: os.Stderr,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *executor) Execute(ctx context.Context, cmd model.Command, input string, timeLimit time.Duration) ExecutionResult {
	if len(cmd.Args) == 0 || cmd.Args[0] == "" {
		return ExecutionResult{Err: customErr.ErrEmptyCommand}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeLimit)
	defer cancel()

	c := exec.CommandContext(runCtx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Stdin = strings.NewReader(input)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = e.stderr
	// Children of a killed shell may keep the pipes open; stop waiting for them.
	c.WaitDelay = constants.ExecutorWaitDelay

	e.logger.Debugf("Running %s in %s with time limit %s", cmd, cmd.Dir, timeLimit)
	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	res := ExecutionResult{Stdout: stdout.String(), Elapsed: elapsed}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		e.logger.Infof("Killed %s after %s", cmd, elapsed)
		res.TimedOut = true
		return res
	}
	if err != nil {
		e.logger.Infof("Command %s failed: %s", cmd, err)
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		res.Err = err
	}
	return res
}
