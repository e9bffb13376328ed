package executor_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/mini-maxit/acick/internal/stages/executor"
	"github.com/mini-maxit/acick/internal/stages/verifier"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func command(args ...string) model.Command {
	return model.Command{Args: args}
}

func newJudge(sample model.Sample, timeLimit time.Duration) *executor.Judge {
	return executor.NewJudge(sample, timeLimit, model.CompareDefault,
		executor.NewExecutor(executor.WithStderr(io.Discard)), verifier.NewVerifier())
}

func TestJudge_Verdicts(t *testing.T) {
	sample := model.NewSample("sample 1", "", "ok\n")

	tests := []struct {
		name    string
		cmd     model.Command
		kind    verifier.StatusKind
		checkFn func(t *testing.T, status verifier.Status)
	}{
		{
			name: "accepted",
			cmd:  command("echo", "ok"),
			kind: verifier.AC,
			checkFn: func(t *testing.T, status verifier.Status) {
				assert.Less(t, status.Elapsed, time.Second)
			},
		},
		{
			name: "wrong answer",
			cmd:  command("echo", "nope"),
			kind: verifier.WA,
			checkFn: func(t *testing.T, status verifier.Status) {
				require.NotNil(t, status.Diff)
				assert.Equal(t, []verifier.LineDiff{{Left: "ok", Right: "nope", Mismatch: true}}, status.Diff.Lines)
			},
		},
		{
			name: "time limit exceeded",
			cmd:  command("sleep", "2"),
			kind: verifier.TLE,
			checkFn: func(t *testing.T, status verifier.Status) {
				assert.GreaterOrEqual(t, status.Elapsed, time.Second)
				assert.Less(t, status.Elapsed, 2*time.Second)
			},
		},
		{
			name: "runtime error",
			cmd:  command("false"),
			kind: verifier.RE,
			checkFn: func(t *testing.T, status verifier.Status) {
				assert.Contains(t, status.Reason, "exit status 1")
			},
		},
		{
			name: "command not found",
			cmd:  command("acick-no-such-command"),
			kind: verifier.RE,
			checkFn: func(t *testing.T, status verifier.Status) {
				assert.NotEmpty(t, status.Reason)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := newJudge(sample, time.Second).Test(context.Background(), tt.cmd)
			assert.Equal(t, tt.kind, status.Kind)
			assert.Equal(t, "sample 1", status.SampleName)
			tt.checkFn(t, status)
		})
	}
}

func TestJudge_PipesInput(t *testing.T) {
	sample := model.NewSample("echo back", "5\n2 2 3 5 5\n", "5\n2 2 3 5 5\n")

	status := newJudge(sample, time.Second).Test(context.Background(), command("cat"))

	assert.Equal(t, verifier.AC, status.Kind)
}

func TestJudge_IgnoresUnreadInput(t *testing.T) {
	sample := model.NewSample("unread", "1\n2\n3\n", "ok\n")

	status := newJudge(sample, time.Second).Test(context.Background(), command("echo", "ok"))

	assert.Equal(t, verifier.AC, status.Kind)
}

func TestExecute_RunsInDir(t *testing.T) {
	dir := t.TempDir()
	e := executor.NewExecutor(executor.WithStderr(io.Discard))

	res := e.Execute(context.Background(), model.Command{Args: []string{"pwd"}, Dir: dir}, "", time.Second)

	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, dir)
}

func TestExecute_KillsShellChildren(t *testing.T) {
	e := executor.NewExecutor(executor.WithStderr(io.Discard))

	res := e.Execute(context.Background(), command("sh", "-c", "sleep 5; echo late"), "", 200*time.Millisecond)

	assert.True(t, res.TimedOut)
	assert.Less(t, res.Elapsed, 3*time.Second)
	assert.NotContains(t, res.Stdout, "late")
}

func TestExecute_EmptyCommand(t *testing.T) {
	e := executor.NewExecutor()

	res := e.Execute(context.Background(), model.Command{}, "", time.Second)

	assert.ErrorIs(t, res.Err, customErr.ErrEmptyCommand)
}

func TestExecute_CanceledContextIsNotTimeout(t *testing.T) {
	e := executor.NewExecutor(executor.WithStderr(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.Execute(ctx, command("sleep", "1"), "", time.Second)

	assert.False(t, res.TimedOut)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
