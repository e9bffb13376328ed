package executor

import (
	"context"
	"time"

	"github.com/mini-maxit/acick/internal/stages/verifier"
	"github.com/mini-maxit/acick/pkg/model"
)

// Judge tests a solution command against one sample.
type Judge struct {
	sample    model.Sample
	timeLimit time.Duration
	compare   model.Compare
	executor  Executor
	verifier  verifier.Verifier
}

func NewJudge(
	sample model.Sample,
	timeLimit time.Duration,
	compare model.Compare,
	executor Executor,
	verifier verifier.Verifier,
) *Judge {
	return &Judge{
		sample:    sample,
		timeLimit: timeLimit,
		compare:   compare,
		executor:  executor,
		verifier:  verifier,
	}
}

// Test runs cmd with the sample input. Timeouts, failed starts and non-zero exits
// are verdicts, not errors.
func (j *Judge) Test(ctx context.Context, cmd model.Command) verifier.Status {
	res := j.executor.Execute(ctx, cmd, j.sample.Input, j.timeLimit)
	switch {
	case res.TimedOut:
		return verifier.NewTLE(j.sample.Name, res.Elapsed)
	case res.Err != nil:
		return verifier.NewRE(j.sample.Name, res.Elapsed, res.Err.Error())
	default:
		return j.verifier.Evaluate(j.sample.Name, j.sample.Output, res.Stdout, res.Elapsed, j.compare)
	}
}
