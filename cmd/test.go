package main

import (
	"fmt"

	"github.com/mini-maxit/acick/internal/pipeline"
	"github.com/mini-maxit/acick/internal/stages/compiler"
	"github.com/mini-maxit/acick/internal/stages/executor"
	"github.com/mini-maxit/acick/internal/stages/verifier"
	"github.com/mini-maxit/acick/internal/storage"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/spf13/cobra"
)

type testOptions struct {
	sampleName string
	full       bool
}

func newTestCmd(opts *globalOptions) *cobra.Command {
	testOpts := &testOptions{}

	cmd := &cobra.Command{
		Use:   "test PROBLEM",
		Short: "Tests the source code with the samples of the problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, opts, testOpts, model.ProblemID(args[0]))
		},
	}
	cmd.Flags().StringVar(&testOpts.sampleName, "sample", "", "Tests only the sample of the given name")
	cmd.Flags().BoolVar(&testOpts.full, "full", false, "Tests with the full testcases downloaded by `acick fetch --full`")
	return cmd
}

func runTest(cmd *cobra.Command, opts *globalOptions, testOpts *testOptions, problemID model.ProblemID) error {
	cfg, cnsl, err := opts.load()
	if err != nil {
		return err
	}
	problem, err := cfg.LoadProblem(problemID, cnsl)
	if err != nil {
		return err
	}

	var samples model.SampleSource
	if testOpts.full {
		dir, err := cfg.TestcasesAbsDir(problemID)
		if err != nil {
			return err
		}
		iter, err := storage.LoadTestcases(dir, testOpts.sampleName)
		if err != nil {
			return err
		}
		samples = iter
	} else {
		iter := problem.TakeSamples(testOpts.sampleName)
		if testOpts.sampleName != "" && iter.Len() == 0 {
			return fmt.Errorf("%w: %s", customErr.ErrSampleNameNotFound, testOpts.sampleName)
		}
		samples = iter
	}

	compileCmd, err := cfg.CompileCommand(problemID)
	if err != nil {
		return err
	}
	runCmd, err := cfg.RunCommand(problemID)
	if err != nil {
		return err
	}

	tester := pipeline.NewTester(compiler.NewCompiler(), executor.NewExecutor(), verifier.NewVerifier())
	total, err := tester.ProcessTask(cmd.Context(), pipeline.Task{
		ProblemID: problem.ID,
		Compile:   compileCmd,
		Run:       runCmd,
		Samples:   samples,
		TimeLimit: problem.TimeLimitOr(constants.DefaultJudgeTimeout),
		Compare:   problem.Compare,
	}, cnsl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), total)
	if total.Kind != verifier.AC {
		return customErr.ErrNotAllAccepted
	}
	return nil
}
