package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/spf13/cobra"
)

type submitOptions struct {
	force bool
	open  bool
}

func newSubmitCmd(opts *globalOptions) *cobra.Command {
	submitOpts := &submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit PROBLEM",
		Short: "Submits the source code of the problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, opts, submitOpts, model.ProblemID(args[0]))
		},
	}
	cmd.Flags().BoolVarP(&submitOpts.force, "force", "f", false, "Submits without confirmation")
	cmd.Flags().BoolVar(&submitOpts.open, "open", false, "Opens the submissions page in the browser")
	return cmd
}

func runSubmit(cmd *cobra.Command, opts *globalOptions, submitOpts *submitOptions, problemID model.ProblemID) error {
	cfg, cnsl, err := opts.load()
	if err != nil {
		return err
	}

	if !submitOpts.force {
		ok, err := cnsl.Confirm(fmt.Sprintf("submit problem %s to %s?", problemID, cfg.ContestID), false)
		if err != nil {
			return err
		}
		if !ok {
			return customErr.ErrNotSubmitted
		}
	}

	problem, err := cfg.LoadProblem(problemID, cnsl)
	if err != nil {
		return err
	}
	source, err := cfg.LoadSource(problemID, cnsl)
	if err != nil {
		return fmt.Errorf("could not load source file: %w", err)
	}
	if source == "" {
		return customErr.ErrEmptySource
	}

	actor, err := newActor(cfg)
	if err != nil {
		return err
	}
	langName, err := actor.Submit(cmd.Context(), cfg.ContestID, problem, cfg.Service().LangNames, source, cnsl)
	if err != nil {
		return err
	}
	cnsl.Printf("Submitted in %s\n", langName)

	if submitOpts.open {
		if err := actor.OpenSubmissionsURL(cfg.ContestID, cnsl); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitted source to %s (%s, %s)\n",
		cfg.ServiceID, time.Now().Format(time.RFC3339), humanize.Bytes(uint64(len(source))))
	return nil
}
