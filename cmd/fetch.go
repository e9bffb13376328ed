package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mini-maxit/acick/internal/atcoder"
	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/dropbox"
	"github.com/mini-maxit/acick/internal/storage"
	"github.com/mini-maxit/acick/internal/web"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	overwrite bool
	open      bool
	full      bool
}

func newFetchCmd(opts *globalOptions) *cobra.Command {
	fetchOpts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch [PROBLEM]",
		Short: "Fetches problems and their samples from the service",
		Long: `Fetches problems of the contest, saves them as problem files and creates
source files from the configured template. Without PROBLEM all problems are fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var problemID model.ProblemID
			if len(args) > 0 {
				problemID = model.ProblemID(args[0])
			}
			return runFetch(cmd, opts, fetchOpts, problemID)
		},
	}
	cmd.Flags().BoolVarP(&fetchOpts.overwrite, "overwrite", "w", false, "Overwrites existing problem and source files")
	cmd.Flags().BoolVar(&fetchOpts.open, "open", false, "Opens the problem pages in the browser")
	cmd.Flags().BoolVar(&fetchOpts.full, "full", false, "Downloads the full testcases from Dropbox")
	return cmd
}

func runFetch(cmd *cobra.Command, opts *globalOptions, fetchOpts *fetchOptions, problemID model.ProblemID) error {
	ctx := cmd.Context()
	cfg, cnsl, err := opts.load()
	if err != nil {
		return err
	}
	actor, err := newActor(cfg)
	if err != nil {
		return err
	}

	contest, problems, err := actor.Fetch(ctx, cfg.ContestID, problemID, cnsl)
	if err != nil {
		return err
	}
	service := model.NewService(cfg.ServiceID)

	for _, problem := range problems {
		if _, err := cfg.SaveProblem(problem, fetchOpts.overwrite, cnsl); err != nil {
			return fmt.Errorf("could not save problem data file: %w", err)
		}
	}
	for _, problem := range problems {
		if _, err := cfg.ExpandAndSaveSource(service, contest, problem, fetchOpts.overwrite, cnsl); err != nil {
			return fmt.Errorf("could not save source file from template: %w", err)
		}
	}
	if fetchOpts.open {
		for _, problem := range problems {
			if err := actor.OpenProblemURL(cfg.ContestID, problem, cnsl); err != nil {
				return err
			}
		}
	}
	if fetchOpts.full {
		if cfg.ServiceID != model.ServiceAtcoder {
			cnsl.Warn(`"--full" option is only available for AtCoder`)
		} else if err := fetchFull(ctx, cfg, problems, cnsl); err != nil {
			return err
		}
	}

	switch len(problems) {
	case 1:
		fmt.Fprintln(cmd.OutOrStdout(), "Successfully fetched 1 problem")
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully fetched %d problems\n", len(problems))
	}
	return nil
}

func fetchFull(ctx context.Context, cfg *config.Config, problems []model.Problem, cnsl *console.Console) error {
	tokenPath, err := cfg.DropboxTokenPath()
	if err != nil {
		return err
	}
	authorizer := dropbox.NewAuthorizer(cfg.Body.Dropbox.AppKey, tokenPath,
		dropbox.WithAuthBrowser(web.NewSystemBrowser()))
	client, err := authorizer.LoadOrRequest(ctx, os.Getenv(constants.EnvDropboxToken), cnsl)
	if err != nil {
		return err
	}

	fetcherOpts := []atcoder.FullFetcherOption{}
	if cacheDir, err := storage.DefaultCacheDir(); err == nil {
		cache := storage.NewDownloadCache(cacheDir)
		if err := cache.InitCache(); err != nil {
			cnsl.Warn(fmt.Sprintf("Download cache disabled: %v", err))
		} else {
			fetcherOpts = append(fetcherOpts, atcoder.WithDownloadCache(cache))
		}
	}

	return atcoder.NewFullFetcher(client, fetcherOpts...).FetchFull(ctx, cfg.ContestID, problems, cfg, cnsl)
}
