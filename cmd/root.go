package main

import (
	"os"

	"github.com/mini-maxit/acick/internal/atcoder"
	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/session"
	"github.com/mini-maxit/acick/internal/web"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	service   string
	contest   string
	assumeYes bool
	debug     bool
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          constants.AppName,
		Short:        "Command line tool for competitive programming on AtCoder",
		Version:      constants.AppVersion,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(opts.debug)
			logger := logger.NewNamedLogger("main")
			logger.Infof("Running %s %s [service: %s, contest: %s]",
				constants.AppName, cmd.Name(), opts.service, opts.contest)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.service, "service", envOr(constants.EnvService, constants.DefaultServiceID),
		"Service id, also read from "+constants.EnvService)
	flags.StringVar(&opts.contest, "contest", envOr(constants.EnvContest, constants.DefaultContestID),
		"Contest id, also read from "+constants.EnvContest)
	flags.BoolVarP(&opts.assumeYes, "assume-yes", "y", os.Getenv(constants.EnvAssumeYes) != "",
		"Answer yes to every confirmation")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug entries to the log file")

	root.AddCommand(
		newInitCmd(opts),
		newShowCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newMeCmd(opts),
		newFetchCmd(opts),
		newTestCmd(opts),
		newSubmitCmd(opts),
	)
	return root
}

func (o *globalOptions) console() *console.Console {
	return console.NewTerm(o.assumeYes)
}

// load finds the config file and returns it with a console for the command.
func (o *globalOptions) load() (*config.Config, *console.Console, error) {
	cnsl := o.console()
	serviceID, err := model.ParseServiceKind(o.service)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(serviceID, model.ContestID(o.contest), workspace.AbsPath{}, cnsl)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cnsl, nil
}

func newActor(cfg *config.Config) (atcoder.Actor, error) {
	sessCfg, err := cfg.Session()
	if err != nil {
		return nil, err
	}
	return atcoder.NewActor(session.New(sessCfg), atcoder.WithBrowser(web.NewSystemBrowser())), nil
}
