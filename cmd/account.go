package main

import (
	"fmt"

	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/spf13/cobra"
)

func newLoginCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Logs in to the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cnsl, err := opts.load()
			if err != nil {
				return err
			}
			actor, err := newActor(cfg)
			if err != nil {
				return err
			}
			user, err := cnsl.GetEnvOrPrompt(cfg.ServiceID.UsernameEnv(), "username: ", false)
			if err != nil {
				return err
			}
			pass, err := cnsl.GetEnvOrPrompt(cfg.ServiceID.PasswordEnv(), "password: ", true)
			if err != nil {
				return err
			}

			loggedIn, err := actor.Login(cmd.Context(), user, pass, cnsl)
			if err != nil {
				return err
			}
			if loggedIn {
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in to %s as %s\n", cfg.ServiceID, user)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Already logged in to %s as %s\n", cfg.ServiceID, user)
			}
			return nil
		},
	}
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logs out by removing the cookie file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cnsl, err := opts.load()
			if err != nil {
				return err
			}
			sessCfg, err := cfg.Session()
			if err != nil {
				return err
			}
			if _, err := sessCfg.CookiesPath.RemoveFilePretty(cnsl, sessCfg.CookiesPath.Parent()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out from %s\n", cfg.ServiceID)
			return nil
		},
	}
}

func newMeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Shows the user currently logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cnsl, err := opts.load()
			if err != nil {
				return err
			}
			actor, err := newActor(cfg)
			if err != nil {
				return err
			}
			user, ok, err := actor.CurrentUser(cmd.Context(), cnsl)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w to %s", customErr.ErrNotLoggedIn, cfg.ServiceID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", cfg.ServiceID, user)
			return nil
		},
	}
}
