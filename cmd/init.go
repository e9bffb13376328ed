package main

import (
	"fmt"

	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Creates config file in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cnsl := opts.console()
			cwd, err := workspace.Cwd()
			if err != nil {
				return err
			}
			path := cwd.Join(constants.ConfigFileName)
			if path.Exists() && !overwrite {
				return fmt.Errorf("%w: %s", customErr.ErrConfigExists, path)
			}
			if _, err := path.SavePretty(cnsl, cwd, config.GenerateTo, true); err != nil {
				return fmt.Errorf("could not create config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "w", false, "Overwrites the existing config file")
	return cmd
}
