package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/config"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/settings"
)

func newInitSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-settings",
		Short: MsgInitSettingsShort,
		Long: `init-settings writes the sample filter settings file so you have a
working starting point to edit. It refuses to replace an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			path, err := cfg.ResolveSettingsPath()
			if err != nil {
				return err
			}
			if err := settings.WriteSample(afero.NewOsFs(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample settings to %s\n", path)
			return nil
		},
	}
}
