package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/WouayNote/umod-copy-paste-cleaner/internal/version"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "cpcleaner",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(newGetInfoCmd())
	rootCmd.AddCommand(newInitSettingsCmd())
	rootCmd.AddCommand(newDoCleanCmd())
	rootCmd.AddCommand(newDoSpaceCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
