package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/config"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/space"
)

func newDoSpaceCmd() *cobra.Command {
	var (
		input     string
		output    string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "do-space",
		Short: MsgDoSpaceShort,
		Long: `do-space classifies a document's entities into turrets, crates, and
doors, writes them as a structured base configuration, and carries
everything unrecognized into a residual other-entities document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}

			exporter := space.NewExporter(afero.NewOsFs())
			if err := exporter.Export(input, output, overwrite || cfg.Overwrite); err != nil {
				return err
			}

			configPath, otherPath := space.OutputPaths(input, output)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n", configPath, otherPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", MsgFlagInput)
	cmd.Flags().StringVar(&output, "output", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
