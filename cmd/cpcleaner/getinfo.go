package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/info"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

func newGetInfoCmd() *cobra.Command {
	var (
		input  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "get-info",
		Short: MsgGetInfoShort,
		Long:  "get-info reads a document and prints its statistics. It never writes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInputNotFound, "reading %s", input)
			}
			doc, err := paste.Parse(data)
			if err != nil {
				return err
			}
			if err := doc.CheckVersion(); err != nil {
				return err
			}

			report := info.Build(doc)
			if asJSON {
				return info.RenderJSON(cmd.OutOrStdout(), report)
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				pterm.DisableColor()
			}
			return info.Render(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", MsgFlagInput)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
