package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/batch"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/config"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/settings"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/transform"
)

func newDoCleanCmd() *cobra.Command {
	var (
		input         string
		output        string
		overwrite     bool
		filterID      string
		ownerID       int64
		lockCode      string
		lockRemove    bool
		stripPatterns []string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "do-clean",
		Short: MsgDoCleanShort,
		Long: `do-clean loads the configured filter settings, applies the selected
filter together with the ownership and lock policies to every input
document, and commits each result atomically. The first failing file
aborts the rest of the batch; files committed before it stay committed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			settingsPath, err := cfg.ResolveSettingsPath()
			if err != nil {
				return err
			}
			store, err := settings.Load(settingsPath)
			if err != nil {
				return err
			}
			filter, err := store.Select(filterID)
			if err != nil {
				return err
			}

			req := &transform.Request{
				Filter:             filter,
				ExtraStripPatterns: stripPatterns,
				NewOwnerID:         ownerID,
				LockCode:           lockCode,
				RemoveAllLocks:     lockRemove,
			}
			if err := req.Validate(); err != nil {
				return err
			}

			orchestrator := batch.NewOrchestrator(afero.NewOsFs())
			results, err := orchestrator.Run(batch.Options{
				Input:     input,
				Output:    output,
				Overwrite: overwrite || cfg.Overwrite,
				DryRun:    dryRun,
			}, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%s: removed %d, switched off %d, stripped %d (%d items), owners %d, codes %d, locks removed %d\n",
					r.Pair.Input,
					r.Summary.EntitiesRemoved, r.Summary.EntitiesSwitched,
					r.Summary.EntitiesStripped, r.Summary.ItemsRemoved,
					r.Summary.OwnersAssigned, r.Summary.LockCodesSet, r.Summary.LocksRemoved)
				if r.Summary.LockCodeSkipped {
					fmt.Fprintln(out, "  note: --lock-code skipped because --lock-remove was set")
				}
			}
			if dryRun {
				fmt.Fprintln(out, "\nDRY RUN MODE - no files were written")
			} else {
				fmt.Fprintf(out, "Processed %d file(s)\n", len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", MsgFlagInput)
	cmd.Flags().StringVar(&output, "output", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	cmd.Flags().StringVar(&filterID, "filter-id", "", MsgFlagFilterID)
	cmd.Flags().Int64Var(&ownerID, "owner-id", 0, MsgFlagOwnerID)
	cmd.Flags().StringVar(&lockCode, "lock-code", "", MsgFlagLockCode)
	cmd.Flags().BoolVar(&lockRemove, "lock-remove", false, MsgFlagLockRm)
	cmd.Flags().StringArrayVar(&stripPatterns, "removed-items-from-prefabs", nil, MsgFlagStripXtra)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
