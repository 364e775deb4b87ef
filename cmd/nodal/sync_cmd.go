package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	filesync "github.com/nodalhq/nodal-cli/internal/client/sync"
)

func init() {
	rootCmd.AddCommand(newSyncCmd())
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the project with the server",
		Long: `Synchronize the project with the server.

Local changes win: a file changed on both sides is uploaded without
merging. Failed downloads of individual files are warnings and do not
fail the sync.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			pc, err := openProject(cwd, true)
			if err != nil {
				return err
			}
			defer pc.Close()

			cfg, err := activeConfig()
			if err != nil {
				return err
			}

			sdk, err := newSDK(ctx, cfg, pc.Record.ServerURL)
			if err != nil {
				return err
			}

			syncer := filesync.NewSyncer(pc.Root, pc.Record.ProjectID, sdk.Files, pc.Journal)
			res, err := syncer.Sync(ctx)
			if err != nil {
				return err
			}

			if err := pc.touchLastSync(); err != nil {
				return err
			}

			printWarnings(res.Warnings)
			if !res.HasChanges() {
				fmt.Printf("%s already up to date\n", green.Render("OK"))
				return nil
			}

			fmt.Printf("%s synced: %d uploaded, %d downloaded, %d unchanged\n",
				green.Render("OK"), len(res.Uploaded), len(res.Downloaded), res.Unchanged)
			return nil
		},
	}
}
