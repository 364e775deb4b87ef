package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	filesync "github.com/nodalhq/nodal-cli/internal/client/sync"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending changes between the local tree and the server",
		Long: `Show pending changes between the local tree and the server.

Files that exist only locally or differ from the server are listed as
uploads; files that exist only on the server are listed as downloads.
Note that deleting a file locally does not delete it on the server: the
next sync downloads it again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			pc, err := openProject(cwd, false)
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
			cs, err := syncer.Changes(ctx)
			if err != nil {
				return err
			}

			if !cs.HasChanges() {
				fmt.Printf("%s project %s is up to date\n", green.Render("OK"), cyan.Render(pc.Record.Name))
				return nil
			}

			for _, path := range cs.Upload {
				fmt.Printf("%s %s\n", green.Render("↑ upload"), path)
			}
			for _, path := range cs.Download {
				fmt.Printf("%s %s\n", yellow.Render("↓ download"), path)
			}
			fmt.Printf("\n%d to upload, %d to download\n", len(cs.Upload), len(cs.Download))
			return nil
		},
	}
}
