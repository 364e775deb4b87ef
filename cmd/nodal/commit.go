package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	filesync "github.com/nodalhq/nodal-cli/internal/client/sync"
)

func init() {
	rootCmd.AddCommand(newCommitCmd())
}

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Sync the project and record a commit on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			if message == "" {
				return errors.New("commit message required (-m)")
			}

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

			// commit always snapshots the server's state, so push local
			// changes up first
			syncer := filesync.NewSyncer(pc.Root, pc.Record.ProjectID, sdk.Files, pc.Journal)
			res, err := syncer.Sync(ctx)
			if err != nil {
				return err
			}
			printWarnings(res.Warnings)

			commit, err := sdk.VCS.Commit(ctx, pc.Record.ProjectID, message)
			if err != nil {
				return err
			}

			if err := pc.touchLastSync(); err != nil {
				return err
			}

			fmt.Printf("%s commit %s: %s\n", green.Render("OK"), cyan.Render(shortID(commit.ID)), commit.Message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
