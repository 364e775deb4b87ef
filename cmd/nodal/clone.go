package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodalhq/nodal-cli/internal/client/project"
	filesync "github.com/nodalhq/nodal-cli/internal/client/sync"
	"github.com/nodalhq/nodal-cli/internal/utils"
)

func init() {
	rootCmd.AddCommand(newCloneCmd())
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <project-id> [dir]",
		Short: "Clone a project into a local directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cfg, err := activeConfig()
			if err != nil {
				return err
			}

			sdk, err := newSDK(ctx, cfg, cfg.ServerURL)
			if err != nil {
				return err
			}

			proj, err := sdk.Projects.Get(ctx, args[0])
			if err != nil {
				return err
			}

			dir := proj.Name
			if len(args) == 2 {
				dir = args[1]
			}
			dir, err = utils.ResolvePath(dir)
			if err != nil {
				return err
			}

			if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
				return fmt.Errorf("directory %q is not empty", dir)
			}
			if err := utils.EnsureDir(dir); err != nil {
				return err
			}

			rec := &project.Record{
				ProjectID: proj.ID,
				Name:      proj.Name,
				ServerURL: cfg.ServerURL,
			}
			if err := rec.Save(dir); err != nil {
				return err
			}

			// a clone is a sync against an empty tree: everything comes
			// down, and the journal gets seeded with server fingerprints
			pc, err := openProject(dir, true)
			if err != nil {
				return err
			}
			defer pc.Close()

			syncer := filesync.NewSyncer(dir, proj.ID, sdk.Files, pc.Journal)
			res, err := syncer.Sync(ctx)
			if err != nil {
				return err
			}

			if err := pc.touchLastSync(); err != nil {
				return err
			}

			printWarnings(res.Warnings)
			fmt.Printf("%s cloned %s (%d files) into %s\n",
				green.Render("OK"), cyan.Render(proj.Name), len(res.Downloaded), dir)
			return nil
		},
	}
}
