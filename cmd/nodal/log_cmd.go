package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newLogCmd())
}

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the project's commit history",
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

			commits, err := sdk.VCS.Log(ctx, pc.Record.ProjectID, limit)
			if err != nil {
				return err
			}

			if len(commits) == 0 {
				fmt.Println(gray.Render("No commits."))
				return nil
			}

			for _, c := range commits {
				fmt.Printf("%s %s %s %s\n",
					yellow.Render(shortID(c.ID)),
					gray.Render(humanize.Time(c.CreatedAt)),
					cyan.Render(c.Author),
					c.Message,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 20, "number of commits to show")

	return cmd
}
