package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newProjectsCmd())
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := activeConfig()
			if err != nil {
				return err
			}

			sdk, err := newSDK(cmd.Context(), cfg, cfg.ServerURL)
			if err != nil {
				return err
			}

			projects, err := sdk.Projects.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println(gray.Render("No projects."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tFILES\tSIZE\tUPDATED")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					p.Name, p.ID, p.FileCount,
					humanize.Bytes(uint64(p.SizeBytes)),
					humanize.Time(p.UpdatedAt),
				)
			}
			return w.Flush()
		},
	}
}
