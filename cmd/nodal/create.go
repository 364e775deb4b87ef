package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new empty project on the server",
		Args:  cobra.ExactArgs(1),
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

			proj, err := sdk.Projects.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s created %s (%s)\n", green.Render("OK"), cyan.Render(proj.Name), proj.ID)
			fmt.Printf("%s nodal clone %s\n", gray.Render("next:"), proj.ID)
			return nil
		},
	}
}
