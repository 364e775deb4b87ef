package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
)

func init() {
	rootCmd.AddCommand(newDiffCmd())
}

func newDiffCmd() *cobra.Command {
	var showPatch bool

	cmd := &cobra.Command{
		Use:   "diff [ref]",
		Short: "Show server-side changes since a commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}

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

			entries, err := sdk.VCS.Diff(ctx, pc.Record.ProjectID, ref)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println(gray.Render("No changes."))
				return nil
			}

			for _, e := range entries {
				switch e.Status {
				case nodalsdk.DiffAdded:
					fmt.Printf("%s %s\n", green.Render("A"), e.Path)
				case nodalsdk.DiffDeleted:
					fmt.Printf("%s %s\n", red.Render("D"), e.Path)
				default:
					fmt.Printf("%s %s\n", yellow.Render("M"), e.Path)
				}
				if showPatch && e.Patch != "" {
					fmt.Println(gray.Render(e.Patch))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showPatch, "patch", "p", false, "show patches")

	return cmd
}
