package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newLogoutCmd())
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := activeConfig()
			if err != nil {
				return err
			}

			if !cfg.LoggedIn() {
				fmt.Println(gray.Render("Not logged in."))
				return nil
			}

			cfg.RefreshToken = ""
			cfg.AccessToken = ""
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("%s logged out\n", green.Render("OK"))
			return nil
		},
	}
}
