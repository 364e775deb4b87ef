package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nodalhq/nodal-cli/internal/client/config"
	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
	"github.com/nodalhq/nodal-cli/internal/utils"
)

func init() {
	rootCmd.AddCommand(newLoginCmd())
}

func newLoginCmd() *cobra.Command {
	var serverURL string
	var email string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a Nodal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := utils.ValidateURL(serverURL); err != nil {
				return err
			}

			configPath := cmd.Flag("config").Value.String()
			resolvedConfigPath, err := utils.ResolvePath(configPath)
			if err != nil {
				return err
			}

			var tokens *nodalsdk.AuthTokenResponse
			var loggedInEmail string

			if passwordStdin {
				if email == "" {
					return errors.New("--password-stdin requires --email")
				}
				reader := bufio.NewReader(os.Stdin)
				password, err := reader.ReadString('\n')
				if err != nil && password == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				tokens, err = nodalsdk.Login(cmd.Context(), serverURL, &nodalsdk.LoginRequest{
					Email:    email,
					Password: strings.TrimRight(password, "\r\n"),
				})
				if err != nil {
					return err
				}
				loggedInEmail = email
			} else {
				onSubmit := func(emailInput, passwordInput string) error {
					t, err := nodalsdk.Login(cmd.Context(), serverURL, &nodalsdk.LoginRequest{
						Email:    emailInput,
						Password: passwordInput,
					})
					if err != nil {
						return err
					}
					tokens = t
					loggedInEmail = emailInput
					return nil
				}

				if err := runLoginTUI(loginTUIOpts{
					Email:         email,
					ServerURL:     serverURL,
					ConfigPath:    resolvedConfigPath,
					SubmitHandler: onSubmit,
				}); err != nil {
					return err
				}
			}

			if tokens == nil {
				return errors.New("login did not produce a session token")
			}

			cfg := &config.Config{
				ServerURL:    serverURL,
				Email:        loggedInEmail,
				RefreshToken: tokens.RefreshToken,
				AccessToken:  tokens.AccessToken,
				Path:         resolvedConfigPath,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Printf("%s logged in as %s\n", green.Render("OK"), cyan.Render(loggedInEmail))
			fmt.Printf("%s %s\n", gray.Render("config"), resolvedConfigPath)
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&serverURL, "server", "s", config.DefaultServerURL, "url of the nodal server")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin instead of prompting")

	return cmd
}
