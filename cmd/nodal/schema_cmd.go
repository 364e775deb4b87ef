package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/nodalhq/nodal-cli/internal/schema"
)

func init() {
	rootCmd.AddCommand(newSchemaCmd())
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and update the project's input field schema",
	}

	cmd.AddCommand(newSchemaGetCmd(), newSchemaSetCmd(), newSchemaValidateCmd())
	return cmd
}

func newSchemaGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the project's field schema",
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

			obj, err := sdk.Schema.Get(ctx, pc.Record.ProjectID)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(obj, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(obj.Fields) == 0 {
				fmt.Println(gray.Render("Empty schema."))
				return nil
			}
			printFields(obj.Fields, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

func newSchemaSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file>",
		Short: "Replace the project's field schema from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			obj, err := readSchemaFile(args[0])
			if err != nil {
				return err
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

			if err := sdk.Schema.Put(ctx, pc.Record.ProjectID, obj); err != nil {
				return err
			}

			fmt.Printf("%s schema updated (%d top-level fields)\n", green.Render("OK"), len(obj.Fields))
			return nil
		},
	}
}

func newSchemaValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a schema JSON file without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if _, err := readSchemaFile(args[0]); err != nil {
				return err
			}

			fmt.Printf("%s %s is a valid schema\n", green.Render("OK"), args[0])
			return nil
		},
	}
}

func readSchemaFile(path string) (*schema.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var obj schema.Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", path, err)
	}

	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &obj, nil
}

func printFields(fields []schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		kind := string(f.Kind)
		if f.Kind == schema.KindArray && f.Elem != nil {
			kind = fmt.Sprintf("array<%s>", f.Elem.Kind)
		}

		optional := ""
		if f.Optional {
			optional = gray.Render(" (optional)")
		}

		fmt.Printf("%s%s %s%s\n", indent, cyan.Render(f.Name), kind, optional)

		switch {
		case f.Kind == schema.KindObject:
			printFields(f.Fields, depth+1)
		case f.Kind == schema.KindArray && f.Elem != nil && f.Elem.Kind == schema.KindObject:
			printFields(f.Elem.Fields, depth+1)
		}
	}
}
