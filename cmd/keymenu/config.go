package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/johnconnor-sec/keymenu/internal/config"
	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, check and inspect configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigValidateCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigSchemaCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ValidationFailed, "Configuration file already exists").
					WithValue(path).
					WithDetails(fmt.Sprintf("Path: %s", path)).
					WithSuggestion("Use --force to overwrite it")
			}

			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			output.NewFormatter(a.stdout).Success("Configuration written to %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [PATH...]",
		Short: "Check configuration files",
		Long: `Validate checks each file on its own, on top of the defaults. Without
arguments it checks the standard locations that exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(a.stdout)

			paths := args
			if len(paths) == 0 {
				for _, path := range config.DefaultPaths() {
					if _, err := os.Stat(path); err == nil {
						paths = append(paths, path)
					}
				}
			}
			if len(paths) == 0 {
				formatter.Info("No configuration files found; the defaults apply")
				return nil
			}

			for _, path := range paths {
				cfg, err := config.ValidateFile(path)
				if err != nil {
					return err
				}
				formatter.Success("Configuration is valid: %s", path)
				formatter.Table().
					Row("  page size", fmt.Sprint(cfg.Menu.PageSize)).
					Row("  keys", cfg.Menu.Keys).
					Row("  ui", string(cfg.UI)).
					Print()
			}
			return nil
		},
	}
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.InternalError, "Failed to serialize configuration")
			}

			sources := "defaults only"
			if len(cfg.Sources) > 0 {
				sources = strings.Join(cfg.Sources, ", ")
			}
			fmt.Fprintf(a.stdout, "# sources: %s\n%s", sources, data)
			return nil
		},
	}
}

func newConfigSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [PATH]",
		Short: "Print or save the JSON schema of the configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := config.SaveJSONSchema(args[0]); err != nil {
					return err
				}
				output.NewFormatter(a.stdout).Success("JSON schema written to %s", args[0])
				return nil
			}

			schema, err := config.GenerateJSONSchema()
			if err != nil {
				return errors.Wrap(err, errors.InternalError, "Failed to generate JSON schema")
			}
			fmt.Fprintln(a.stdout, string(schema))
			return nil
		},
	}
}
