package main

import (
	"github.com/spf13/cobra"

	"wordgrid/internal/config"
)

func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	var format string
	printCmd := &cobra.Command{
		Use:     "print",
		Short:   "Print the effective configuration",
		Example: "  wordgrid config print --format toml > wordgrid.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, cmd.Flags())
			if err != nil {
				return err
			}
			if cfg.APIKey != "" {
				cfg.APIKey = "***"
			}
			b, err := config.Marshal(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	printCmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml|json|toml")
	cmd.AddCommand(printCmd)
	return cmd
}
