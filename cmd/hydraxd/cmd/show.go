package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paw-chain/hydrax/app"
)

// ConfigCmd groups commands that inspect configuration.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(showConfigCmd(), msgTypesCmd())
	return cmd
}

func showConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults and environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), cfg)
		},
	}
}

func msgTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "msgs",
		Short: "List the message types a scenario step may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), app.MsgTypeURLs())
		},
	}
}
