package cmd

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// NewRootCmd creates the hydraxd root command. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hydraxd",
		Short: "Hydrax chain runner",
		Long: `hydraxd runs an in-process hydrax chain: Omnipool, Stableswap, XYK and LBP
pools behind a multi-hop router, DCA schedules executed at the start of every
block, and per-asset circuit breakers. Scenarios describe a genesis and the
messages to deliver at each height.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return nil
		},
	}

	addPersistentFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(
		RunCmd(),
		SweepCmd(),
		ConfigCmd(),
	)
	return rootCmd
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, "", "scenario configuration file (yaml, json or toml)")
	flags.String(flagLogLevel, "info", `log level, e.g. "debug" or "dca:debug,*:info"`)
	flags.String(flagLogFormat, "plain", `log format, "plain" or "json"`)
}

// newLogger builds the logger selected by the persistent flags.
func newLogger(cmd *cobra.Command, out io.Writer) (log.Logger, error) {
	level, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return nil, err
	}
	format, err := cmd.Flags().GetString(flagLogFormat)
	if err != nil {
		return nil, err
	}

	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := []log.Option{log.FilterOption(filter)}
	switch strings.ToLower(format) {
	case "plain", "":
		opts = append(opts, log.ColorOption(false))
	case "json":
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log.NewLogger(out, opts...), nil
}

// loadConfig reads the file named by the --config flag.
func loadConfig(cmd *cobra.Command) (Config, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return Config{}, err
	}
	return LoadConfig(path)
}
