package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/vlist/pkg/log"
)

const (
	cmdName = "vlist"
	cmdDesc = `Virtualized list viewer that loads rows as you scroll.`
)

type RootArgs struct {
	shutdownTracing func()

	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.OTLPEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint to export traces to")

	err := cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	runCmd := NewRunCmd(runArgs)
	cmd := &cobra.Command{
		Use:                cmdName + " [path]",
		Short:              cmdDesc,
		Example:            cmdExamples,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: teardown(args),
		ValidArgsFunction:  runCmd.ValidArgsFunction,
		Args:               runCmd.Args,
		RunE:               runCmd.RunE,
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)
	cmd.AddCommand(runCmd)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		shutdown, err := setupTracing(cmd.Context(), ra.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		ra.shutdownTracing = shutdown

		return nil
	}
}

func teardown(ra *RootArgs) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		if ra.shutdownTracing != nil {
			ra.shutdownTracing()
		}

		return nil
	}
}
