package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars binds environment variables to the command's flags. Names are
// VLIST_<FLAG_NAME>, with the flag name upper-cased and dashes replaced by
// underscores:
//   - Flag "log-level" becomes "VLIST_LOG_LEVEL".
//   - Flag "row-height" becomes "VLIST_ROW_HEIGHT".
//
// Arguments take precedence over environment variables, which take precedence
// over the configuration file and then the defaults. A flag set from the
// environment counts as changed, so it overrides the configuration file.
//
// Flag usage is updated to show the variable name in help output.
func bindEnvVars(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		bindFlagToEnv(cmd.Flags(), flag)
	})

	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		bindFlagToEnv(cmd.PersistentFlags(), flag)
	})
}

func bindFlagToEnv(fs *pflag.FlagSet, flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := fs.Set(flag.Name, envValue)
	if err != nil {
		// Keep the default.
		slog.Error("failed to set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)
	}
}

// flagToEnvName converts a flag name to its environment variable name.
// Example: "log-level" -> "VLIST_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	envName := strings.ReplaceAll(flagName, "-", "_")
	return strings.ToUpper(cmdName + "_" + envName)
}
