package main

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=<version>".
var version = "0.0.0"

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand creates the root command. Without a subcommand, it serves the API.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vault",
		Short:   "Envelope budgeting backend: paycheck planning, bill reconciliation and transaction splits",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPlanCommand())

	return rootCmd
}
