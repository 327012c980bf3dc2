package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rlange/teledw/internal/config"
	"github.com/rlange/teledw/internal/exitcode"
	"github.com/rlange/teledw/internal/logging"

	"github.com/rs/zerolog"
)

var (
	cfg     = config.Default()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "dwbuild",
	Short: "Telemedicine dimensional warehouse builder",
	Long:  "Builds a validated star-schema model (six dimensions, two facts) from raw telemedicine extracts and bulk-loads it into Postgres.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("TELEDW_DB_URL"), "Postgres connection string (or set TELEDW_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Path to YAML config file")
}

// setup builds the logger and merges the optional config file. An unreadable
// or invalid config file is a usage error.
func setup() zerolog.Logger {
	log := logging.Setup(cfg.LogFormat)
	if cfgFile != "" {
		if err := cfg.LoadFromFile(cfgFile); err != nil {
			log.Error().Err(err).Msg("config file invalid")
			os.Exit(exitcode.UsageError)
		}
	}
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
