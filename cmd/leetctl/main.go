// Command leetctl is the operator companion of the tracker server: it
// migrates the schema, mints development tokens and runs the assistant
// offline against a solution file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leet_tracker/internal/platform/config"
	"leet_tracker/internal/platform/logger"
)

var (
	logLevel string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "leetctl",
	Short: "Operator tooling for the LeetCode tracker",
	Long: `leetctl works against the same configuration as the server (.env and
environment variables).

  migrate  - create or update the database schema
  token    - mint a signed bearer token for a user
  analyze  - print the complexity analysis of a solution file
  ask      - ask the assistant a question about a solution file`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		l, err := logger.New(logLevel, "console")
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
