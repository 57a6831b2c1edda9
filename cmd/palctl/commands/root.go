// Package commands implements the palctl command-line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/cmd/palctl/cmdutil"
	"github.com/entraops/palctl/internal/logger"
	"github.com/entraops/palctl/pkg/config"
)

// Build information, set at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logLevel   string

	// engine is wired once in the persistent pre-run and shared by all
	// subcommands.
	engine *cmdutil.Engine
)

var rootCmd = &cobra.Command{
	Use:   "palctl",
	Short: "Manage partner links across Microsoft Entra tenants",
	Long: `palctl associates your organization's partner identifier with the
Microsoft Entra tenants you administer, so that activity in those
tenants is attributed to your partner record.

Sign in once with 'palctl login', then use 'palctl tenants' to see
which tenants you can reach and 'palctl link' to attach your partner
ID to one or more of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if err := logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		}); err != nil {
			return err
		}
		engine, err = cmdutil.NewEngine(cfg)
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("path to config file (default %s)", config.DefaultPath()))
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tenantsCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// printf writes to stdout; commands use it instead of fmt.Printf so
// output stays distinct from logging.
func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
