package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entraops/palctl/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file populated with defaults to the standard
location (or the path given with --config), ready to edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}
