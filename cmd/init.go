package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd writes the effective configuration as a starting gentest.yaml.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a gentest.yaml holding the current settings",
		Long: `Write gentest.yaml in the current directory. The file holds the run sizes,
the logging settings and an empty overrides list, resolved from defaults,
environment and flags, ready to be edited.

An existing file is kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			force, err := cmd.Flags().GetBool(forceFlagName)
			if err != nil {
				return err
			}

			write := viper.SafeWriteConfigAs
			if force {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("write %s: %w", targetPath, err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().Bool(forceFlagName, false, "overwrite an existing configuration file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
