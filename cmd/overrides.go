package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steverpalmer/GenericTesting/internal/domain"
)

// overridesCmd represents the overrides command.
var overridesCmd = newOverridesCmd()

func newOverridesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overrides [paths...]",
		Short: "List override annotations in Go sources",
		Long:  overridesLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Overrides(cmd.Context(), domain.OverridesArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(overridesCmd)
}
