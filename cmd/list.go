package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steverpalmer/GenericTesting/internal/domain"
)

var listChecksFlag bool

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [subjects...]",
		Short: "List subjects and their check counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{Subjects: args, Checks: listChecksFlag})
		},
	}

	cmd.Flags().BoolVar(&listChecksFlag, "checks", false, "also print every check with its mode and the override fragment that set it")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
