package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steverpalmer/GenericTesting/internal/domain"
)

var contractsDiffFlag []string

// contractsCmd represents the contracts command.
var contractsCmd = newContractsCmd()

func newContractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts [name]",
		Short: "Show the contract taxonomy",
		Long: `Without arguments every contract is listed with its parents and check counts.
A contract name shows its flattened checks. --diff A,B compares the checks of
two contracts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractArgs := domain.ContractsArgs{Diff: contractsDiffFlag}
			if len(args) == 1 {
				contractArgs.Name = args[0]
			}

			return workflow.Contracts(cmd.Context(), contractArgs)
		},
	}

	cmd.Flags().StringSliceVar(&contractsDiffFlag, "diff", nil, "two contracts to compare, e.g. --diff Ring,Field")

	return cmd
}

func init() {
	rootCmd.AddCommand(contractsCmd)
}
