package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

var runParallelFlag int
var runTrialsFlag int
var runSeedFlag int64
var runShardFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [subjects...]",
		Short: "Run the checks of the catalog",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig()
			if err != nil {
				return err
			}

			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Subjects:        args,
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Config:          cfg,
				ShardIndex:      uint(shardIndex),
				TotalShardCount: uint(totalShards),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of checks run in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVarP(&runTrialsFlag, runTrialsFlagName, "n", viper.GetInt(runTrialsConfigKey), "successful trials required per check")
	bindFlagToConfig(cmd.Flags().Lookup(runTrialsFlagName), runTrialsConfigKey)

	cmd.Flags().Int64Var(&runSeedFlag, runSeedFlagName, viper.GetInt64(runSeedConfigKey), "harness seed (0 picks one from the clock)")
	bindFlagToConfig(cmd.Flags().Lookup(runSeedFlagName), runSeedConfigKey)

	cmd.Flags().StringVarP(&runShardFlag, "shard", "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
