// Package cmd provides the root command and CLI setup for gentest.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/steverpalmer/GenericTesting/internal/adapter"
	"github.com/steverpalmer/GenericTesting/internal/catalog"
	"github.com/steverpalmer/GenericTesting/internal/controller"
	"github.com/steverpalmer/GenericTesting/internal/domain"
	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var loader *domain.Loader
var subjects *catalog.Catalog
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns filters the sources scanned by the overrides command.
var excludePatterns []string

var verboseFlag bool

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()

	overrides, err := loadOverrides()
	cobra.CheckErr(err)

	loader, err = contracts.Default(domain.WithDocOverrides(), domain.WithOverrides(overrides))
	cobra.CheckErr(err)

	subjects, err = catalog.New(context.Background(), goFileAdapter)
	cobra.CheckErr(err)

	workflow = domain.NewWorkflow(
		loader,
		subjects,
		fsAdapter,
		goFileAdapter,
		reportStore,
		ui,
	)
}

const subjectsHelp = `Subjects are named by type (int64, Set[int], time.Duration) or by a
registered kind, which selects every subject of that kind (Integral).`

const rootLongDescription = `Gentest synthesises property-based test suites from algebraic contracts.
Each subject type is matched to the contracts it claims to satisfy, and
every law of those contracts is checked against generated values.

` + subjectsHelp

const runLongDescription = `Discover, bind and run the checks of the given subjects (default: all).

` + subjectsHelp

const listLongDescription = `List subjects with their contracts and the number of checks per mode.

` + subjectsHelp

const overridesLongDescription = `Scan Go sources for gentest: blocks in type doc comments.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gentest",
		Short: "Contract-driven property testing",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude source files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
