package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build and taxonomy versions",
		Long:  "Print the gentest module version, the Go toolchain it was built with and the size of the built-in taxonomy.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := "unknown", "unknown"
			if info, ok := debug.ReadBuildInfo(); ok {
				if info.Main.Version != "" {
					version = info.Main.Version
				}

				goVersion = info.GoVersion
			}

			cmd.Printf("gentest\t%s\n", version)
			cmd.Printf("go\t%s\n", goVersion)
			cmd.Printf("contracts\t%d\n", len(contracts.Definitions()))
		},
	}
}

var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
