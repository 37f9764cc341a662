package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/judismar/monkeymap/cmd/bench"
	"github.com/judismar/monkeymap/cmd/stress"
	"github.com/judismar/monkeymap/cmd/util"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "monkeymap",
		Short: "fixed-capacity lock-free hash map toolkit",
		Long: fmt.Sprintf(`monkeymap (v%s)

A fixed-capacity, single-writer/multi-reader hash map library built on
multi-choice open addressing, together with a concurrency stress harness
and a benchmark harness for comparing map implementations.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of monkeymap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("monkeymap v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(stress.StressCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Read configuration from .env files and MONKEYMAP_* variables
	cobra.OnInitialize(util.InitConfig)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
