package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/codeman8806/thecharmedcardinal.com/internal/build"
	"github.com/codeman8806/thecharmedcardinal.com/lib/configutil"
	"github.com/codeman8806/thecharmedcardinal.com/lib/osutil"
	"github.com/codeman8806/thecharmedcardinal.com/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configFile *string
	verbose    *bool
)

var rootCmd = &cobra.Command{
	Use:   "cardinal-cli",
	Short: "cardinal-cli scrapes the shop's listings and generates the static storefront.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	configFile = rootCmd.PersistentFlags().StringP("config", "c", "config.json5", "The build configuration to use.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func readBuildConfig() build.Config {
	config, err := configutil.ReadConfig[build.Config](*configFile)
	if err != nil {
		osutil.Fatal("failed to read config", err)
	}
	return config
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
