package commands

import (
	"log/slog"

	"github.com/codeman8806/thecharmedcardinal.com/internal/build"
	"github.com/codeman8806/thecharmedcardinal.com/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scrapes the shop and regenerates the whole site.",
	Run: func(cmd *cobra.Command, args []string) {
		builder, err := build.NewBuilder(readBuildConfig())
		if err != nil {
			osutil.Fatal("failed to initialize build", err)
		}

		report, err := builder.Run(cmd.Context())
		if err != nil {
			osutil.Fatal("build failed", err)
		}

		out := newTable()
		out.AppendHeader(table.Row{"slug", "type", "image"})
		for _, product := range report.Products {
			out.AppendRow(table.Row{product.Slug, product.Type, product.ImageLocalPath})
		}
		out.Render()

		if len(report.Dropped) > 0 {
			dropped := newTable()
			dropped.AppendHeader(table.Row{"dropped url", "reason"})
			for _, drop := range report.Dropped {
				dropped.AppendRow(table.Row{drop.URL, drop.Err})
			}
			dropped.Render()
		}

		slog.Info("build finished",
			"products", len(report.Products),
			"dropped", len(report.Dropped),
			"seconds", report.Elapsed.Seconds())
	},
}
