package commands

import (
	"log/slog"

	"github.com/codeman8806/thecharmedcardinal.com/internal/build"
	"github.com/codeman8806/thecharmedcardinal.com/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Lists the listings a build would scrape, without scraping them.",
	Run: func(cmd *cobra.Command, args []string) {
		builder, err := build.NewBuilder(readBuildConfig())
		if err != nil {
			osutil.Fatal("failed to initialize build", err)
		}

		refs, err := builder.Discover(cmd.Context())
		if err != nil {
			osutil.Fatal("discovery failed", err)
		}

		out := newTable()
		out.AppendHeader(table.Row{"id", "url"})
		for _, ref := range refs {
			out.AppendRow(table.Row{ref.ID, ref.URL})
		}
		out.Render()

		slog.Info("discovery finished", "count", len(refs))
	},
}
