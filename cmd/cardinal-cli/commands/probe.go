package commands

import (
	"github.com/codeman8806/thecharmedcardinal.com/internal/catalog"
	"github.com/codeman8806/thecharmedcardinal.com/lib/osutil"
	"github.com/codeman8806/thecharmedcardinal.com/lib/scrapers/etsy"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe <listing url>",
	Short: "Scrapes a single listing page and prints what was extracted.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := readBuildConfig()

		client, err := etsy.NewClient(etsy.ClientOptions{
			BaseUrl:           config.Shop.BaseUrl,
			TitleSuffixes:     config.Site.TitleSuffixes,
			CdnHost:           config.Shop.CdnHost,
			FetchListingPages: true,
			RequestsPerSecond: config.Shop.RequestsPerSecond,
		})
		if err != nil {
			osutil.Fatal("failed to initialize shop client", err)
		}

		listingUrl := args[0]
		id, ok := etsy.ListingID(listingUrl)
		if !ok {
			id = "?"
		}

		meta, err := client.ScrapeListing(cmd.Context(), etsy.ListingRef{ID: id, URL: listingUrl})
		if err != nil {
			osutil.Fatal("failed to scrape listing", err)
		}

		out := newTable()
		out.AppendRows([]table.Row{
			{"id", id},
			{"title", meta.Title},
			{"description", meta.Description},
			{"image", meta.ImageURL},
			{"type", catalog.InferType(meta.Title, meta.Description)},
		})
		out.Render()
	},
}
