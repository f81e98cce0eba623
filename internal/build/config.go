package build

import (
	"errors"
	"fmt"
)

// DiscoveryMode selects how listing URLs are found.
type DiscoveryMode string

const (
	// DiscoveryFeed parses the shop's RSS feed.
	DiscoveryFeed DiscoveryMode = "feed"
	// DiscoveryBrowser walks the shop's paginated index with a
	// headless browser.
	DiscoveryBrowser DiscoveryMode = "browser"
	// DiscoveryAPI reads the shop's sections JSON endpoint.
	DiscoveryAPI DiscoveryMode = "api"
)

type SiteConfig struct {
	// Domain is the absolute origin of the generated site, used for
	// canonical links and the sitemap.
	Domain string `json:"domain"`
	Name   string `json:"name"`
	// TitleSuffixes are marketplace tails stripped off scraped titles.
	TitleSuffixes []string `json:"title_suffixes"`
}

type ShopConfig struct {
	Discovery DiscoveryMode `json:"discovery"`
	// BaseUrl is the marketplace origin relative listing links resolve
	// against.
	BaseUrl string `json:"base_url"`
	FeedUrl string `json:"feed_url"`
	ShopUrl string `json:"shop_url"`
	ApiUrl  string `json:"api_url"`
	// PageCap bounds how many shop pages browser discovery walks.
	PageCap int    `json:"page_cap"`
	CdnHost string `json:"cdn_host"`
	// FetchListingPages false runs the feed-only variant: products are
	// built from feed items without fetching each listing page.
	FetchListingPages bool    `json:"fetch_listing_pages"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

type OutputConfig struct {
	// Root is the directory all artifacts are written under.
	// Defaults to the working directory.
	Root string `json:"root"`
	// PlaceholderImage is the web path substituted when a product has
	// no downloadable image.
	PlaceholderImage string `json:"placeholder_image"`
	// Featured caps how many products the home page shows.
	Featured int `json:"featured"`
}

type Config struct {
	Site   SiteConfig   `json:"site"`
	Shop   ShopConfig   `json:"shop"`
	Output OutputConfig `json:"output"`
}

func (c Config) Validate() error {
	if c.Site.Domain == "" {
		return errors.New("site.domain is required")
	}
	if c.Site.Name == "" {
		return errors.New("site.name is required")
	}
	if c.Shop.BaseUrl == "" {
		return errors.New("shop.base_url is required")
	}

	switch c.Shop.Discovery {
	case DiscoveryFeed:
		if c.Shop.FeedUrl == "" {
			return errors.New("shop.feed_url is required for feed discovery")
		}
	case DiscoveryBrowser:
		if c.Shop.ShopUrl == "" {
			return errors.New("shop.shop_url is required for browser discovery")
		}
	case DiscoveryAPI:
		if c.Shop.ApiUrl == "" {
			return errors.New("shop.api_url is required for api discovery")
		}
	default:
		return fmt.Errorf("unknown discovery mode: %q", c.Shop.Discovery)
	}
	return nil
}
