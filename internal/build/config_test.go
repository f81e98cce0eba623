package build

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Site: SiteConfig{
			Domain: "https://thecharmedcardinal.example",
			Name:   "The Charmed Cardinal",
		},
		Shop: ShopConfig{
			Discovery: DiscoveryFeed,
			BaseUrl:   "https://marketplace.example",
			FeedUrl:   "https://marketplace.example/shop/TheCharmedCardinal/rss",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{
			name:   "valid feed config",
			mutate: func(c *Config) {},
		},
		{
			name:        "missing domain",
			mutate:      func(c *Config) { c.Site.Domain = "" },
			expectedErr: "site.domain",
		},
		{
			name:        "missing name",
			mutate:      func(c *Config) { c.Site.Name = "" },
			expectedErr: "site.name",
		},
		{
			name:        "missing base url",
			mutate:      func(c *Config) { c.Shop.BaseUrl = "" },
			expectedErr: "shop.base_url",
		},
		{
			name:        "feed discovery without feed url",
			mutate:      func(c *Config) { c.Shop.FeedUrl = "" },
			expectedErr: "shop.feed_url",
		},
		{
			name: "browser discovery without shop url",
			mutate: func(c *Config) {
				c.Shop.Discovery = DiscoveryBrowser
			},
			expectedErr: "shop.shop_url",
		},
		{
			name: "api discovery without api url",
			mutate: func(c *Config) {
				c.Shop.Discovery = DiscoveryAPI
			},
			expectedErr: "shop.api_url",
		},
		{
			name: "unknown discovery mode",
			mutate: func(c *Config) {
				c.Shop.Discovery = "carrier-pigeon"
			},
			expectedErr: "unknown discovery mode",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			config := validConfig()
			test.mutate(&config)

			err := config.Validate()
			if test.expectedErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, test.expectedErr)
			}
		})
	}
}
