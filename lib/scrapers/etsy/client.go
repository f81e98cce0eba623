package etsy

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/codeman8806/thecharmedcardinal.com/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type ClientOptions struct {
	// BaseUrl is the marketplace origin, e.g. "https://www.etsy.com".
	BaseUrl string
	// TitleSuffixes are marketplace tails stripped off scraped titles.
	TitleSuffixes []string
	// CdnHost matches image sources served off the marketplace's asset CDN.
	CdnHost string
	// FetchListingPages controls whether ScrapeListing fetches each
	// listing page or builds metadata from feed items alone.
	FetchListingPages bool
	// RequestsPerSecond paces scrape traffic. Defaults to 2.
	RequestsPerSecond float64
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	limiter *rate.Limiter
	opts    ClientOptions
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/etsy/http")

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &Client{
		baseUrl: baseUrl,
		http:    client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		opts:    opts,
	}, nil
}

func (c *Client) get(ctx context.Context, url string) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("unexpected status: %s", res.Status())
	}
	return res, nil
}
