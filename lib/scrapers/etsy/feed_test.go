package etsy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codeman8806/thecharmedcardinal.com/lib/telemetry"
	"github.com/stretchr/testify/require"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>TheCharmedCardinal on Etsy</title>
<link>https://marketplace.example/shop/TheCharmedCardinal</link>
<item>
<title>Spring Garden Flag by TheCharmedCardinal</title>
<link>https://marketplace.example/listing/12345?ref=shop_home_active_1&amp;pro=1</link>
<description>&lt;p&gt;Lovely flag&lt;/p&gt;</description>
<media:content url="https://i.cdn.example/il/12345.jpg" medium="image"/>
</item>
<item>
<title>Seamless Berry Pattern</title>
<link>https://marketplace.example/listing/67890</link>
<description>Digital seamless pattern download</description>
<content:encoded><![CDATA[<img src="https://i.cdn.example/il/67890.png">]]></content:encoded>
</item>
<item>
<title>Spring Garden Flag (duplicate)</title>
<link>https://marketplace.example/listing/12345#reviews</link>
<description>same listing again</description>
</item>
</channel>
</rss>`

func newTestClient(t *testing.T, baseUrl string) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{
		BaseUrl:           baseUrl,
		TitleSuffixes:     []string{" - Etsy", " by TheCharmedCardinal"},
		CdnHost:           "i.cdn.example",
		FetchListingPages: true,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return client
}

func TestDiscoverFromFeed(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:etsy")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	refs, err := client.DiscoverFromFeed(context.Background(), server.URL+"/rss")
	require.NoError(t, err)
	require.Len(t, refs, 2)

	require.Equal(t, "12345", refs[0].ID)
	require.Equal(t, "https://marketplace.example/listing/12345", refs[0].URL)
	require.Equal(t, "Spring Garden Flag by TheCharmedCardinal", refs[0].Item.Title)
	require.Equal(t, "<p>Lovely flag</p>", refs[0].Item.Description)
	require.Equal(t, "https://i.cdn.example/il/12345.jpg", refs[0].Item.ImageURL)

	require.Equal(t, "67890", refs[1].ID)
	require.Equal(t, "https://marketplace.example/listing/67890", refs[1].URL)
	require.Equal(t, "", refs[1].Item.ImageURL)
	require.Contains(t, refs[1].Item.Content, "https://i.cdn.example/il/67890.png")
}

func TestDiscoverFromFeedEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>empty</title></channel></rss>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	refs, err := client.DiscoverFromFeed(context.Background(), server.URL+"/rss")
	require.NoError(t, err)
	require.Empty(t, refs)
}

func TestDiscoverFromFeedBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.DiscoverFromFeed(context.Background(), server.URL+"/rss")
	require.Error(t, err)
}
