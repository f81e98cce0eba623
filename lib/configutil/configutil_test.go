package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Domain  string `json:"domain"`
	PageCap int    `json:"page_cap"`
	Nested  struct {
		FeedUrl string `json:"feed_url"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	writeFile(t, name, `{
		// comments are allowed
		domain: "https://example.com",
		page_cap: 5,
		nested: { feed_url: "https://example.com/rss" },
	}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.Domain)
	require.Equal(t, 5, cfg.PageCap)
	require.Equal(t, "https://example.com/rss", cfg.Nested.FeedUrl)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	writeFile(t, name, `{ domain: "https://example.com", page_cap: 5 }`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ page_cap: 2 }`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.Domain)
	require.Equal(t, 2, cfg.PageCap)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
