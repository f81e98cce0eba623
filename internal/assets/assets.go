// Package assets materializes product images: one local file per
// product, downloaded once and reused by every later build.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codeman8806/thecharmedcardinal.com/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("internal/assets")

// Image locates one materialized product image.
type Image struct {
	// WebPath is the site-relative path pages reference.
	WebPath string
	// File is the path on disk under the output root.
	File string
}

type Materializer struct {
	root string
	http *resty.Client
}

// NewMaterializer writes images under <root>/assets/products. Its
// client follows redirects across hosts, since marketplace images are
// served off a separate CDN.
func NewMaterializer(root string) *Materializer {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "assets/http")

	return &Materializer{root: root, http: client}
}

var knownExtensions = []string{".png", ".webp", ".jpeg"}

// Extension picks the image file extension by substring match over the
// remote URL, defaulting to ".jpg".
func Extension(remoteUrl string) string {
	for _, ext := range knownExtensions {
		if strings.Contains(remoteUrl, ext) {
			return ext
		}
	}
	return ".jpg"
}

// Materialize ensures a local file exists for the product's remote
// image. A file already on disk short-circuits without a request. An
// empty remote URL yields (nil, nil) so the caller can substitute the
// placeholder.
func (m *Materializer) Materialize(ctx context.Context, slug, remoteUrl string) (*Image, error) {
	if strings.TrimSpace(remoteUrl) == "" {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "Materialize")
	defer span.End()
	span.SetAttributes(attribute.String("url", remoteUrl))

	name := slug + Extension(remoteUrl)
	image := &Image{
		WebPath: "/assets/products/" + name,
		File:    filepath.Join(m.root, "assets", "products", name),
	}

	if _, err := os.Stat(image.File); err == nil {
		slog.DebugContext(ctx, "image already materialized", "file", image.File)
		return image, nil
	}

	res, err := m.http.R().SetContext(ctx).Get(remoteUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download image")
		return nil, err
	}
	if !res.IsSuccess() {
		err := fmt.Errorf("unexpected status: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download image")
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(image.File), 0777); err != nil {
		return nil, err
	}
	if err := os.WriteFile(image.File, res.Body(), 0666); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "materialized image", "file", image.File, "bytes", len(res.Body()))
	return image, nil
}
