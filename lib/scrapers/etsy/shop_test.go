package etsy

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const shopPageFixture = `<!DOCTYPE html>
<html><body>
<nav><a href="/shop/TheCharmedCardinal?section_id=1">Garden Flags</a></nav>
<div class="listings">
  <a href="https://marketplace.example/listing/111/spring-flag?ref=shop_home_active_1">Spring Flag</a>
  <a href="/listing/222?ref=shop_home_active_2#reviews">Berry Pattern</a>
  <a href="https://marketplace.example/listing/111/spring-flag">Spring Flag (again)</a>
  <a href="/cart">Cart</a>
</div>
</body></html>`

func TestCollectListingRefs(t *testing.T) {
	client := newTestClient(t, "https://marketplace.example")
	doc := parseDoc(t, shopPageFixture)

	seen := map[string]bool{}
	var refs []ListingRef
	added := client.collectListingRefs(context.Background(), doc, "https://marketplace.example/shop/TheCharmedCardinal", seen, &refs)

	require.Equal(t, 2, added)
	diff := cmp.Diff([]ListingRef{
		{ID: "111", URL: "https://marketplace.example/listing/111/spring-flag"},
		{ID: "222", URL: "https://marketplace.example/listing/222"},
	}, refs)
	if diff != "" {
		t.Fatal(diff)
	}

	// a second pass over the same page contributes nothing new
	added = client.collectListingRefs(context.Background(), doc, "https://marketplace.example/shop/TheCharmedCardinal", seen, &refs)
	require.Equal(t, 0, added)
	require.Len(t, refs, 2)
}
