package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	MediaUploads.WithLabelValues("stored").Inc()
	ListingQueries.WithLabelValues("products").Inc()
	HTTPRequests.WithLabelValues("GET", "/api/products", "200").Inc()

	n, err := testutil.GatherAndCount(reg, "catalog_media_uploads_total", "catalog_listing_queries_total", "catalog_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.Panics(t, func() { RegisterCollectors(reg) }, "double registration must fail loudly")
}
