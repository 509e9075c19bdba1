// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopByDefault(t *testing.T) {
	// metering through the facade before initialization must be harmless
	Counter("noop_count").Add(1)
	Gauge("noop_gauge").Set(42)
	Histogram("noop_histogram", BucketHTTPReqs).Observe(10)
	CounterVec("noop_vec", []string{"op"}).AddWithLabel(1, map[string]string{"op": "reward"})
	assert.Nil(t, HTTPHandler())
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics() // make sure it starts in the default state of noopMeter

	for _, a := range []any{
		Gauge("noopGauge"),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}

func TestPrometheusBackend(t *testing.T) {
	InitializePrometheusMetrics()
	// a second initialization must not reset the backend
	InitializePrometheusMetrics()

	Counter("pool_operation_count").Add(3)
	Gauge("pool_total_staked").Set(4400)
	CounterVec("pool_errors", []string{"op"}).AddWithLabel(1, map[string]string{"op": "withdraw"})
	Histogram("api_request_duration_ms", BucketHTTPReqs).Observe(7)

	// same name yields the same meter
	assert.Equal(t, Counter("pool_operation_count"), Counter("pool_operation_count"))

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "stakepool_metrics_pool_operation_count"))
	assert.True(t, strings.Contains(string(body), "stakepool_metrics_pool_total_staked"))
}
