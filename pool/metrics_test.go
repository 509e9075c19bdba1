// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool-labs/stakepool/metrics"
	"github.com/stakepool-labs/stakepool/stake"
)

func TestMain(m *testing.M) {
	// the backend must be selected before any meter is first used,
	// same as daemon startup order
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}

func TestMetricsScrape(t *testing.T) {
	p, client, _ := newTestPool(t)
	confirmFunded(t, p, client, "alice", 1000, stake.Days90)

	_, err := p.Reward(100)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	for _, name := range []string{
		"stakepool_metrics_pool_operation_count",
		"stakepool_metrics_pool_total_staked",
		"stakepool_metrics_pool_pending_intention_count",
	} {
		assert.True(t, strings.Contains(string(body), name), name)
	}
}
