package hqmetrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prometheus/prometheus/prompb"
	"github.com/smallbiznis/pos/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecorderCountsSales(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := newRecorder(registry)

	r.RecordSale("store-1", "Cash", 590, 2)
	r.RecordSale("store-1", "Cash", 649, 1)
	r.RecordSale("", "UPI", 100, 1)
	r.RecordLowStock("store-1")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.metrics.ordersTotal.WithLabelValues("store-1", "Cash")))
	assert.Equal(t, float64(1239), testutil.ToFloat64(r.metrics.revenueTotal.WithLabelValues("store-1", "Cash")))
	assert.Equal(t, float64(3), testutil.ToFloat64(r.metrics.itemsSold.WithLabelValues("store-1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.ordersTotal.WithLabelValues("unknown", "UPI")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.metrics.lowStockAlerts.WithLabelValues("store-1")))
}

func TestToTimeSeriesSortsLabelsAndAddsExternal(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := newRecorder(registry)
	r.RecordLowStock("store-1")

	families, err := registry.Gather()
	require.NoError(t, err)

	series := toTimeSeries(families, map[string]string{"node": "7"}, 1000)
	require.Len(t, series, 1)
	labels := series[0].Labels
	require.Len(t, labels, 3)
	assert.Equal(t, "__name__", labels[0].Name)
	assert.Equal(t, "pos_branch_low_stock_alerts_total", labels[0].Value)
	assert.Equal(t, "node", labels[1].Name)
	assert.Equal(t, "store_id", labels[2].Name)
	assert.Equal(t, float64(1), series[0].Samples[0].Value)
	assert.Equal(t, int64(1000), series[0].Samples[0].Timestamp)
}

func TestRemoteWritePusherPostsSnappyProtobuf(t *testing.T) {
	var got prompb.WriteRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		raw, err := snappy.Decode(nil, body)
		assert.NoError(t, err)
		assert.NoError(t, got.Unmarshal(raw))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	registry := prometheus.NewRegistry()
	newRecorder(registry).RecordSale("store-1", "Card", 590, 2)

	err := NewRemoteWritePusher(srv.URL, "secret").Push(context.Background(), registry)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.NotEmpty(t, got.Timeseries)
}

func TestRemoteWritePusherReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	registry := prometheus.NewRegistry()
	newRecorder(registry).RecordLowStock("store-1")

	err := NewRemoteWritePusher(srv.URL, "").Push(context.Background(), registry)
	assert.Error(t, err)
}

func TestNewPusherSelection(t *testing.T) {
	log := zap.NewNop()

	assert.Nil(t, NewPusher(config.Config{}, log))

	cfg := config.Config{HQMetrics: config.HQMetricsConfig{Enabled: true, Exporter: "prometheus_remote_write", Endpoint: "http://hq.local/api/v1/write"}}
	_, ok := NewPusher(cfg, log).(*RemoteWritePusher)
	assert.True(t, ok)

	cfg.HQMetrics.Exporter = "prometheus_pushgateway"
	_, ok = NewPusher(cfg, log).(*PushgatewayPusher)
	assert.True(t, ok)

	cfg.HQMetrics.Exporter = "statsd"
	assert.Nil(t, NewPusher(cfg, log))
}

func TestNewRecorderDisabledIsNoop(t *testing.T) {
	rec := NewRecorder(config.Config{}, &Registry{Registry: prometheus.NewRegistry()})
	_, ok := rec.(noopRecorder)
	assert.True(t, ok)
}
