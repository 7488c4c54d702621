package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	ordersCreated   metric.Int64Counter
	orderFailures   metric.Int64Counter
	stockRejections metric.Int64Counter
	orderDuration   metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "pos"
	}
	meter := provider.Meter(name)

	ordersCreated, err := meter.Int64Counter("pos_orders_created_total")
	if err != nil {
		return nil, err
	}
	orderFailures, err := meter.Int64Counter("pos_order_failures_total")
	if err != nil {
		return nil, err
	}
	stockRejections, err := meter.Int64Counter("pos_stock_rejections_total")
	if err != nil {
		return nil, err
	}
	orderDuration, err := meter.Float64Histogram("pos_order_submission_duration_seconds",
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ordersCreated:   ordersCreated,
		orderFailures:   orderFailures,
		stockRejections: stockRejections,
		orderDuration:   orderDuration,
	}, nil
}

// RecordOrderCreated increments the committed order count.
func (m *Metrics) RecordOrderCreated(ctx context.Context, storeID, paymentMethod string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("store_id", strings.TrimSpace(storeID)),
		attribute.String("payment_method", strings.TrimSpace(paymentMethod)),
	)
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.orderDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOrderFailure increments failed submissions by reason.
func (m *Metrics) RecordOrderFailure(ctx context.Context, storeID, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("store_id", strings.TrimSpace(storeID)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.orderFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordStockRejection increments submissions rejected for lack of stock.
func (m *Metrics) RecordStockRejection(ctx context.Context, storeID string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("store_id", strings.TrimSpace(storeID)))
	m.stockRejections.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"store_id":       {},
	"payment_method": {},
	"endpoint":       {},
	"status_code":    {},
	"reason":         {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
