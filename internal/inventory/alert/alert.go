package alert

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/smallbiznis/pos/internal/config"
	"github.com/smallbiznis/pos/internal/providers/email"
	"go.uber.org/zap"
)

// LowStock describes a tracked variant that fell to or below its threshold after an order.
type LowStock struct {
	StoreID      uuid.UUID
	StoreName    string
	VariantID    uuid.UUID
	VariantName  string
	OrderNumber  string
	Remaining    int
	MinThreshold int
}

type Notifier interface {
	NotifyLowStock(ctx context.Context, items []LowStock) error
}

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("inventory.alert")}
}

func (n *LogNotifier) NotifyLowStock(ctx context.Context, items []LowStock) error {
	for _, item := range items {
		n.log.Warn("low stock",
			zap.String("store_id", item.StoreID.String()),
			zap.String("store_name", item.StoreName),
			zap.String("variant_id", item.VariantID.String()),
			zap.String("variant_name", item.VariantName),
			zap.String("order_number", item.OrderNumber),
			zap.Int("remaining", item.Remaining),
			zap.Int("min_threshold", item.MinThreshold),
		)
	}
	return nil
}

// SMTPNotifier mails one digest per store.
type SMTPNotifier struct {
	provider email.Provider
	to       []string
}

func NewSMTPNotifier(provider email.Provider, to []string) *SMTPNotifier {
	return &SMTPNotifier{provider: provider, to: to}
}

type storeDigest struct {
	StoreName   string
	OrderNumber string
	Items       []LowStock
}

func (n *SMTPNotifier) NotifyLowStock(ctx context.Context, items []LowStock) error {
	var errs []error
	for _, digest := range groupByStore(items) {
		subject := "Low stock at " + digest.StoreName
		if err := n.provider.SendTemplate(ctx, n.to, subject, "low_stock", digest); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func groupByStore(items []LowStock) []storeDigest {
	index := map[uuid.UUID]int{}
	var out []storeDigest
	for _, item := range items {
		i, ok := index[item.StoreID]
		if !ok {
			i = len(out)
			index[item.StoreID] = i
			out = append(out, storeDigest{StoreName: item.StoreName, OrderNumber: item.OrderNumber})
		}
		out[i].Items = append(out[i].Items, item)
	}
	for i := range out {
		sort.SliceStable(out[i].Items, func(a, b int) bool {
			return out[i].Items[a].VariantName < out[i].Items[b].VariantName
		})
	}
	return out
}

type multiNotifier []Notifier

func (m multiNotifier) NotifyLowStock(ctx context.Context, items []LowStock) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyLowStock(ctx, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewNotifier always logs and additionally mails when SMTP alerting is configured.
func NewNotifier(cfg config.Config, provider email.Provider, log *zap.Logger) Notifier {
	logNotifier := NewLogNotifier(log)
	if !cfg.LowStock.Enabled() {
		return logNotifier
	}
	return multiNotifier{logNotifier, NewSMTPNotifier(provider, cfg.LowStock.AlertTo)}
}
