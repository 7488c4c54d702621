package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/pos/internal/catalog/domain"
	"github.com/smallbiznis/pos/internal/clock"
	"github.com/smallbiznis/pos/internal/config"
	"github.com/smallbiznis/pos/internal/hqmetrics"
	"github.com/smallbiznis/pos/internal/inventory/alert"
	inventorydomain "github.com/smallbiznis/pos/internal/inventory/domain"
	"github.com/smallbiznis/pos/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/pos/internal/observability/metrics"
	"github.com/smallbiznis/pos/internal/order/domain"
	"github.com/smallbiznis/pos/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const postCommitTimeout = 10 * time.Second

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Config    config.Config
	Pricing   *config.PricingConfigHolder
	Repo      domain.Repository
	Catalog   catalogdomain.Repository
	Inventory inventorydomain.Repository
	Notifier  alert.Notifier
	Metrics   *obsmetrics.Metrics `optional:"true"`
	Sales     hqmetrics.Recorder  `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	txTimeout time.Duration
	pricing   *config.PricingConfigHolder
	repo      domain.Repository
	catalog   catalogdomain.Repository
	inventory inventorydomain.Repository
	notifier  alert.Notifier
	metrics   *obsmetrics.Metrics
	sales     hqmetrics.Recorder
	validate  *validator.Validate

	// runPostCommit executes side effects that must not delay or fail the response.
	runPostCommit func(func())
}

func New(p Params) domain.Service {
	return newService(p)
}

func newService(p Params) *Service {
	timeout := p.Config.OrderTxTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	sales := p.Sales
	if sales == nil {
		sales = hqmetrics.NoopRecorder()
	}
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("order.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		txTimeout:     timeout,
		pricing:       p.Pricing,
		repo:          p.Repo,
		catalog:       p.Catalog,
		inventory:     p.Inventory,
		notifier:      p.Notifier,
		metrics:       p.Metrics,
		sales:         sales,
		validate:      newValidator(),
		runPostCommit: func(fn func()) { go fn() },
	}
}

// submission is the parsed, validated form of a CreateRequest.
type submission struct {
	storeID uuid.UUID
	items   []submittedItem
	charges []submittedCharge
}

type submittedItem struct {
	variantID uuid.UUID
	quantity  int
	unitPrice decimal.Decimal
}

type submittedCharge struct {
	chargeID uuid.UUID
	amount   decimal.Decimal
}

// Create runs the order submission transaction. Either the order with its items,
// charges and inventory decrements is committed, or nothing is.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	started := time.Now()
	log := logger.WithContext(ctx, s.log)

	order, reserved, err := s.create(ctx, req)
	if err != nil {
		s.recordFailure(ctx, req.StoreID, err)
		log.Info("order rejected", zap.String("reason", failureReason(err)), zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("store_id", order.StoreID.String()),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	s.afterCommit(ctx, order, reserved, time.Since(started))
	return order, nil
}

func (s *Service) create(ctx context.Context, req domain.CreateRequest) (*domain.Order, []inventorydomain.Inventory, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, nil, err
	}
	sub, err := parseSubmission(req)
	if err != nil {
		return nil, nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var (
		order    *domain.Order
		reserved []inventorydomain.Inventory
	)
	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		order, reserved, txErr = s.submit(txCtx, tx, req, sub)
		return txErr
	})
	if err != nil {
		return nil, nil, s.classifyTxError(txCtx, err)
	}
	return order, reserved, nil
}

func (s *Service) submit(ctx context.Context, tx *gorm.DB, req domain.CreateRequest, sub submission) (*domain.Order, []inventorydomain.Inventory, error) {
	store, err := s.catalog.FindStore(ctx, tx, sub.storeID)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, domain.StoreNotFound(sub.storeID)
	}

	variants, err := s.catalog.FindVariants(ctx, tx, distinctVariantIDs(sub.items))
	if err != nil {
		return nil, nil, err
	}
	for _, item := range sub.items {
		if _, ok := variants[item.variantID]; !ok {
			return nil, nil, domain.VariantNotFound(item.variantID)
		}
	}

	chargeIDs := make([]uuid.UUID, 0, len(sub.charges))
	for _, c := range sub.charges {
		chargeIDs = append(chargeIDs, c.chargeID)
	}
	charges, err := s.catalog.FindCharges(ctx, tx, chargeIDs)
	if err != nil {
		return nil, nil, err
	}

	pricedItems := make([]PricedItem, 0, len(sub.items))
	for _, item := range sub.items {
		pricedItems = append(pricedItems, PricedItem{UnitPrice: item.unitPrice, Quantity: item.quantity})
	}
	pricedCharges := make([]PricedCharge, 0, len(sub.charges))
	for _, c := range sub.charges {
		charge, ok := charges[c.chargeID]
		if !ok {
			return nil, nil, domain.ChargeNotFound(c.chargeID)
		}
		pricedCharges = append(pricedCharges, PricedCharge{Amount: c.amount, Taxable: charge.IsTaxable})
	}

	totals := ComputeTotals(pricedItems, pricedCharges, s.pricing.Get())

	payment, err := domain.ResolvePayment(req.PaymentMethod, totals.GrandTotal, req.AmountReceived)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	reserved, err := s.reserve(ctx, tx, sub, variants, now)
	if err != nil {
		return nil, nil, err
	}

	order := &domain.Order{
		ID:                             uuid.New(),
		OrderNumber:                    s.genID.Generate().String(),
		StoreID:                        sub.storeID,
		CustomerName:                   trimmed(req.CustomerName),
		CustomerPhone:                  trimmed(req.CustomerPhone),
		AggregatorID:                   trimmed(req.AggregatorID),
		Subtotal:                       totals.Subtotal,
		AppliedChargesAmountTaxable:    totals.TaxableCharges,
		AppliedChargesAmountNontaxable: totals.NonTaxableCharges,
		DiscountAmount:                 totals.Discount,
		TaxableAmount:                  totals.TaxableAmount,
		CGSTAmount:                     totals.CGST,
		SGSTAmount:                     totals.SGST,
		TotalAmount:                    totals.GrandTotal,
		PaymentMethod:                  req.PaymentMethod,
		ChangeGiven:                    payment.ChangeGiven,
		PaymentStatus:                  payment.Status,
		OrderStatus:                    domain.OrderReceived,
		Notes:                          trimmed(req.Notes),
		Metadata:                       datatypes.JSONMap(req.Metadata),
		CreatedAt:                      now,
		UpdatedAt:                      now,
	}
	if order.Metadata == nil {
		order.Metadata = datatypes.JSONMap{}
	}
	if req.AmountReceived != nil {
		order.AmountReceived = decimal.NewNullDecimal(*req.AmountReceived)
	}
	if err := s.repo.Insert(ctx, tx, order); err != nil {
		return nil, nil, err
	}

	items := make([]domain.OrderItem, 0, len(sub.items))
	for i, item := range sub.items {
		items = append(items, domain.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			VariantID:  item.variantID,
			LineNo:     i,
			Quantity:   item.quantity,
			UnitPrice:  item.unitPrice,
			TotalPrice: LineTotal(item.unitPrice, item.quantity),
		})
	}
	if err := s.repo.InsertItems(ctx, tx, items); err != nil {
		return nil, nil, err
	}

	applied := make([]domain.OrderAppliedCharge, 0, len(sub.charges))
	for i, c := range sub.charges {
		applied = append(applied, domain.OrderAppliedCharge{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ChargeID:      c.chargeID,
			LineNo:        i,
			AmountCharged: c.amount,
		})
	}
	if err := s.repo.InsertAppliedCharges(ctx, tx, applied); err != nil {
		return nil, nil, err
	}

	created, err := s.repo.FindByID(ctx, tx, order.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load created order: %w", err)
	}
	if created == nil {
		return nil, nil, fmt.Errorf("load created order %s: not visible in transaction", order.ID)
	}
	return created, reserved, nil
}

// reserve decrements stock for tracked variants, one conditional update per variant.
// Variants are locked in id order so concurrent submissions cannot deadlock each other.
func (s *Service) reserve(ctx context.Context, tx *gorm.DB, sub submission, variants map[uuid.UUID]catalogdomain.ProductVariant, now time.Time) ([]inventorydomain.Inventory, error) {
	wanted := map[uuid.UUID]int{}
	for _, item := range sub.items {
		if !variants[item.variantID].InventoryTracking.Reserves() {
			continue
		}
		wanted[item.variantID] += item.quantity
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	reserved := make([]inventorydomain.Inventory, 0, len(ids))
	for _, id := range ids {
		row, err := s.inventory.Reserve(ctx, tx, sub.storeID, id, wanted[id], now)
		if err != nil {
			return nil, err
		}
		reserved = append(reserved, *row)
	}
	return reserved, nil
}

func (s *Service) classifyTxError(ctx context.Context, err error) error {
	if isDomainError(err) {
		return err
	}
	if db.IsTransactionTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTransactionTimeout, err)
	}
	return err
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	orderID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) afterCommit(ctx context.Context, order *domain.Order, reserved []inventorydomain.Inventory, elapsed time.Duration) {
	storeID := order.StoreID.String()
	units := 0
	for _, item := range order.Items {
		units += item.Quantity
	}
	total, _ := order.TotalAmount.Float64()

	s.metrics.RecordOrderCreated(ctx, storeID, string(order.PaymentMethod), elapsed)
	s.sales.RecordSale(storeID, string(order.PaymentMethod), total, units)

	lows := lowStock(order, reserved)
	if len(lows) == 0 {
		return
	}
	for range lows {
		s.sales.RecordLowStock(storeID)
	}

	log := logger.WithContext(ctx, s.log)
	notifyCtx := context.WithoutCancel(ctx)
	s.runPostCommit(func() {
		ctx, cancel := context.WithTimeout(notifyCtx, postCommitTimeout)
		defer cancel()
		if err := s.notifier.NotifyLowStock(ctx, lows); err != nil {
			log.Warn("low stock notification failed",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	})
}

func (s *Service) recordFailure(ctx context.Context, storeID string, err error) {
	reason := failureReason(err)
	s.metrics.RecordOrderFailure(ctx, storeID, reason)
	if reason == "insufficient_stock" {
		s.metrics.RecordStockRejection(ctx, storeID)
	}
}

func lowStock(order *domain.Order, reserved []inventorydomain.Inventory) []alert.LowStock {
	names := map[uuid.UUID]string{}
	for _, item := range order.Items {
		if item.Variant == nil {
			continue
		}
		name := item.Variant.Name
		if item.Variant.Product != nil {
			name = item.Variant.Product.Name + " " + name
		}
		names[item.VariantID] = name
	}

	storeName := ""
	if order.Store != nil {
		storeName = order.Store.Name
	}

	var out []alert.LowStock
	for _, inv := range reserved {
		if !inv.IsLow() {
			continue
		}
		out = append(out, alert.LowStock{
			StoreID:      inv.StoreID,
			StoreName:    storeName,
			VariantID:    inv.VariantID,
			VariantName:  names[inv.VariantID],
			OrderNumber:  order.OrderNumber,
			Remaining:    inv.Quantity,
			MinThreshold: inv.MinThreshold,
		})
	}
	return out
}

func parseSubmission(req domain.CreateRequest) (submission, error) {
	var fields []domain.FieldError
	parse := func(field, value string) uuid.UUID {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			fields = append(fields, domain.FieldError{Field: field, Code: "uuid", Message: "must be a valid UUID"})
		}
		return id
	}

	sub := submission{storeID: parse("storeId", req.StoreID)}
	for i, item := range req.Items {
		sub.items = append(sub.items, submittedItem{
			variantID: parse(fmt.Sprintf("items[%d].variantId", i), item.VariantID),
			quantity:  item.Quantity,
			unitPrice: *item.UnitPrice,
		})
	}
	for i, c := range req.AppliedCharges {
		sub.charges = append(sub.charges, submittedCharge{
			chargeID: parse(fmt.Sprintf("applied_charges[%d].chargeId", i), c.ChargeID),
			amount:   *c.AmountCharged,
		})
	}
	if len(fields) > 0 {
		return submission{}, &domain.ValidationError{Fields: fields}
	}
	return sub, nil
}

func distinctVariantIDs(items []submittedItem) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.variantID]; ok {
			continue
		}
		seen[item.variantID] = struct{}{}
		ids = append(ids, item.variantID)
	}
	return ids
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func isDomainError(err error) bool {
	var validationErr *domain.ValidationError
	var stockErr *inventorydomain.InsufficientStockError
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &stockErr),
		errors.Is(err, domain.ErrReferenceNotFound),
		errors.Is(err, domain.ErrMissingAmountReceived),
		errors.Is(err, domain.ErrInsufficientAmount):
		return true
	default:
		return false
	}
}

func failureReason(err error) string {
	var validationErr *domain.ValidationError
	var stockErr *inventorydomain.InsufficientStockError
	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrReferenceNotFound):
		return "reference_not_found"
	case errors.Is(err, domain.ErrMissingAmountReceived):
		return "missing_amount_received"
	case errors.Is(err, domain.ErrInsufficientAmount):
		return "insufficient_amount"
	case errors.Is(err, domain.ErrTransactionTimeout):
		return "timeout"
	default:
		return "internal"
	}
}
