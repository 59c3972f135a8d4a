package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"github.com/horologe/storefront/internal/infrastructure/printing"
	"github.com/horologe/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoicePrinter renders invoice documents
type InvoicePrinter interface {
	Print(ctx context.Context, data printing.InvoiceData) (*printing.Document, error)
}

// StoreSettingsSource supplies the store details printed on invoices
type StoreSettingsSource interface {
	FindStore(ctx context.Context) (*settings.StoreSettings, error)
}

// ServiceConfig holds order lifecycle options
type ServiceConfig struct {
	// EnforceTransitions rejects status changes outside the lifecycle graph
	EnforceTransitions bool
}

// Service handles checkout and back-office order operations
type Service struct {
	repo      order.Repository
	publisher shared.EventPublisher
	printer   InvoicePrinter
	settings  StoreSettingsSource
	config    ServiceConfig
	logger    *zap.Logger
}

// NewService creates a new order Service
func NewService(
	repo order.Repository,
	publisher shared.EventPublisher,
	printer InvoicePrinter,
	settings StoreSettingsSource,
	config ServiceConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		printer:   printer,
		settings:  settings,
		config:    config,
		logger:    logger,
	}
}

// PlaceOrder validates the checkout, stores the order with its items in one
// write and hands the OrderPlaced event to the bus. Notification delivery is
// not awaited.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		telemetry.WithAttribute(telemetry.SpanAttrItemCount, len(req.Items)))
	defer span.End()

	lines := make([]order.LineInput, len(req.Items))
	for i, item := range req.Items {
		lines[i] = order.LineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Variant:   item.Variant,
		}
	}

	o, err := order.NewOrder(
		order.Customer{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone},
		req.ShippingAddress,
		req.WhatsAppEnabled,
		lines,
		req.Total,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, o.ID.String())

	logger.Enrich(ctx, s.logger).Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("items", o.ItemCount()),
	)
	s.publish(ctx, o)

	return &PlaceOrderResult{Success: true, OrderID: o.ID.String()}, nil
}

// UpdateStatus sets the status of an order. Unless transitions are enforced
// any status may be set from any other.
func (s *Service) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, req.ID),
		telemetry.WithAttribute(telemetry.SpanAttrOrderStatus, req.Status))
	defer span.End()

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	o, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	if err := o.SetStatus(status, s.config.EnforceTransitions); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", o.Status.String()),
	)
	s.publish(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListOrders returns orders newest-first with items and products
func (s *Service) ListOrders(ctx context.Context, filter ListOrdersFilter) ([]OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list")
	defer span.End()

	f := order.ListFilter{Search: strings.TrimSpace(filter.Search)}
	if filter.Status != "" {
		status, err := order.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &status
	}

	orders, err := s.repo.FindAll(ctx, f)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetOrder returns a single order
func (s *Service) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// RenderInvoice prints the invoice of an order
func (s *Service) RenderInvoice(ctx context.Context, id string) (*printing.Document, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "render_invoice",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id))
	defer span.End()

	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	store, err := s.settings.FindStore(ctx)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("Printing invoice with default store settings", zap.Error(err))
		store = settings.DefaultStoreSettings()
	}

	doc, err := s.printer.Print(ctx, printing.BuildInvoice(o, store))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.WrapDomainError("INVOICE_RENDER_ERROR", "Failed to render invoice", err)
	}
	return doc, nil
}

// load parses id and fetches the order. An id that is not a UUID cannot
// name an order, so it is reported as not found.
func (s *Service) load(ctx context.Context, id string) (*order.Order, error) {
	orderID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, shared.NewNotFoundError("Order", id)
	}
	return s.repo.FindByID(ctx, orderID)
}

// publish hands pending events to the bus. The order is already stored, so
// a publish failure is only logged.
func (s *Service) publish(ctx context.Context, o *order.Order) {
	events := o.GetDomainEvents()
	o.ClearDomainEvents()
	if len(events) == 0 || s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish order events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
