package order

import (
	"context"
	"strings"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/infrastructure/telemetry"
)

// CustomerService lists customers derived from guest checkout details
type CustomerService struct {
	repo order.Repository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo order.Repository) *CustomerService {
	return &CustomerService{repo: repo}
}

// List groups orders by customer email, most recent buyer first
func (s *CustomerService) List(ctx context.Context, search string) ([]CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "list")
	defer span.End()

	customers, err := s.repo.ListCustomers(ctx, strings.TrimSpace(search))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return toCustomerResponses(customers), nil
}
