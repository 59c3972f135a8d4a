package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the checkout payload
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total           decimal.Decimal    `json:"total"`
	CustomerName    string             `json:"customerName" binding:"required,max=200"`
	CustomerEmail   string             `json:"customerEmail" binding:"required,email,max=200"`
	CustomerPhone   string             `json:"customerPhone" binding:"max=50"`
	ShippingAddress string             `json:"shippingAddress" binding:"required,max=1000"`
	WhatsAppEnabled bool               `json:"whatsappEnabled"`
}

// OrderItemRequest is one line of a checkout
type OrderItemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
	Variant   string          `json:"variant" binding:"max=100"`
}

// PlaceOrderResult is returned after a successful checkout
type PlaceOrderResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// UpdateStatusRequest changes the status of an order
type UpdateStatusRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required,order_status"`
}

// ListOrdersFilter narrows the admin order listing
type ListOrdersFilter struct {
	Status string `form:"status" binding:"omitempty,order_status"`
	Search string `form:"search" binding:"max=200"`
}

// ProductSummary is the product referenced by an order line
type ProductSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Image      string    `json:"image,omitempty"`
	CategoryID uuid.UUID `json:"categoryId"`
}

// OrderItemResponse is an order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Variant   string          `json:"variant,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductSummary `json:"product"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	ShippingAddress string              `json:"shippingAddress"`
	WhatsAppEnabled bool                `json:"whatsappEnabled"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
}

// CustomerResponse is a customer derived from order contact details
type CustomerResponse struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	OrderCount  int64           `json:"orderCount"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	LastOrderAt time.Time       `json:"lastOrderAt"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Variant:   item.Variant,
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			items[i].Product = &ProductSummary{
				ID:         item.Product.ID,
				Name:       item.Product.Name,
				Slug:       item.Product.Slug,
				Image:      item.Product.Image,
				CategoryID: item.Product.CategoryID,
			}
		}
	}
	return OrderResponse{
		ID:              o.ID,
		Total:           o.Total,
		Status:          o.Status.String(),
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		ShippingAddress: o.ShippingAddress,
		WhatsAppEnabled: o.WhatsAppEnabled,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

func toCustomerResponses(customers []order.CustomerSummary) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = CustomerResponse{
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			OrderCount:  c.OrderCount,
			TotalSpent:  c.TotalSpent,
			LastOrderAt: c.LastOrderAt,
		}
	}
	return out
}
