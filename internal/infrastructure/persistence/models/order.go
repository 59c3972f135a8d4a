package models

import (
	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	Total           decimal.Decimal   `gorm:"type:decimal(18,2);not null"`
	Status          order.OrderStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
	CustomerName    string            `gorm:"type:varchar(200);not null"`
	CustomerEmail   string            `gorm:"type:varchar(200);not null;index"`
	CustomerPhone   string            `gorm:"type:varchar(50)"`
	ShippingAddress string            `gorm:"type:text;not null"`
	WhatsAppEnabled bool              `gorm:"column:whats_app_enabled;not null;default:false"`
	Items           []OrderItemModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line. ProductID is
// kept as text because the storefront submits opaque product identifiers.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null;default:0"`
	ProductID string          `gorm:"type:varchar(64);not null;index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Variant   string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order. Products
// holds the referenced products keyed by item product id; missing keys
// leave OrderItem.Product nil.
func (m *OrderModel) ToDomain(products map[string]*order.ProductRef) *order.Order {
	o := &order.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Total:             m.Total,
		Status:            m.Status,
		Customer: order.Customer{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		ShippingAddress: m.ShippingAddress,
		WhatsAppEnabled: m.WhatsAppEnabled,
		Items:           make([]order.OrderItem, 0, len(m.Items)),
	}
	for _, im := range m.Items {
		o.Items = append(o.Items, order.OrderItem{
			ID:        im.ID,
			OrderID:   im.OrderID,
			ProductID: im.ProductID,
			Quantity:  im.Quantity,
			Price:     im.Price,
			Variant:   im.Variant,
			Product:   products[im.ProductID],
		})
	}
	return o
}

// OrderModelFromDomain creates a persistence model, items included
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		Total:           o.Total,
		Status:          o.Status,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		ShippingAddress: o.ShippingAddress,
		WhatsAppEnabled: o.WhatsAppEnabled,
		Items:           make([]OrderItemModel, 0, len(o.Items)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i, item := range o.Items {
		m.Items = append(m.Items, OrderItemModel{
			ID:        item.ID,
			OrderID:   o.ID,
			Position:  i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Variant:   item.Variant,
		})
	}
	return m
}
