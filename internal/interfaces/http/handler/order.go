package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	orderapp "github.com/horologe/storefront/internal/application/order"
	"github.com/horologe/storefront/internal/infrastructure/printing"
)

// OrderService is the order use case surface used by OrderHandler
type OrderService interface {
	PlaceOrder(ctx context.Context, req orderapp.PlaceOrderRequest) (*orderapp.PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error)
	ListOrders(ctx context.Context, filter orderapp.ListOrdersFilter) ([]orderapp.OrderResponse, error)
	GetOrder(ctx context.Context, id string) (*orderapp.OrderResponse, error)
	RenderInvoice(ctx context.Context, id string) (*printing.Document, error)
}

// CustomerLister lists customers derived from orders
type CustomerLister interface {
	List(ctx context.Context, search string) ([]orderapp.CustomerResponse, error)
}

// OrderHandler handles checkout and back-office order endpoints
type OrderHandler struct {
	BaseHandler
	orders    OrderService
	customers CustomerLister
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService, customers CustomerLister) *OrderHandler {
	return &OrderHandler{orders: orders, customers: customers}
}

// PlaceOrder godoc
// @ID           placeOrder
// @Summary      Place an order
// @Description  Stores a checkout order as Pending. Confirmation messages are sent in the background.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.PlaceOrderRequest true "Checkout"
// @Success      200 {object} orderapp.PlaceOrderResult
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Orders newest first, optionally filtered by status and a search over customer name, email and order id
// @Tags         admin-orders
// @Produce      json
// @Param        status query string false "Pending, Shipped, Delivered or Cancelled"
// @Param        search query string false "Search term"
// @Success      200 {array} orderapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.ListOrdersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Update order status
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.UpdateStatusRequest true "Order id and new status"
// @Success      200 {object} orderapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Get godoc
// @ID           getOrder
// @Summary      Get an order
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} orderapp.OrderResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Invoice godoc
// @ID           getOrderInvoice
// @Summary      Download an order invoice
// @Description  PDF when a renderer is configured, HTML otherwise
// @Tags         admin-orders
// @Produce      application/pdf,text/html
// @Param        id path string true "Order ID"
// @Param        inline query bool false "Display inline instead of as attachment"
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	doc, err := h.orders.RenderInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("inline") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, doc.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// Customers godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Customers aggregated from orders by email, most recent first
// @Tags         admin-customers
// @Produce      json
// @Param        search query string false "Name or email"
// @Success      200 {array} orderapp.CustomerResponse
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers [get]
func (h *OrderHandler) Customers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}
