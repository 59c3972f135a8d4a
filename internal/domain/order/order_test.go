package order

import (
	"errors"
	"testing"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() Customer {
	return Customer{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+15550100"}
}

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(testCustomer(), "1 Analytical Way", true, []LineInput{
		{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(100)},
	}, decimal.NewFromInt(200))
	require.NoError(t, err)
	return o
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{StatusPending, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{OrderStatus("PENDING"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("shipped")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with total equal to item sum", func(t *testing.T) {
		o, err := NewOrder(testCustomer(), "addr", false, []LineInput{
			{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(100)},
			{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("49.50"), Variant: "Steel"},
		}, decimal.RequireFromString("249.5"))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.Total.Equal(decimal.RequireFromString("249.50")))
		assert.True(t, o.Total.Equal(o.ComputedTotal()))
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, 3, o.TotalQuantity())
		assert.Equal(t, "Steel", o.Items[1].Variant)
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("raises OrderPlaced event", func(t *testing.T) {
		o := createTestOrder(t)
		events := o.GetDomainEvents()
		require.Len(t, events, 1)

		placed, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, EventTypeOrderPlaced, placed.EventType())
		assert.Equal(t, o.ID, placed.OrderID)
		assert.Equal(t, "ada@example.com", placed.Recipient.Email)
		assert.True(t, placed.Recipient.WhatsAppEnabled)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		line := []LineInput{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}}
		tests := []struct {
			name     string
			customer Customer
			address  string
			lines    []LineInput
			total    decimal.Decimal
		}{
			{"empty items", testCustomer(), "addr", nil, decimal.Zero},
			{"negative total", testCustomer(), "addr", line, decimal.NewFromInt(-1)},
			{"total mismatch", testCustomer(), "addr", line, decimal.NewFromInt(11)},
			{"missing name", Customer{Email: "a@b.c"}, "addr", line, decimal.NewFromInt(10)},
			{"missing email", Customer{Name: "A"}, "addr", line, decimal.NewFromInt(10)},
			{"missing address", testCustomer(), "  ", line, decimal.NewFromInt(10)},
			{"zero quantity", testCustomer(), "addr", []LineInput{{ProductID: "p1", Quantity: 0, Price: decimal.NewFromInt(10)}}, decimal.Zero},
			{"negative price", testCustomer(), "addr", []LineInput{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(-10)}}, decimal.NewFromInt(-10)},
			{"missing product", testCustomer(), "addr", []LineInput{{Quantity: 1, Price: decimal.NewFromInt(10)}}, decimal.NewFromInt(10)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewOrder(tt.customer, tt.address, false, tt.lines, tt.total)
				require.Error(t, err)
				assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			})
		}
	})
}

func TestOrder_SetStatus(t *testing.T) {
	t.Run("permissive mode accepts any valid status from any status", func(t *testing.T) {
		for _, from := range AllStatuses() {
			for _, to := range AllStatuses() {
				o := createTestOrder(t)
				o.Status = from
				require.NoError(t, o.SetStatus(to, false))
				assert.Equal(t, to, o.Status)
			}
		}
	})

	t.Run("enforced mode rejects illegal transitions", func(t *testing.T) {
		o := createTestOrder(t)
		o.Status = StatusDelivered

		err := o.SetStatus(StatusPending, true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Equal(t, StatusDelivered, o.Status)
	})

	t.Run("enforced mode accepts lifecycle edges", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.SetStatus(StatusShipped, true))
		require.NoError(t, o.SetStatus(StatusDelivered, true))
		assert.True(t, o.IsDelivered())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.SetStatus(OrderStatus("Lost"), false)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("raises status changed event with previous status", func(t *testing.T) {
		o := createTestOrder(t)
		o.ClearDomainEvents()

		require.NoError(t, o.SetStatus(StatusCancelled, false))
		events := o.GetDomainEvents()
		require.Len(t, events, 1)

		changed, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, StatusPending, changed.PreviousStatus)
		assert.Equal(t, StatusCancelled, changed.NewStatus)
		assert.True(t, o.IsCancelled())
	})
}
