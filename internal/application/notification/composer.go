package notification

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// Placeholders understood in store-configured templates
const (
	PlaceholderOrderID      = "{orderId}"
	PlaceholderCustomerName = "{customerName}"
	PlaceholderTotal        = "{total}"
	PlaceholderStatus       = "{status}"
	PlaceholderStoreName    = "{storeName}"
)

const (
	defaultPlacedSubject = "{storeName}: order {orderId} received"
	defaultPlacedEmail   = "Hi {customerName},\n\nThank you for your order {orderId}. " +
		"Order total: {total}.\nWe will let you know as soon as it ships.\n\n{storeName}"
	defaultPlacedMobile = "{storeName}: thank you {customerName}! Order {orderId} received, total {total}."

	defaultStatusSubject = "{storeName}: order {orderId} is now {status}"
	defaultStatusEmail   = "Hi {customerName},\n\nYour order {orderId} is now {status}.\n\n{storeName}"
	defaultStatusMobile  = "{storeName}: order {orderId} is now {status}."
)

// Composer turns order events into messages: one email, plus exactly one
// mobile message, WhatsApp when the customer opted in and SMS otherwise.
type Composer struct{}

// NewComposer creates a Composer
func NewComposer() *Composer {
	return &Composer{}
}

type facts struct {
	orderID   string
	recipient order.Recipient
	total     string
	status    string
}

func (f facts) replacer(storeName string) *strings.Replacer {
	return strings.NewReplacer(
		PlaceholderOrderID, f.orderID,
		PlaceholderCustomerName, f.recipient.Name,
		PlaceholderTotal, f.total,
		PlaceholderStatus, f.status,
		PlaceholderStoreName, storeName,
	)
}

// OrderPlaced composes the messages for a new order
func (c *Composer) OrderPlaced(e *order.OrderPlacedEvent, s *settings.StoreSettings) []Message {
	f := facts{
		orderID:   e.OrderID.String(),
		recipient: e.Recipient,
		total:     formatMoney(s.CurrencySymbol, e.Total),
		status:    string(order.StatusPending),
	}
	return c.compose(f, s, s.OrderPlacedTemplate, defaultPlacedSubject, defaultPlacedEmail, defaultPlacedMobile)
}

// StatusChanged composes the messages for a status update
func (c *Composer) StatusChanged(e *order.OrderStatusChangedEvent, s *settings.StoreSettings) []Message {
	f := facts{
		orderID:   e.OrderID.String(),
		recipient: e.Recipient,
		total:     formatMoney(s.CurrencySymbol, e.Total),
		status:    string(e.NewStatus),
	}
	return c.compose(f, s, s.StatusChangedTemplate, defaultStatusSubject, defaultStatusEmail, defaultStatusMobile)
}

// compose applies the store template when one is configured; it then
// replaces both the email and the mobile default body.
func (c *Composer) compose(f facts, s *settings.StoreSettings, custom, subject, email, mobile string) []Message {
	r := f.replacer(s.StoreName)
	if t := strings.TrimSpace(custom); t != "" {
		email, mobile = t, t
	}

	msgs := []Message{{
		Channel:   ChannelEmail,
		Recipient: f.recipient.Email,
		Subject:   r.Replace(subject),
		Body:      r.Replace(email),
		OrderID:   f.orderID,
	}}

	body := r.Replace(mobile)
	if f.recipient.WhatsAppEnabled {
		digits := phoneDigits(f.recipient.Phone)
		msgs = append(msgs, Message{
			Channel:   ChannelWhatsApp,
			Recipient: digits,
			Body:      body,
			Link:      whatsAppLink(digits, body),
			OrderID:   f.orderID,
		})
	} else {
		msgs = append(msgs, Message{
			Channel:   ChannelSMS,
			Recipient: f.recipient.Phone,
			Body:      body,
			OrderID:   f.orderID,
		})
	}
	return msgs
}

func formatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

func phoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

// whatsAppLink builds a click-to-chat URL; empty when there is no number
func whatsAppLink(digits, text string) string {
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}
