package notification

import "context"

// Channel is the medium a message is delivered over
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Message is one outbound notification
type Message struct {
	Channel   Channel `json:"channel"`
	Recipient string  `json:"recipient"`
	Subject   string  `json:"subject,omitempty"`
	Body      string  `json:"body"`
	// Link is a click-to-chat URL for WhatsApp messages
	Link    string `json:"link,omitempty"`
	OrderID string `json:"orderId"`
}

// Sender delivers a message over its channel
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
