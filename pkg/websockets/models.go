package websockets

import "github.com/streetperformersmap/tips-api/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeTipReceived tells a performer that a tip landed.
	MessageTypeTipReceived MessageType = "tipReceived"
	// MessageTypeTipSent confirms to a payer that their tip went through.
	MessageTypeTipSent MessageType = "tipSent"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// TipPayload is the payload for tip messages.
type TipPayload struct {
	TransactionID    string `json:"transactionId"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	PerformanceTitle string `json:"performanceTitle,omitempty"`
	Message          string `json:"message,omitempty"`
}

// FromNotification converts a tip notification into the message pushed to the client.
func FromNotification(n models.Notification) Message {
	msgType := MessageTypeTipReceived
	if n.Type == models.NotificationTipSent {
		msgType = MessageTypeTipSent
	}
	return Message{
		Type: msgType,
		Payload: TipPayload{
			TransactionID:    n.Payload.TransactionID,
			Amount:           n.Payload.Amount,
			Currency:         n.Payload.Currency,
			PerformanceTitle: n.Payload.PerformanceTitle,
			Message:          n.Payload.Message,
		},
	}
}
