package dto

// IncomingMessage is the webhook payload posted by the WhatsApp gateway.
type IncomingMessage struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	MessageID   string `json:"message_id"`
	Timestamp   int64  `json:"timestamp"`
}

// MessageResponse is returned to the gateway for relay to the sender.
type MessageResponse struct {
	Reply   string `json:"reply,omitempty"`
	Success bool   `json:"success"`
}

// SendMessageRequest is the outbound send passthrough payload.
type SendMessageRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}
