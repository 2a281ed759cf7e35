package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/coffee-passport/internal/events"
)

// MessageSender delivers an outbound message to a phone number.
type MessageSender interface {
	Send(ctx context.Context, phoneNumber, message string) (map[string]any, error)
}

// NotificationService pushes courtesy messages for staff-initiated events.
// Customer-initiated commands get their reply synchronously through the
// webhook, so only events the customer did not trigger themselves produce an
// outbound send. Delivery is fire-and-forget.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     MessageSender
	logger     *zap.Logger
}

// NewNotificationService creates the service. A nil sender degrades to
// log-only handlers.
func NewNotificationService(dispatcher events.Dispatcher, sender MessageSender, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCustomerJoined, n.handleCustomerJoined)
	n.dispatcher.Subscribe(events.EventStampAdded, n.handleStampAdded)
	n.dispatcher.Subscribe(events.EventRewardUnlocked, n.handleRewardUnlocked)
	n.dispatcher.Subscribe(events.EventRewardRedeemed, n.handleRewardRedeemed)
}

func (n *NotificationService) handleCustomerJoined(ctx context.Context, event events.Event) error {
	n.logger.Info("CustomerJoined", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStampAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("StampAdded", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.StampAddedPayload)
	if !ok || payload.CustomerPhone == "" {
		return nil
	}
	n.send(payload.CustomerPhone, fmt.Sprintf(
		"☕ You just earned a stamp! Stamps: %d. Send 'STATUS' for full details.",
		payload.Stamps,
	))
	return nil
}

func (n *NotificationService) handleRewardUnlocked(ctx context.Context, event events.Event) error {
	n.logger.Info("RewardUnlocked", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRewardRedeemed(ctx context.Context, event events.Event) error {
	n.logger.Info("RewardRedeemed", zap.String("customer_id", event.CustomerID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.RewardRedeemedPayload)
	if !ok || payload.CustomerPhone == "" {
		return nil
	}
	n.send(payload.CustomerPhone, "✅ Your reward was redeemed. Your passport has been reset. Send 'STATUS' to see your progress.")
	return nil
}

// send delivers asynchronously; a failed push never fails the command that
// produced the event.
func (n *NotificationService) send(phoneNumber, message string) {
	if n.sender == nil {
		return
	}
	go func() {
		if _, err := n.sender.Send(context.Background(), phoneNumber, message); err != nil {
			n.logger.Warn("outbound notification failed",
				zap.String("phone_number", phoneNumber),
				zap.Error(err))
		}
	}()
}
