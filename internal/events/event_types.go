package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerJoined EventType = "customer_joined"
	EventStampAdded     EventType = "stamp_added"
	EventRewardUnlocked EventType = "reward_unlocked"
	EventRewardRedeemed EventType = "reward_redeemed"
)

// Event represents a domain event emitted by the passport service.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	CustomerID string      `json:"customer_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// CustomerJoinedPayload payload.
type CustomerJoinedPayload struct {
	PhoneNumber string `json:"phone_number"`
}

// StampAddedPayload payload.
type StampAddedPayload struct {
	StaffPhone    string `json:"staff_phone"`
	CustomerPhone string `json:"customer_phone"`
	Stamps        int    `json:"stamps"`
}

// RewardUnlockedPayload payload.
type RewardUnlockedPayload struct {
	Rewards    int    `json:"rewards"`
	RewardCode string `json:"reward_code"`
}

// RewardRedeemedPayload payload.
type RewardRedeemedPayload struct {
	StaffPhone    string `json:"staff_phone"`
	CustomerPhone string `json:"customer_phone"`
	Rewards       int    `json:"rewards"`
}
