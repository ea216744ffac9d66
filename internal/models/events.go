package models

import "time"

// Event types
const (
	EventTypeInquiryCreated       = "INQUIRY_CREATED"
	EventTypeInquiryStatusChanged = "INQUIRY_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// InquiryCreatedEvent is published when a buyer submits a new inquiry.
// The notification worker uses it to alert the addressed seller.
type InquiryCreatedEvent struct {
	BaseEvent
	InquiryID int64  `json:"inquiry_id"`
	CarID     int64  `json:"car_id"`
	BuyerID   int64  `json:"buyer_id"`
	SellerID  int64  `json:"seller_id"`
	Message   string `json:"message"`
}

// InquiryStatusChangedEvent is published when a seller or administrator
// transitions an inquiry. No-op same-status updates do not emit it.
type InquiryStatusChangedEvent struct {
	BaseEvent
	InquiryID int64  `json:"inquiry_id"`
	BuyerID   int64  `json:"buyer_id"`
	SellerID  int64  `json:"seller_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
