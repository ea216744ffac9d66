package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"inquiry-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing inquiry domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishInquiryCreated publishes an InquiryCreated event
func (ep *EventPublisher) PublishInquiryCreated(ctx context.Context, event *models.InquiryCreatedEvent) error {
	key := fmt.Sprintf("inquiry-%d", event.InquiryID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishInquiryStatusChanged publishes an InquiryStatusChanged event
func (ep *EventPublisher) PublishInquiryStatusChanged(ctx context.Context, event *models.InquiryStatusChangedEvent) error {
	key := fmt.Sprintf("inquiry-%d", event.InquiryID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes consumed inquiry events to registered callbacks
type EventHandler struct {
	onInquiryCreated       func(context.Context, *models.InquiryCreatedEvent) error
	onInquiryStatusChanged func(context.Context, *models.InquiryStatusChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnInquiryCreated registers a handler for InquiryCreated events
func (eh *EventHandler) OnInquiryCreated(handler func(context.Context, *models.InquiryCreatedEvent) error) {
	eh.onInquiryCreated = handler
}

// OnInquiryStatusChanged registers a handler for InquiryStatusChanged events
func (eh *EventHandler) OnInquiryStatusChanged(handler func(context.Context, *models.InquiryStatusChangedEvent) error) {
	eh.onInquiryStatusChanged = handler
}

// HandleMessage routes messages to the appropriate handler
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeInquiryCreated:
		if eh.onInquiryCreated != nil {
			var event models.InquiryCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal InquiryCreated event: %w", err)
			}
			return eh.onInquiryCreated(ctx, &event)
		}

	case models.EventTypeInquiryStatusChanged:
		if eh.onInquiryStatusChanged != nil {
			var event models.InquiryStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal InquiryStatusChanged event: %w", err)
			}
			return eh.onInquiryStatusChanged(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
