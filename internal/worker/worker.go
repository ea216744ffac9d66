package worker

import (
	"context"
	"fmt"

	"inquiry-service/internal/broker"
	"inquiry-service/internal/models"
	"inquiry-service/internal/store"
	"inquiry-service/internal/util"

	"go.uber.org/zap"
)

// NotificationWorker consumes inquiry events and notifies the affected
// party: the seller when a new inquiry arrives, the buyer when its
// status changes. Events are deduped by id so redelivery after a
// missed commit never double-notifies.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, st *store.Store) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		store:    st,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnInquiryCreated(w.handleInquiryCreated)
	eventHandler.OnInquiryStatusChanged(w.handleInquiryStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleInquiryCreated(ctx context.Context, event *models.InquiryCreatedEvent) error {
	done, err := w.alreadyProcessed(ctx, event.EventID)
	if err != nil || done {
		return err
	}

	w.logger.Info("Notifying seller of new inquiry",
		zap.Int64("inquiry_id", event.InquiryID),
		zap.Int64("seller_id", event.SellerID),
		zap.Int64("car_id", event.CarID))
	util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

func (w *NotificationWorker) handleInquiryStatusChanged(ctx context.Context, event *models.InquiryStatusChangedEvent) error {
	done, err := w.alreadyProcessed(ctx, event.EventID)
	if err != nil || done {
		return err
	}

	w.logger.Info("Notifying buyer of inquiry decision",
		zap.Int64("inquiry_id", event.InquiryID),
		zap.Int64("buyer_id", event.BuyerID),
		zap.String("old_status", event.OldStatus),
		zap.String("new_status", event.NewStatus))
	util.NotificationsSentTotal.WithLabelValues(event.EventType).Inc()

	return w.store.MarkEventProcessed(ctx, event.EventID, event.EventType)
}

func (w *NotificationWorker) alreadyProcessed(ctx context.Context, eventID string) (bool, error) {
	processed, err := w.store.IsEventProcessed(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to check event processed: %w", err)
	}
	if processed {
		w.logger.Info("Event already processed", zap.String("event_id", eventID))
		return true, nil
	}
	return false, nil
}
