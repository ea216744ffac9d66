package service

import (
	"context"
	"fmt"
	"time"

	"inquiry-service/internal/models"
	"inquiry-service/internal/policy"
	"inquiry-service/internal/store"
	"inquiry-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxMessageLen = 5000
	maxPhoneLen   = 32

	// Format produced by <input type="datetime-local">: no timezone,
	// minute precision.
	preferredTimeLayout = "2006-01-02T15:04"
)

// InquiryStore is the storage surface the service needs.
// *store.Store satisfies it.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inq *models.Inquiry) error
	GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]models.InquiryDetail, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]models.InquiryDetail, error)
	UpdateInquiryStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error)
	GetCarByID(ctx context.Context, id int64) (*models.Car, error)
	FindAdminID(ctx context.Context) (int64, error)
}

// ListCache caches list responses. *redisclient.Client satisfies it.
type ListCache interface {
	GetBuyerList(ctx context.Context, buyerID int64) ([]models.InquiryDetail, bool)
	SetBuyerList(ctx context.Context, buyerID int64, items []models.InquiryDetail)
	GetSellerList(ctx context.Context, sellerID int64) ([]models.InquiryDetail, bool)
	SetSellerList(ctx context.Context, sellerID int64, items []models.InquiryDetail)
	Invalidate(ctx context.Context, buyerID, sellerID int64)
}

// EventPublisher publishes inquiry domain events.
// *broker.EventPublisher satisfies it.
type EventPublisher interface {
	PublishInquiryCreated(ctx context.Context, event *models.InquiryCreatedEvent) error
	PublishInquiryStatusChanged(ctx context.Context, event *models.InquiryStatusChangedEvent) error
}

// InquiryService handles inquiry business logic
type InquiryService struct {
	store  InquiryStore
	cache  ListCache
	events EventPublisher
	logger *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(store InquiryStore, cache ListCache, events EventPublisher) *InquiryService {
	return &InquiryService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateInquiryRequest is the wire shape for inquiry creation.
// SellerID is optional: when zero the service resolves it from the
// listing, falling back to an administrator, then to the buyer.
type CreateInquiryRequest struct {
	CarID         int64  `json:"car_id" binding:"required"`
	BuyerID       int64  `json:"buyer_id" binding:"required"`
	SellerID      int64  `json:"seller_id"`
	Message       string `json:"message" binding:"required"`
	PreferredTime string `json:"preferred_time"`
	ContactPhone  string `json:"contact_phone"`
}

// UpdateStatusRequest is the wire shape for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create validates and persists a new inquiry on behalf of the acting
// buyer, then publishes InquiryCreated.
func (s *InquiryService) Create(ctx context.Context, actor policy.Actor, req *CreateInquiryRequest) (*models.Inquiry, error) {
	ctx, span := util.StartSpan(ctx, "InquiryService.Create")
	defer span.End()

	if err := policy.CanCreate(actor, req.BuyerID); err != nil {
		util.InquiriesFailedTotal.WithLabelValues("forbidden").Inc()
		return nil, err
	}

	if req.Message == "" {
		util.InquiriesFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: message must not be empty", store.ErrValidation)
	}
	if len(req.Message) > maxMessageLen {
		util.InquiriesFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: message exceeds %d characters", store.ErrValidation, maxMessageLen)
	}
	if len(req.ContactPhone) > maxPhoneLen {
		util.InquiriesFailedTotal.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: contact_phone exceeds %d characters", store.ErrValidation, maxPhoneLen)
	}

	var preferredTime *time.Time
	if req.PreferredTime != "" {
		t, err := time.Parse(preferredTimeLayout, req.PreferredTime)
		if err != nil {
			util.InquiriesFailedTotal.WithLabelValues("validation").Inc()
			return nil, fmt.Errorf("%w: preferred_time must be formatted as YYYY-MM-DDTHH:MM", store.ErrValidation)
		}
		preferredTime = &t
	}

	sellerID := req.SellerID
	if sellerID == 0 {
		resolved, err := s.resolveSeller(ctx, req.CarID, req.BuyerID)
		if err != nil {
			util.InquiriesFailedTotal.WithLabelValues("validation").Inc()
			return nil, err
		}
		sellerID = resolved
	}

	inq := &models.Inquiry{
		CarID:         req.CarID,
		BuyerID:       req.BuyerID,
		SellerID:      sellerID,
		Message:       req.Message,
		PreferredTime: preferredTime,
		ContactPhone:  req.ContactPhone,
	}

	if err := s.store.CreateInquiry(ctx, inq); err != nil {
		util.InquiriesFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	util.InquiriesCreatedTotal.Inc()
	s.logger.Info("Inquiry created",
		zap.Int64("inquiry_id", inq.ID),
		zap.Int64("car_id", inq.CarID),
		zap.Int64("buyer_id", inq.BuyerID),
		zap.Int64("seller_id", inq.SellerID))

	s.cache.Invalidate(ctx, inq.BuyerID, inq.SellerID)

	event := &models.InquiryCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeInquiryCreated,
			Timestamp: time.Now(),
		},
		InquiryID: inq.ID,
		CarID:     inq.CarID,
		BuyerID:   inq.BuyerID,
		SellerID:  inq.SellerID,
		Message:   inq.Message,
	}
	if err := s.events.PublishInquiryCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish InquiryCreated event", zap.Error(err))
	}

	return inq, nil
}

// resolveSeller applies the fixed fallback order: the listing's
// registered seller, then the first administrator, then the buyer
// itself. Every inquiry always gets a resolvable recipient.
func (s *InquiryService) resolveSeller(ctx context.Context, carID, buyerID int64) (int64, error) {
	car, err := s.store.GetCarByID(ctx, carID)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown car %d", store.ErrValidation, carID)
	}

	if car.SellerID != nil && *car.SellerID > 0 {
		return *car.SellerID, nil
	}

	adminID, err := s.store.FindAdminID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve fallback seller: %w", err)
	}
	if adminID > 0 {
		return adminID, nil
	}

	return buyerID, nil
}

// ListByBuyer returns the buyer's outgoing inquiries, newest first.
func (s *InquiryService) ListByBuyer(ctx context.Context, actor policy.Actor, buyerID int64) ([]models.InquiryDetail, error) {
	ctx, span := util.StartSpan(ctx, "InquiryService.ListByBuyer")
	defer span.End()

	if err := policy.CanListByBuyer(actor, buyerID); err != nil {
		return nil, err
	}

	if items, ok := s.cache.GetBuyerList(ctx, buyerID); ok {
		util.InquiryListCacheHits.WithLabelValues("hit").Inc()
		return items, nil
	}
	util.InquiryListCacheHits.WithLabelValues("miss").Inc()

	start := time.Now()
	items, err := s.store.ListByBuyer(ctx, buyerID)
	util.InquiryListLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries by buyer: %w", err)
	}

	s.cache.SetBuyerList(ctx, buyerID, items)
	return items, nil
}

// ListBySeller returns the inquiries addressed to the acting seller or
// administrator, newest first.
func (s *InquiryService) ListBySeller(ctx context.Context, actor policy.Actor, sellerID int64) ([]models.InquiryDetail, error) {
	ctx, span := util.StartSpan(ctx, "InquiryService.ListBySeller")
	defer span.End()

	if err := policy.CanListBySeller(actor, sellerID); err != nil {
		return nil, err
	}

	if items, ok := s.cache.GetSellerList(ctx, sellerID); ok {
		util.InquiryListCacheHits.WithLabelValues("hit").Inc()
		return items, nil
	}
	util.InquiryListCacheHits.WithLabelValues("miss").Inc()

	start := time.Now()
	items, err := s.store.ListBySeller(ctx, sellerID)
	util.InquiryListLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries by seller: %w", err)
	}

	s.cache.SetSellerList(ctx, sellerID, items)
	return items, nil
}

// UpdateStatus transitions an inquiry. Re-applying the current status
// is a success no-op, so retries are safe.
func (s *InquiryService) UpdateStatus(ctx context.Context, actor policy.Actor, id int64, status string) (*models.Inquiry, error) {
	ctx, span := util.StartSpan(ctx, "InquiryService.UpdateStatus")
	defer span.End()

	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidStatus, status)
	}

	inq, err := s.store.GetInquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanUpdateStatus(actor, inq); err != nil {
		// Expected access-control outcome, logged at low severity.
		s.logger.Debug("Status update denied",
			zap.Int64("inquiry_id", id),
			zap.Int64("actor_id", actor.ID),
			zap.String("actor_role", actor.Role))
		return nil, err
	}

	if inq.Status == status {
		return inq, nil
	}

	oldStatus := inq.Status
	updated, err := s.store.UpdateInquiryStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	util.InquiryStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Inquiry status updated",
		zap.Int64("inquiry_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", status))

	s.cache.Invalidate(ctx, updated.BuyerID, updated.SellerID)

	event := &models.InquiryStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeInquiryStatusChanged,
			Timestamp: time.Now(),
		},
		InquiryID: updated.ID,
		BuyerID:   updated.BuyerID,
		SellerID:  updated.SellerID,
		OldStatus: oldStatus,
		NewStatus: status,
	}
	if err := s.events.PublishInquiryStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish InquiryStatusChanged event", zap.Error(err))
	}

	return updated, nil
}
