package service

import (
	"context"

	"inquiry-service/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	args := m.Called(ctx, inq)
	return args.Error(0)
}

func (m *mockStore) GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *mockStore) ListByBuyer(ctx context.Context, buyerID int64) ([]models.InquiryDetail, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Error(1)
}

func (m *mockStore) ListBySeller(ctx context.Context, sellerID int64) ([]models.InquiryDetail, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Error(1)
}

func (m *mockStore) UpdateInquiryStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *mockStore) GetCarByID(ctx context.Context, id int64) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *mockStore) FindAdminID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetBuyerList(ctx context.Context, buyerID int64) ([]models.InquiryDetail, bool) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Bool(1)
}

func (m *mockCache) SetBuyerList(ctx context.Context, buyerID int64, items []models.InquiryDetail) {
	m.Called(ctx, buyerID, items)
}

func (m *mockCache) GetSellerList(ctx context.Context, sellerID int64) ([]models.InquiryDetail, bool) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]models.InquiryDetail), args.Bool(1)
}

func (m *mockCache) SetSellerList(ctx context.Context, sellerID int64, items []models.InquiryDetail) {
	m.Called(ctx, sellerID, items)
}

func (m *mockCache) Invalidate(ctx context.Context, buyerID, sellerID int64) {
	m.Called(ctx, buyerID, sellerID)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishInquiryCreated(ctx context.Context, event *models.InquiryCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) PublishInquiryStatusChanged(ctx context.Context, event *models.InquiryStatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
