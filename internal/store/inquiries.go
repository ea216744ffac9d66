package store

import (
	"context"
	"database/sql"
	"fmt"

	"inquiry-service/internal/models"
)

// detailColumns joins inquiries with the dealership-owned cars and
// users tables so list responses carry display fields.
const detailColumns = `
	i.id, i.car_id, i.buyer_id, i.seller_id, i.message, i.preferred_time,
	i.contact_phone, i.status, i.created_at, i.updated_at,
	TRIM(COALESCE(cars.brand, '') || ' ' || COALESCE(cars.model, '')) AS car_name,
	COALESCE(cars.vin, '') AS car_vin,
	CONCAT_WS(' ', buyers.last_name, buyers.first_name, buyers.middle_name) AS buyer_name,
	CONCAT_WS(' ', sellers.last_name, sellers.first_name, sellers.middle_name) AS seller_name`

const detailJoins = `
	FROM inquiries AS i
	LEFT JOIN cars ON cars.id = i.car_id
	LEFT JOIN users AS buyers ON buyers.id = i.buyer_id
	LEFT JOIN users AS sellers ON sellers.id = i.seller_id`

// CreateInquiry persists a new inquiry with status "new". The id and
// timestamps are assigned by the database; the passed inquiry is
// updated in place.
func (s *Store) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	if inq.CarID == 0 || inq.BuyerID == 0 || inq.SellerID == 0 {
		return fmt.Errorf("%w: car_id, buyer_id and seller_id are required", ErrValidation)
	}
	if inq.Message == "" {
		return fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	query := `
		INSERT INTO inquiries (car_id, buyer_id, seller_id, message, preferred_time, contact_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, created_at, updated_at`

	inq.Status = models.StatusNew
	row := s.db.QueryRowxContext(ctx, query,
		inq.CarID, inq.BuyerID, inq.SellerID, inq.Message, inq.PreferredTime, inq.ContactPhone, inq.Status)
	if err := row.Scan(&inq.ID, &inq.Status, &inq.CreatedAt, &inq.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

// GetInquiryByID retrieves a single inquiry by id
func (s *Store) GetInquiryByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	var inq models.Inquiry
	err := s.db.GetContext(ctx, &inq, "SELECT * FROM inquiries WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

// ListByBuyer returns the buyer's outgoing inquiries, newest first.
func (s *Store) ListByBuyer(ctx context.Context, buyerID int64) ([]models.InquiryDetail, error) {
	items := []models.InquiryDetail{}
	query := "SELECT" + detailColumns + detailJoins + `
	WHERE i.buyer_id = $1
	ORDER BY i.created_at DESC`
	if err := s.db.SelectContext(ctx, &items, query, buyerID); err != nil {
		return nil, err
	}
	return items, nil
}

// ListBySeller returns the inquiries addressed to a seller, newest first.
func (s *Store) ListBySeller(ctx context.Context, sellerID int64) ([]models.InquiryDetail, error) {
	items := []models.InquiryDetail{}
	query := "SELECT" + detailColumns + detailJoins + `
	WHERE i.seller_id = $1
	ORDER BY i.created_at DESC`
	if err := s.db.SelectContext(ctx, &items, query, sellerID); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateInquiryStatus overwrites the status in a single atomic UPDATE.
// Any member of the status set may replace any other; unknown values
// are rejected before touching the database.
func (s *Store) UpdateInquiryStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var inq models.Inquiry
	err := s.db.GetContext(ctx, &inq,
		"UPDATE inquiries SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *",
		status, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return &inq, nil
}
