package models

import "time"

// Inquiry statuses. The lifecycle is deliberately loose: any member
// status may overwrite any other, and re-applying the current status
// is a no-op success, so status updates are safe to retry.
const (
	StatusNew      = "new"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusDone     = "done"
)

// Actor roles
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// ValidStatus reports whether s is a member of the known status set.
// Unrecognized values are rejected, never coerced.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusAccepted, StatusDeclined, StatusDone:
		return true
	}
	return false
}

// ValidRole reports whether r is a known actor role.
func ValidRole(r string) bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Inquiry is a buyer's contact request about one car listing, routed
// to a seller. buyer_id, seller_id and car_id are immutable after
// creation; only status may change.
type Inquiry struct {
	ID            int64      `db:"id" json:"id"`
	CarID         int64      `db:"car_id" json:"car_id"`
	BuyerID       int64      `db:"buyer_id" json:"buyer_id"`
	SellerID      int64      `db:"seller_id" json:"seller_id"`
	Message       string     `db:"message" json:"message"`
	PreferredTime *time.Time `db:"preferred_time" json:"preferred_time,omitempty"`
	ContactPhone  string     `db:"contact_phone" json:"contact_phone"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// InquiryDetail is an inquiry row joined with the catalog and user
// directory for display purposes.
type InquiryDetail struct {
	Inquiry
	CarName    string `db:"car_name" json:"car_name"`
	CarVIN     string `db:"car_vin" json:"car_vin"`
	BuyerName  string `db:"buyer_name" json:"buyer_name"`
	SellerName string `db:"seller_name" json:"seller_name"`
}

// Car is a read-only view of a catalog listing. The cars table is
// owned by the dealership app; this service only resolves sellers and
// descriptive fields from it.
type Car struct {
	ID       int64  `db:"id" json:"id"`
	SellerID *int64 `db:"seller_id" json:"seller_id,omitempty"`
	Brand    string `db:"brand" json:"brand"`
	Model    string `db:"model" json:"model"`
	Year     int    `db:"year" json:"year"`
	VIN      string `db:"vin" json:"vin"`
}

// ProcessedEvent marks a consumed event id for notification dedup.
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
