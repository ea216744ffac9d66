package policy

import (
	"testing"

	"inquiry-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		buyerID int64
		wantErr error
	}{
		{"buyer creates own inquiry", Actor{ID: 7, Role: models.RoleBuyer}, 7, nil},
		{"buyer creates for someone else", Actor{ID: 7, Role: models.RoleBuyer}, 8, ErrForbidden},
		{"seller cannot create", Actor{ID: 7, Role: models.RoleSeller}, 7, ErrForbidden},
		{"admin cannot create", Actor{ID: 7, Role: models.RoleAdmin}, 7, ErrForbidden},
		{"missing identity", Actor{}, 7, ErrAuthRequired},
		{"unknown role", Actor{ID: 7, Role: "ghost"}, 7, ErrAuthRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCreate(tt.actor, tt.buyerID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanListByBuyer(t *testing.T) {
	assert.NoError(t, CanListByBuyer(Actor{ID: 3, Role: models.RoleBuyer}, 3))
	assert.ErrorIs(t, CanListByBuyer(Actor{ID: 3, Role: models.RoleBuyer}, 4), ErrForbidden)
	assert.ErrorIs(t, CanListByBuyer(Actor{ID: 3, Role: models.RoleSeller}, 3), ErrForbidden)
	assert.ErrorIs(t, CanListByBuyer(Actor{}, 3), ErrAuthRequired)
}

func TestCanListBySeller(t *testing.T) {
	assert.NoError(t, CanListBySeller(Actor{ID: 5, Role: models.RoleSeller}, 5))
	assert.NoError(t, CanListBySeller(Actor{ID: 5, Role: models.RoleAdmin}, 5))

	// Admins have no system-wide view; only inquiries addressed to them.
	assert.ErrorIs(t, CanListBySeller(Actor{ID: 5, Role: models.RoleAdmin}, 6), ErrForbidden)
	assert.ErrorIs(t, CanListBySeller(Actor{ID: 5, Role: models.RoleSeller}, 6), ErrForbidden)
	assert.ErrorIs(t, CanListBySeller(Actor{ID: 5, Role: models.RoleBuyer}, 5), ErrForbidden)
}

func TestCanUpdateStatus(t *testing.T) {
	inq := &models.Inquiry{ID: 1, BuyerID: 3, SellerID: 5}

	assert.NoError(t, CanUpdateStatus(Actor{ID: 5, Role: models.RoleSeller}, inq))
	assert.NoError(t, CanUpdateStatus(Actor{ID: 5, Role: models.RoleAdmin}, inq))

	// The acting seller must be the addressed seller.
	assert.ErrorIs(t, CanUpdateStatus(Actor{ID: 6, Role: models.RoleSeller}, inq), ErrForbidden)
	assert.ErrorIs(t, CanUpdateStatus(Actor{ID: 6, Role: models.RoleAdmin}, inq), ErrForbidden)

	// The buyer never transitions their own inquiry.
	assert.ErrorIs(t, CanUpdateStatus(Actor{ID: 3, Role: models.RoleBuyer}, inq), ErrForbidden)

	assert.ErrorIs(t, CanUpdateStatus(Actor{ID: 5, Role: models.RoleSeller}, nil), ErrForbidden)
	assert.ErrorIs(t, CanUpdateStatus(Actor{}, inq), ErrAuthRequired)
}
