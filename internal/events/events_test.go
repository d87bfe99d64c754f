package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ombrello-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRentalEvent(t *testing.T) {
	rentedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	returnedAt := rentedAt.Add(2 * time.Hour)

	t.Run("WithFee", func(t *testing.T) {
		r := &domain.Rental{
			RentalID:   "RENT-20250301-ABCDEF",
			Code:       "UMB-000001",
			VendorID:   2,
			UserID:     3,
			Fee:        decimal.NewNullDecimal(decimal.NewFromInt(250)),
			RentedAt:   rentedAt,
			ReturnedAt: &returnedAt,
		}
		ev := NewRentalEvent(RentalReturned, r, returnedAt)
		require.NotNil(t, ev.Fee)
		assert.Equal(t, "250.00", *ev.Fee)

		raw, err := json.Marshal(ev)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"type":"rental.returned"`)
		assert.Contains(t, string(raw), `"returned_at":"2025-03-01T10:00:00Z"`)
	})

	t.Run("WithoutFee", func(t *testing.T) {
		ev := NewRentalEvent(RentalAssigned, &domain.Rental{Code: "UMB-000001", RentedAt: rentedAt}, rentedAt)
		assert.Nil(t, ev.Fee)
		assert.Nil(t, ev.ReturnedAt)
	})
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	assert.NoError(t, p.PublishRental(context.Background(), RentalEvent{Type: RentalAssigned}))
	assert.NoError(t, p.Close())
}
