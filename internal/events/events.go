package events

import (
	"context"
	"encoding/json"
	"time"

	"ombrello-backend/internal/domain"
	"ombrello-backend/internal/logger"
)

type Type string

const (
	RentalAssigned Type = "rental.assigned"
	RentalReturned Type = "rental.returned"
)

// RentalEvent is published after an assign or return has been committed.
type RentalEvent struct {
	Type       Type       `json:"type"`
	RentalID   string     `json:"rental_id"`
	Code       string     `json:"code"`
	VendorID   int64      `json:"vendor_id"`
	UserID     int64      `json:"user_id"`
	Fee        *string    `json:"fee,omitempty"`
	RentedAt   time.Time  `json:"rented_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewRentalEvent(t Type, r *domain.Rental, at time.Time) RentalEvent {
	ev := RentalEvent{
		Type:       t,
		RentalID:   r.RentalID,
		Code:       r.Code,
		VendorID:   r.VendorID,
		UserID:     r.UserID,
		RentedAt:   r.RentedAt,
		ReturnedAt: r.ReturnedAt,
		OccurredAt: at,
	}
	if r.Fee.Valid {
		fee := r.Fee.Decimal.StringFixed(2)
		ev.Fee = &fee
	}
	return ev
}

type Publisher interface {
	PublishRental(ctx context.Context, ev RentalEvent) error
	Close() error
}

// LogPublisher writes events to the application log instead of a broker.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) PublishRental(ctx context.Context, ev RentalEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Rental event", "type", ev.Type, "payload", string(payload))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
