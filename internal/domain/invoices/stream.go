package invoices

import (
	"fmt"
	"math"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// StreamStatus is the lifecycle state of a payment stream.
type StreamStatus string

// Stored stream statuses. Scheduled and completed are derived, see Stream.EffectiveStatus.
const (
	StreamActive    StreamStatus = "active"
	StreamCancelled StreamStatus = "cancelled"
	StreamScheduled StreamStatus = "scheduled"
	StreamCompleted StreamStatus = "completed"
)

// Stream is a linear per-second payment towards an invoice.
type Stream struct {
	ID               string       `validate:"required,uuid4"`
	InvoiceID        string       `validate:"required,uuid4"`
	SenderAddress    string       `validate:"required,eth_addr"`
	RecipientAddress string       `validate:"required,eth_addr"`
	RatePerSecond    int64        `validate:"min=1,max=1000000000000"`
	StartTime        time.Time    `validate:"required"`
	StopTime         time.Time    `validate:"required"`
	Status           StreamStatus `validate:"required,oneof=active cancelled"`
	CancelledAt      *time.Time
	CreatedAt        time.Time `validate:"required"`
	UpdatedAt        time.Time
}

// Validate for validating Stream struct
func (s *Stream) Validate() error {
	if err := validators.Struct(s); err != nil {
		return err
	}
	if !s.StopTime.After(s.StartTime) {
		return fmt.Errorf("%w: stop time must be after start time", apperr.ErrValidation)
	}
	if _, err := s.accrued(s.StopTime); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

// Deposit is the amount the stream pays out when it runs to completion.
// Streams that passed Validate never saturate.
func (s *Stream) Deposit() int64 {
	return s.saturated(s.StopTime)
}

func (s *Stream) accrued(end time.Time) (int64, error) {
	if !end.After(s.StartTime) {
		return 0, nil
	}
	return MulAmounts(s.RatePerSecond, int64(end.Sub(s.StartTime)/time.Second))
}

func (s *Stream) saturated(end time.Time) int64 {
	amount, err := s.accrued(end)
	if err != nil {
		return math.MaxInt64
	}
	return amount
}

// StreamedAmount is the amount accrued until at. Cancelled streams stop accruing at cancellation.
func (s *Stream) StreamedAmount(at time.Time) int64 {
	end := at
	if s.StopTime.Before(end) {
		end = s.StopTime
	}
	if s.Status == StreamCancelled && s.CancelledAt != nil && s.CancelledAt.Before(end) {
		end = *s.CancelledAt
	}
	return s.saturated(end)
}

// EffectiveStatus reports scheduled, active, completed or cancelled at the given time.
func (s *Stream) EffectiveStatus(at time.Time) StreamStatus {
	switch {
	case s.Status == StreamCancelled:
		return StreamCancelled
	case !at.Before(s.StopTime):
		return StreamCompleted
	case at.Before(s.StartTime):
		return StreamScheduled
	default:
		return StreamActive
	}
}

// Cancel freezes the stream at now.
func (s *Stream) Cancel(now time.Time) error {
	if s.EffectiveStatus(now) == StreamCancelled || s.EffectiveStatus(now) == StreamCompleted {
		return fmt.Errorf("%w: stream is %s", apperr.ErrInvalidState, s.EffectiveStatus(now))
	}
	s.Status = StreamCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	return nil
}
