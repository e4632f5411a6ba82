package models

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// allowedTransitions is the full transition table. completed and cancelled
// are terminal: no outgoing transitions.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are legal from this status.
func (bs BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[bs]) == 0 && bs.IsValid()
}

// CanTransitionTo reports whether moving from bs to target is legal.
func (bs BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range allowedTransitions[bs] {
		if next == target {
			return true
		}
	}
	return false
}

// GetAllBookingStatuses returns every valid booking status.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}
