package mission

import "time"

// Known mission statuses. The store treats status as opaque data; these values
// only drive filtering, colouring and the analytics screen.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var knownStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// KnownStatuses returns the statuses offered by the creation screen, in display order.
func KnownStatuses() []string {
	out := make([]string, len(knownStatuses))
	copy(out, knownStatuses)
	return out
}

// IsKnownStatus reports whether status is one of KnownStatuses.
func IsKnownStatus(status string) bool {
	for _, s := range knownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// InitialStatus returns the status a new mission gets when the caller picks none.
func InitialStatus() string {
	return StatusPending
}

// IsClosed reports whether no more work is expected on a mission in this status.
func IsClosed(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// IsOverdue reports whether an open mission is past its due time.
// Missions without a due time are never overdue.
func IsOverdue(m Mission, now time.Time) bool {
	if m.DueAt.IsZero() || IsClosed(m.Status) {
		return false
	}
	return m.DueAt.Before(now)
}

// StatusLabel returns the display label for a status.
func StatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case "":
		return "Unset"
	default:
		return status
	}
}
