package domain

import "time"

// Draft is a trip under construction. It lives only in memory until it is
// saved, at which point it becomes a Trip and the draft is discarded.
// Start and end dates are nil until the planner sets them.
type Draft struct {
	ID           string
	Name         string
	StartDate    *Date
	EndDate      *Date
	Destinations []Destination
	CreatedAt    time.Time

	// Notice is the single user-visible validation message, if any.
	// A zero NoticeExpiresAt means the notice stays until the next
	// successful action.
	Notice          string
	NoticeExpiresAt time.Time
}

// ActiveNotice returns the current notice, or "" once it has expired.
func (d Draft) ActiveNotice(now time.Time) string {
	if d.Notice == "" {
		return ""
	}
	if !d.NoticeExpiresAt.IsZero() && !now.Before(d.NoticeExpiresAt) {
		return ""
	}
	return d.Notice
}

// FindDestination returns the index of the destination with the given ID, or -1.
func (d Draft) FindDestination(id string) int {
	for i, dest := range d.Destinations {
		if dest.ID == id {
			return i
		}
	}
	return -1
}
