package attendance

import (
	"fmt"
	"time"
)

// View record types as served to clients.
const (
	TypeClockIn     = "clock_in"
	TypeClockOut    = "clock_out"
	TypeLoginEvent  = "login_event"
	TypeLogoutEvent = "logout_event"
)

// EventView is one classified, display-ready record derived from a
// stored event. A single work-shift row expands to one or two views.
type EventView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Late      *bool     `json:"late"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Reason    *string   `json:"earlyCheckoutReason"`
}

// Classify expands a stored event into its view records. View ids are
// derived from the stored id plus a type suffix, so the two views of a
// closed shift never collide and stay stable across repeated calls.
func Classify(e Event) []EventView {
	switch e.Kind() {
	case KindSystemLogin:
		reason := "System Login"
		return []EventView{{
			ID:        fmt.Sprintf("%d_login", e.ID),
			Type:      TypeLoginEvent,
			Timestamp: e.CheckInTime,
			Latitude:  e.CheckInLatitude,
			Longitude: e.CheckInLongitude,
			Reason:    &reason,
		}}
	case KindSystemLogout:
		reason := "System Logout"
		return []EventView{{
			ID:        fmt.Sprintf("%d_logout_event", e.ID),
			Type:      TypeLogoutEvent,
			Timestamp: e.CheckInTime,
			Reason:    &reason,
		}}
	}

	late := e.IsLate
	views := []EventView{{
		ID:        fmt.Sprintf("%d_in", e.ID),
		Type:      TypeClockIn,
		Timestamp: e.CheckInTime,
		Late:      &late,
		Latitude:  e.CheckInLatitude,
		Longitude: e.CheckInLongitude,
	}}

	if e.CheckOutTime != nil {
		views = append(views, EventView{
			ID:        fmt.Sprintf("%d_out", e.ID),
			Type:      TypeClockOut,
			Timestamp: *e.CheckOutTime,
			Latitude:  e.CheckOutLatitude,
			Longitude: e.CheckOutLongitude,
			Reason:    e.CloseReason,
		})
	}

	return views
}

// ClassifyAll classifies every event and concatenates the views in
// input order.
func ClassifyAll(events []Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, Classify(e)...)
	}
	return views
}
