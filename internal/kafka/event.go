package kafka

import "time"

type EventType string

const (
	Search   EventType = "search"
	View     EventType = "view"
	Like     EventType = "like"
	Favorite EventType = "favorite"
	Share    EventType = "share"
)

// Event is a single user action on the marketplace.
type Event struct {
	UserID     string    `json:"user_id"`
	Type       EventType `json:"type"`
	ListingID  string    `json:"listing_id,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Query      string    `json:"query,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
