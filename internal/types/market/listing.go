package market

import "time"

const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// Listing is a single marketplace offer. Listings are never physically
// deleted: moderation flips Status to banned and keeps everything else.
type Listing struct {
	ID             string         `json:"id"`
	SellerID       string         `json:"sellerId"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	Images         []string       `json:"images,omitempty"`
	Category       string         `json:"category"`
	Condition      string         `json:"condition"`
	Location       Location       `json:"location"`
	Specifications Specifications `json:"specifications"`
	Stats          Stats          `json:"stats"`
	Delivery       Delivery       `json:"delivery"`
	Availability   Availability   `json:"availability"`
	Status         string         `json:"status"`
	BannedReason   string         `json:"bannedReason,omitempty"`
	// Rating is derived: mean over Reviews, 0 when there are none.
	Rating   float64   `json:"rating"`
	Reviews  []Comment `json:"reviews"`
	Comments []Comment `json:"comments"`
	Reports  []Report  `json:"reports"`
}

// Comment is both a plain comment and a review; a review is simply a
// comment carrying a non-zero Rating. Replies nest arbitrarily deep.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Rating     float64   `json:"rating,omitempty"`
	Likes      int       `json:"likes"`
	Replies    []Comment `json:"replies"`
	CreatedAt  time.Time `json:"createdAt"`
	IsEdited   bool      `json:"isEdited"`
}

type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporterId"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Stats struct {
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	Shares    int       `json:"shares"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Location struct {
	City        string       `json:"city"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Specifications struct {
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Warranty bool   `json:"warranty"`
}

type Delivery struct {
	Available bool    `json:"available"`
	Cost      float64 `json:"cost"`
	Time      string  `json:"time,omitempty"`
	Type      string  `json:"type,omitempty"`
}

type Availability struct {
	Quantity int  `json:"quantity"`
	InStock  bool `json:"inStock"`
}
