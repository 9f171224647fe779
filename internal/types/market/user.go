package market

import "time"

// User is a seller profile. Rating and ReviewCount are aggregates over all
// reviews on all of this seller's active listings, not over a single one.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"createdAt"`
	IsVerified   bool      `json:"isVerified"`
	IsAdmin      bool      `json:"isAdmin,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"reviewCount"`
	Status       string    `json:"status"`
	BanReason    string    `json:"banReason,omitempty"`
	PasswordHash string    `json:"passwordHash,omitempty"`
}

// Public strips credentials before the user goes out over HTTP.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// UserTier is one rung of the loyalty table. The slice order of the table
// is itself an invariant: index order defines the promotion direction.
type UserTier struct {
	Level        string           `json:"level"`
	Benefits     TierBenefits     `json:"benefits"`
	Requirements TierRequirements `json:"requirements"`
}

type TierBenefits struct {
	MaxAds          int     `json:"maxAds"`
	ImageSlots      int     `json:"imageSlots"`
	VideoUpload     bool    `json:"videoUpload"`
	FeaturedAds     int     `json:"featuredAds"`
	AdDuration      int     `json:"adDuration"`
	Analytics       bool    `json:"analytics"`
	CustomThemes    bool    `json:"customThemes"`
	PrioritySupport bool    `json:"prioritySupport"`
	RevenueShare    float64 `json:"revenueShare"`
}

type TierRequirements struct {
	MinTransactions int     `json:"minTransactions"`
	MinRating       float64 `json:"minRating"`
	MinActivity     int     `json:"minActivity"`
}
