package market

// State is the complete marketplace snapshot, the unit of persistence.
// Reports always live inside listings; the top-level slice stays empty and
// is kept only for snapshot shape compatibility.
type State struct {
	Listings   []Listing  `json:"listings"`
	Users      []User     `json:"users"`
	Categories []Category `json:"categories"`
	Tiers      []UserTier `json:"tiers"`
	Reports    []Report   `json:"reports"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModerationItem is a read-only projection, never stored.
type ModerationItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	TargetID    string `json:"targetId"`
	Reason      string `json:"reason"`
	ReportCount int    `json:"reportCount"`
}

type AdminConfig struct {
	SiteMaintenance   bool               `json:"siteMaintenance"`
	RegistrationOpen  bool               `json:"registrationOpen"`
	CommissionRates   map[string]float64 `json:"commissionRates"`
	ContentModeration string             `json:"contentModeration"`
	PaymentMethods    []string           `json:"paymentMethods"`
}
