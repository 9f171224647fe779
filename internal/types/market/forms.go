package market

// CreateListing is the form for publishing a new listing.
type CreateListing struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	Images         []string       `json:"images,omitempty"`
	Category       string         `json:"category"`
	Condition      string         `json:"condition"`
	Location       Location       `json:"location"`
	Specifications Specifications `json:"specifications"`
	Delivery       Delivery       `json:"delivery"`
	Availability   Availability   `json:"availability"`
}

// UpdateListing carries a partial update; zero-valued fields are left alone.
type UpdateListing struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	Images      []string `json:"images,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}

type CreateUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type ChangeUser struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// UpdateAdminConfig carries a partial admin config update.
type UpdateAdminConfig struct {
	SiteMaintenance   *bool              `json:"siteMaintenance,omitempty"`
	RegistrationOpen  *bool              `json:"registrationOpen,omitempty"`
	CommissionRates   map[string]float64 `json:"commissionRates,omitempty"`
	ContentModeration string             `json:"contentModeration,omitempty"`
	PaymentMethods    []string           `json:"paymentMethods,omitempty"`
}
