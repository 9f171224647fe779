package market

// DefaultTiers is the ordered loyalty table. Promotion and demotion walk
// this slice by index, so the order matters.
func DefaultTiers() []UserTier {
	return []UserTier{
		{
			Level:        "normal",
			Benefits:     TierBenefits{MaxAds: 5, ImageSlots: 3, AdDuration: 30},
			Requirements: TierRequirements{MinTransactions: 0, MinRating: 0, MinActivity: 0},
		},
		{
			Level:        "bronze",
			Benefits:     TierBenefits{MaxAds: 15, ImageSlots: 5, FeaturedAds: 1, AdDuration: 45, Analytics: true},
			Requirements: TierRequirements{MinTransactions: 10, MinRating: 4.0, MinActivity: 10},
		},
		{
			Level:        "silver",
			Benefits:     TierBenefits{MaxAds: 30, ImageSlots: 8, VideoUpload: true, FeaturedAds: 3, AdDuration: 60, Analytics: true},
			Requirements: TierRequirements{MinTransactions: 25, MinRating: 4.2, MinActivity: 25},
		},
		{
			Level:        "gold",
			Benefits:     TierBenefits{MaxAds: 50, ImageSlots: 12, VideoUpload: true, FeaturedAds: 5, AdDuration: 90, Analytics: true, CustomThemes: true, PrioritySupport: true},
			Requirements: TierRequirements{MinTransactions: 50, MinRating: 4.5, MinActivity: 50},
		},
		{
			Level:        "platinum",
			Benefits:     TierBenefits{MaxAds: 100, ImageSlots: 15, VideoUpload: true, FeaturedAds: 10, AdDuration: 120, Analytics: true, CustomThemes: true, PrioritySupport: true, RevenueShare: 2.5},
			Requirements: TierRequirements{MinTransactions: 100, MinRating: 4.7, MinActivity: 100},
		},
		{
			Level:        "diamond",
			Benefits:     TierBenefits{MaxAds: 200, ImageSlots: 20, VideoUpload: true, FeaturedAds: 20, AdDuration: 180, Analytics: true, CustomThemes: true, PrioritySupport: true, RevenueShare: 5},
			Requirements: TierRequirements{MinTransactions: 250, MinRating: 4.8, MinActivity: 250},
		},
		{
			Level:        "su_diamond",
			Benefits:     TierBenefits{MaxAds: 500, ImageSlots: 25, VideoUpload: true, FeaturedAds: 50, AdDuration: 365, Analytics: true, CustomThemes: true, PrioritySupport: true, RevenueShare: 10},
			Requirements: TierRequirements{MinTransactions: 500, MinRating: 4.9, MinActivity: 500},
		},
		{
			Level:        "MAZ",
			Benefits:     TierBenefits{MaxAds: 9999, ImageSlots: 50, VideoUpload: true, FeaturedAds: 100, AdDuration: 9999, Analytics: true, CustomThemes: true, PrioritySupport: true, RevenueShare: 20},
			Requirements: TierRequirements{MinTransactions: 1000, MinRating: 4.95, MinActivity: 1000},
		},
	}
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "electronics", Name: "Electronics"},
		{ID: "fashion", Name: "Fashion"},
		{ID: "home-garden", Name: "Home & Garden"},
		{ID: "vehicles", Name: "Vehicles"},
		{ID: "real-estate", Name: "Real Estate"},
		{ID: "services", Name: "Services"},
	}
}

func DefaultAdminConfig() AdminConfig {
	return AdminConfig{
		SiteMaintenance:  false,
		RegistrationOpen: true,
		CommissionRates: map[string]float64{
			"normal": 10, "bronze": 9, "silver": 8, "gold": 7,
			"platinum": 6, "diamond": 5, "su_diamond": 3, "MAZ": 0,
		},
		ContentModeration: "hybrid",
		PaymentMethods:    []string{"credit_card", "paypal"},
	}
}
