package marketplace

import (
	types "mazdady-market/internal/types/market"
)

// MarketRepo is the surface the HTTP handlers talk to.
type MarketRepo interface {
	// listings
	CreateListing(actorID string, form types.CreateListing) (*types.Listing, error)
	UpdateListing(id string, form types.UpdateListing)
	ListingByID(id string) (*types.Listing, error)
	Listings() []types.Listing
	ListingsBySeller(sellerID string) []types.Listing
	RecordView(listingID string)
	RecordShare(listingID string)

	// reviews and comments
	AddReview(actorID, listingID string, rating float64, text string) error
	AddComment(actorID, listingID, text string) error
	AddReply(actorID, listingID, parentCommentID, text string) error
	DeleteComment(listingID, commentID string)

	// social sets
	ToggleLike(listingID string) bool
	ToggleFavorite(listingID string) bool
	IsLiked(listingID string) bool
	IsFavorited(listingID string) bool

	// moderation
	ReportListing(actorID, listingID, reason string) error
	RemoveListing(id, reason string)
	ApproveListing(id string)
	ModerationQueue() []types.ModerationItem
	BanUser(userID, reason string)
	UnbanUser(userID string)

	// catalog configuration
	AddCategory(c types.Category) error
	RemoveCategory(id string)
	Categories() []types.Category
	Tiers() []types.UserTier
	UpdateTiers(table []types.UserTier)
	AdminConfig() types.AdminConfig
	UpdateAdminConfig(form types.UpdateAdminConfig) types.AdminConfig

	// users
	RegisterUser(form types.CreateUser) (*types.User, error)
	CheckUser(email, password string) (*types.User, error)
	ChangeProfile(userID string, form types.ChangeUser) (*types.User, error)
	UserByID(id string) (*types.User, error)
	Users() []types.User
}
