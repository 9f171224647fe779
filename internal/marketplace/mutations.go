package marketplace

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"mazdady-market/internal/tiers"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

const maxCommentLength = 1000

// CreateListing publishes a new listing for the authenticated actor. The
// listing is prepended so the sequence stays newest-first.
func (m *Marketplace) CreateListing(actorID string, form types.CreateListing) (*types.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if actorID == "" || m.findUser(actorID) == nil {
		return nil, myErr.ErrNoAuth
	}

	now := time.Now().UTC()
	listing := types.Listing{
		ID:             "ad-" + uuid.New().String(),
		SellerID:       actorID,
		Title:          form.Title,
		Description:    form.Description,
		Price:          form.Price,
		Currency:       form.Currency,
		Images:         form.Images,
		Category:       form.Category,
		Condition:      form.Condition,
		Location:       form.Location,
		Specifications: form.Specifications,
		Delivery:       form.Delivery,
		Availability:   form.Availability,
		Status:         types.StatusActive,
		Rating:         0,
		Reviews:        []types.Comment{},
		Comments:       []types.Comment{},
		Reports:        []types.Report{},
		Stats:          types.Stats{CreatedAt: now, UpdatedAt: now},
	}
	if listing.Availability.Quantity == 0 {
		listing.Availability = types.Availability{Quantity: 1, InStock: true}
	}

	m.state.Listings = append([]types.Listing{listing}, m.state.Listings...)
	m.persistState()

	created := cloneListing(listing)
	return &created, nil
}

// UpdateListing shallow-merges the partial form into an existing listing
// and refreshes the updated timestamp. An unknown id is a silent no-op.
func (m *Marketplace) UpdateListing(id string, form types.UpdateListing) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.findListing(id)
	if l == nil {
		return
	}

	if form.Title != "" {
		l.Title = form.Title
	}
	if form.Description != "" {
		l.Description = form.Description
	}
	if form.Price != nil {
		l.Price = *form.Price
	}
	if form.Category != "" {
		l.Category = form.Category
	}
	if form.Condition != "" {
		l.Condition = form.Condition
	}
	if form.Images != nil {
		l.Images = form.Images
	}
	if form.InStock != nil {
		l.Availability.InStock = *form.InStock
	}
	if form.Quantity != nil {
		l.Availability.Quantity = *form.Quantity
	}
	l.Stats.UpdatedAt = time.Now().UTC()

	m.persistState()
}

// AddReview prepends a review, rederives the listing rating and then the
// owning seller's aggregate over all their active listings. The seller's
// tier is re-evaluated against the current tier table.
func (m *Marketplace) AddReview(actorID, listingID string, rating float64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor := m.findUser(actorID)
	if actorID == "" || actor == nil {
		return myErr.ErrNoAuth
	}
	if rating < 0 || rating > 5 {
		return myErr.ErrInvalidRating
	}

	l := m.findListing(listingID)
	if l == nil {
		// forgiving policy: an unknown listing is a no-op, not a failure
		return nil
	}

	review := types.Comment{
		ID:         "review-" + uuid.New().String(),
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       text,
		Rating:     rating,
		Replies:    []types.Comment{},
		CreatedAt:  time.Now().UTC(),
	}
	l.Reviews = append([]types.Comment{review}, l.Reviews...)
	l.Rating = meanRating(l.Reviews)

	m.recalcSeller(l.SellerID)
	m.persistState()

	return nil
}

// AddComment prepends a plain comment to the listing's comment tree.
func (m *Marketplace) AddComment(actorID, listingID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor := m.findUser(actorID)
	if actorID == "" || actor == nil {
		return myErr.ErrNoAuth
	}
	if len(text) > maxCommentLength {
		return myErr.ErrCommentIsTooLong
	}

	l := m.findListing(listingID)
	if l == nil {
		return nil
	}

	comment := types.Comment{
		ID:         "comment-" + uuid.New().String(),
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       text,
		Replies:    []types.Comment{},
		CreatedAt:  time.Now().UTC(),
	}
	l.Comments = append([]types.Comment{comment}, l.Comments...)
	m.persistState()

	return nil
}

// AddReply locates the parent anywhere in the comment tree, depth first,
// and prepends the reply to its reply list. A missing parent drops the
// reply silently.
func (m *Marketplace) AddReply(actorID, listingID, parentCommentID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	actor := m.findUser(actorID)
	if actorID == "" || actor == nil {
		return myErr.ErrNoAuth
	}
	if len(text) > maxCommentLength {
		return myErr.ErrCommentIsTooLong
	}

	l := m.findListing(listingID)
	if l == nil {
		return nil
	}

	reply := types.Comment{
		ID:         "reply-" + uuid.New().String(),
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       text,
		Replies:    []types.Comment{},
		CreatedAt:  time.Now().UTC(),
	}

	if insertReply(l.Comments, parentCommentID, reply) {
		m.persistState()
	}

	return nil
}

func insertReply(comments []types.Comment, parentID string, reply types.Comment) bool {
	for i := range comments {
		if comments[i].ID == parentID {
			comments[i].Replies = append([]types.Comment{reply}, comments[i].Replies...)
			return true
		}
		if insertReply(comments[i].Replies, parentID, reply) {
			return true
		}
	}
	return false
}

// DeleteComment filters the id out at any depth. Siblings and descendants
// of non-matching nodes survive untouched.
func (m *Marketplace) DeleteComment(listingID, commentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.findListing(listingID)
	if l == nil {
		return
	}

	l.Comments = removeComment(l.Comments, commentID)
	m.persistState()
}

func removeComment(comments []types.Comment, id string) []types.Comment {
	out := comments[:0]
	for _, c := range comments {
		if c.ID == id {
			continue
		}
		c.Replies = removeComment(c.Replies, id)
		out = append(out, c)
	}
	return out
}

// ToggleLike flips membership in the liked set and moves the listing's like
// counter by exactly one in the same direction, so set and counter can
// never drift apart. Returns the membership state after the call.
func (m *Marketplace) ToggleLike(listingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	liked := m.Social.ToggleLike(listingID)

	if l := m.findListing(listingID); l != nil {
		if liked {
			l.Stats.Likes++
		} else {
			l.Stats.Likes--
		}
		m.persistState()
	}

	return liked
}

// ToggleFavorite flips the favorited set only; no counter is touched.
func (m *Marketplace) ToggleFavorite(listingID string) bool {
	return m.Social.ToggleFavorite(listingID)
}

func (m *Marketplace) IsLiked(listingID string) bool     { return m.Social.IsLiked(listingID) }
func (m *Marketplace) IsFavorited(listingID string) bool { return m.Social.IsFavorited(listingID) }

// RecordView bumps the view counter. Unknown ids are ignored.
func (m *Marketplace) RecordView(listingID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l := m.findListing(listingID); l != nil {
		l.Stats.Views++
		m.persistState()
	}
}

// RecordShare bumps the share counter. Unknown ids are ignored.
func (m *Marketplace) RecordShare(listingID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l := m.findListing(listingID); l != nil {
		l.Stats.Shares++
		m.persistState()
	}
}

// ReportListing attaches a report to the listing. Reports never target a
// user directly.
func (m *Marketplace) ReportListing(actorID, listingID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if actorID == "" || m.findUser(actorID) == nil {
		return myErr.ErrNoAuth
	}

	l := m.findListing(listingID)
	if l == nil {
		return nil
	}

	l.Reports = append(l.Reports, types.Report{
		ID:         "report-" + uuid.New().String(),
		ReporterID: actorID,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	})
	m.persistState()

	return nil
}

// RemoveListing is a status transition, not a deletion: reviews, comments
// and reports stay with the banned listing.
func (m *Marketplace) RemoveListing(id, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.findListing(id)
	if l == nil {
		return
	}

	l.Status = types.StatusBanned
	l.BannedReason = reason
	m.persistState()
}

// ApproveListing clears the report collection and leaves status alone.
func (m *Marketplace) ApproveListing(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.findListing(id)
	if l == nil {
		return
	}

	l.Reports = []types.Report{}
	m.persistState()
}

// AddCategory rejects a duplicate id or case-insensitive duplicate name.
func (m *Marketplace) AddCategory(c types.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.state.Categories {
		if existing.ID == c.ID || strings.EqualFold(existing.Name, c.Name) {
			return myErr.ErrDuplicateCategory
		}
	}

	m.state.Categories = append(m.state.Categories, c)
	m.persistState()

	return nil
}

// RemoveCategory removes the category. Listings already tagged with it are
// left alone; a dangling category reference is tolerated.
func (m *Marketplace) RemoveCategory(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.state.Categories[:0]
	for _, c := range m.state.Categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	m.state.Categories = out
	m.persistState()
}

// UpdateTiers replaces the tier table. Seller tiers are not re-evaluated
// here; the next rating change picks up the new thresholds.
func (m *Marketplace) UpdateTiers(table []types.UserTier) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Tiers = table
	m.persistState()
}

// recalcSeller rederives the seller aggregate from scratch: the mean over
// every review on every active listing the seller owns. Deliberately not
// incremental, this is the correctness oracle. Write lock held by caller.
func (m *Marketplace) recalcSeller(sellerID string) {
	u := m.findUser(sellerID)
	if u == nil {
		return
	}

	var sum float64
	var count int
	for i := range m.state.Listings {
		l := &m.state.Listings[i]
		if l.SellerID != sellerID || l.Status != types.StatusActive {
			continue
		}
		for _, r := range l.Reviews {
			sum += r.Rating
			count++
		}
	}

	if count == 0 {
		u.Rating = 0
	} else {
		u.Rating = sum / float64(count)
	}
	u.ReviewCount = count
	u.Tier = tiers.Evaluate(u.Tier, u.Rating, m.state.Tiers)
}

func meanRating(reviews []types.Comment) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}
