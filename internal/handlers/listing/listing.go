package listing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mazdady-market/internal/browsing"
	"mazdady-market/internal/contextutil"
	"mazdady-market/internal/kafka"
	"mazdady-market/internal/marketplace"
	"mazdady-market/internal/middleware"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

type ListingHandler struct {
	Logger     *zap.SugaredLogger
	MarketRepo marketplace.MarketRepo
	Producer   kafka.EventProducer
}

func NewListingHandler(l *zap.SugaredLogger, mr marketplace.MarketRepo, p kafka.EventProducer) *ListingHandler {
	return &ListingHandler{
		Logger:     l,
		MarketRepo: mr,
		Producer:   p,
	}
}

// sendEvent emits a behaviour event when the request carries a session.
// Delivery failures are logged and never surface to the client.
func (h *ListingHandler) sendEvent(r *http.Request, evtType kafka.EventType, listingID string, categories []string, query string) {
	if h.Producer == nil {
		return
	}
	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}

	evt := kafka.Event{
		UserID:     userID,
		Type:       evtType,
		ListingID:  listingID,
		Categories: categories,
		Query:      query,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.Producer.SendEvent(r.Context(), evt); err != nil {
		h.Logger.Errorf("failed to send %s event: %v", evtType, err)
	}
}

// Create handles POST /listing
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var form types.CreateListing
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	l, err := h.MarketRepo.CreateListing(sess.UserID, form)
	if err != nil {
		if errors.Is(err, myErr.ErrNoAuth) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(l); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
		return
	}

	h.Logger.Infof("listing created: %s", l.ID)
}

// GetByID handles GET /listing/{id}
func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l, err := h.MarketRepo.ListingByID(id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.MarketRepo.RecordView(id)
	h.sendEvent(r, kafka.View, id, []string{l.Category}, "")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(l); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// Update handles PUT /listing/{id}
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var form types.UpdateListing
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	h.MarketRepo.UpdateListing(id, form)

	l, err := h.MarketRepo.ListingByID(id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(l); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// Browse handles GET /listings with filter and sort query parameters.
func (h *ListingHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := browsing.Filters{
		Query:     q.Get("q"),
		Condition: q.Get("condition"),
	}
	if cat := q.Get("category"); cat != "" {
		filters.Categories = []string{cat}
	}
	if v := q.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.PriceMin = f
		}
	}
	if v := q.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.PriceMax = f
		}
	}
	if tier := q.Get("seller_tier"); tier != "" {
		filters.SellerTiers = []string{tier}
	}

	var loc *types.Coordinates
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat == nil && errLon == nil {
			loc = &types.Coordinates{Lat: lat, Lng: lon}
		}
	}

	sortBy := browsing.SortOption(q.Get("sort"))
	if sortBy == "" {
		sortBy = browsing.SortDateNewOld
	}
	if !browsing.Available(sortBy, loc) {
		myErr.SendErrorTo(w, errors.New("sort option requires a location"), http.StatusBadRequest, h.Logger)
		return
	}

	users := h.MarketRepo.Users()
	result := filters.Apply(h.MarketRepo.Listings(), users)
	result = browsing.Sort(result, users, sortBy, loc)

	if filters.Query != "" {
		h.sendEvent(r, kafka.Search, "", categoriesOf(result), filters.Query)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// BySeller handles GET /seller/{id}/listings
func (h *ListingHandler) BySeller(w http.ResponseWriter, r *http.Request) {
	sellerID := mux.Vars(r)["id"]

	listings := h.MarketRepo.ListingsBySeller(sellerID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listings); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

type toggleResponse struct {
	ListingID string `json:"listingId"`
	Active    bool   `json:"active"`
}

// ToggleLike handles POST /listing/{id}/like
func (h *ListingHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l, err := h.MarketRepo.ListingByID(id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		return
	}

	liked := h.MarketRepo.ToggleLike(id)
	if liked {
		h.sendEvent(r, kafka.Like, id, []string{l.Category}, "")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toggleResponse{ListingID: id, Active: liked}); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// ToggleFavorite handles POST /listing/{id}/favorite
func (h *ListingHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l, err := h.MarketRepo.ListingByID(id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		return
	}

	favorited := h.MarketRepo.ToggleFavorite(id)
	if favorited {
		h.sendEvent(r, kafka.Favorite, id, []string{l.Category}, "")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toggleResponse{ListingID: id, Active: favorited}); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// Share handles POST /listing/{id}/share
func (h *ListingHandler) Share(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l, err := h.MarketRepo.ListingByID(id)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
		return
	}

	h.MarketRepo.RecordShare(id)
	h.sendEvent(r, kafka.Share, id, []string{l.Category}, "")

	w.WriteHeader(http.StatusNoContent)
}

type reviewForm struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// AddReview handles POST /listing/{id}/review
func (h *ListingHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	id := mux.Vars(r)["id"]

	var form reviewForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MarketRepo.AddReview(sess.UserID, id, form.Rating, form.Text); err != nil {
		if errors.Is(err, myErr.ErrInvalidRating) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		if errors.Is(err, myErr.ErrNoAuth) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.Logger.Infof("review added to listing %s by %s", id, sess.UserID)
}

type commentForm struct {
	Text string `json:"text"`
}

// AddComment handles POST /listing/{id}/comment
func (h *ListingHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	id := mux.Vars(r)["id"]

	var form commentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MarketRepo.AddComment(sess.UserID, id, form.Text); err != nil {
		if errors.Is(err, myErr.ErrCommentIsTooLong) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// AddReply handles POST /listing/{id}/comment/{comment_id}/reply
func (h *ListingHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	vars := mux.Vars(r)

	var form commentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MarketRepo.AddReply(sess.UserID, vars["id"], vars["comment_id"], form.Text); err != nil {
		if errors.Is(err, myErr.ErrCommentIsTooLong) {
			myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteComment handles DELETE /listing/{id}/comment/{comment_id}
func (h *ListingHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.MarketRepo.DeleteComment(vars["id"], vars["comment_id"])
	w.WriteHeader(http.StatusNoContent)
}

type reportForm struct {
	Reason string `json:"reason"`
}

// Report handles POST /listing/{id}/report
func (h *ListingHandler) Report(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}
	id := mux.Vars(r)["id"]

	var form reportForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MarketRepo.ReportListing(sess.UserID, id, form.Reason); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.Logger.Infof("listing %s reported by %s", id, sess.UserID)
}

func categoriesOf(listings []types.Listing) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, l := range listings {
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		cats = append(cats, l.Category)
	}
	return cats
}
