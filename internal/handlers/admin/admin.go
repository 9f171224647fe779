package admin

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mazdady-market/internal/marketplace"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

// AdminHandler serves the moderation and configuration surface. Routes
// are expected to sit behind the Auth and AdminOnly middleware.
type AdminHandler struct {
	Logger     *zap.SugaredLogger
	MarketRepo marketplace.MarketRepo
}

func NewAdminHandler(l *zap.SugaredLogger, mr marketplace.MarketRepo) *AdminHandler {
	return &AdminHandler{
		Logger:     l,
		MarketRepo: mr,
	}
}

// ModerationQueue handles GET /admin/moderation
func (h *AdminHandler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	queue := h.MarketRepo.ModerationQueue()
	if queue == nil {
		queue = []types.ModerationItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(queue); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

type removeForm struct {
	Reason string `json:"reason"`
}

// RemoveListing handles POST /admin/listing/{id}/remove
func (h *AdminHandler) RemoveListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var form removeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	h.MarketRepo.RemoveListing(id, form.Reason)
	w.WriteHeader(http.StatusNoContent)

	h.Logger.Infof("listing %s removed: %s", id, form.Reason)
}

// ApproveListing handles POST /admin/listing/{id}/approve
func (h *AdminHandler) ApproveListing(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.MarketRepo.ApproveListing(id)
	w.WriteHeader(http.StatusNoContent)

	h.Logger.Infof("listing %s approved", id)
}

type banForm struct {
	Reason string `json:"reason"`
}

// BanUser handles POST /admin/user/{id}/ban
func (h *AdminHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var form banForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	h.MarketRepo.BanUser(id, form.Reason)
	w.WriteHeader(http.StatusNoContent)

	h.Logger.Infof("user %s banned: %s", id, form.Reason)
}

// UnbanUser handles POST /admin/user/{id}/unban
func (h *AdminHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.MarketRepo.UnbanUser(id)
	w.WriteHeader(http.StatusNoContent)
}

// Categories handles GET /categories (public, mounted without middleware).
func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.MarketRepo.Categories()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// AddCategory handles POST /admin/category
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var c types.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if err := h.MarketRepo.AddCategory(c); err != nil {
		myErr.SendErrorTo(w, err, http.StatusUnprocessableEntity, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.Logger.Infof("category added: %s", c.ID)
}

// RemoveCategory handles DELETE /admin/category/{id}
func (h *AdminHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.MarketRepo.RemoveCategory(id)
	w.WriteHeader(http.StatusNoContent)
}

// Tiers handles GET /tiers (public).
func (h *AdminHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.MarketRepo.Tiers()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// UpdateTiers handles PUT /admin/tiers
func (h *AdminHandler) UpdateTiers(w http.ResponseWriter, r *http.Request) {
	var table []types.UserTier
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	h.MarketRepo.UpdateTiers(table)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.MarketRepo.Tiers()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// Config handles GET /admin/config
func (h *AdminHandler) Config(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.MarketRepo.AdminConfig()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// UpdateConfig handles PUT /admin/config
func (h *AdminHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var form types.UpdateAdminConfig
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	cfg := h.MarketRepo.UpdateAdminConfig(form)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}
