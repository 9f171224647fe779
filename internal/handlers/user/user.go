package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mazdady-market/internal/marketplace"
	"mazdady-market/internal/middleware"
	"mazdady-market/internal/session"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

type UserHandler struct {
	Logger         *zap.SugaredLogger
	MarketRepo     marketplace.MarketRepo
	SessionManager session.SessionRepo
}

func NewUserHandler(l *zap.SugaredLogger, mr marketplace.MarketRepo, sr session.SessionRepo) *UserHandler {
	return &UserHandler{
		Logger:         l,
		MarketRepo:     mr,
		SessionManager: sr,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if _, err := mail.ParseAddress(form.Email); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.MarketRepo.RegisterUser(form)
	if err != nil {
		if errors.Is(err, myErr.ErrAlreadyExists) {
			myErr.SendErrorTo(w, err, http.StatusUnprocessableEntity, h.Logger)
			return
		}
		if errors.Is(err, myErr.ErrRegistrationClosed) {
			myErr.SendErrorTo(w, err, http.StatusForbidden, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	sess, err := h.SessionManager.CreateSession(context.Background(), w, u.ID, u.IsAdmin)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.Logger.Infof("created session for %v", sess.ID)
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.MarketRepo.CheckUser(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrNotFound, http.StatusNotFound, h.Logger)
			return
		}
		if errors.Is(err, myErr.ErrBadPassword) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	sess, err := h.SessionManager.CreateSession(context.Background(), w, u.ID, u.IsAdmin)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("created session for %v", sess.ID)
}

// Info handles GET /user/{id}
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	u, err := h.MarketRepo.UserByID(id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(u.Public()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

// ChangeProfile handles PUT /user/profile for the session owner.
func (h *UserHandler) ChangeProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var form types.ChangeUser
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.MarketRepo.ChangeProfile(sess.UserID, form)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(u.Public()); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}
