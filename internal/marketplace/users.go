package marketplace

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

// RegisterUser creates a seller account. Registration can be switched off
// from the admin config; email must be unique.
func (m *Marketplace) RegisterUser(form types.CreateUser) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.admin.RegistrationOpen {
		return nil, myErr.ErrRegistrationClosed
	}

	email := strings.ToLower(form.Email)
	for i := range m.state.Users {
		if strings.ToLower(m.state.Users[i].Email) == email {
			return nil, myErr.ErrAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		m.Logger.Errorf("Failed to hash password: %v", err)
		return nil, err
	}

	u := types.User{
		ID:           "user-" + uuid.New().String(),
		Name:         form.Name,
		Email:        email,
		Avatar:       form.Avatar,
		Bio:          form.Bio,
		Tier:         "normal",
		CreatedAt:    time.Now().UTC(),
		Status:       types.StatusActive,
		PasswordHash: string(hash),
	}

	m.state.Users = append(m.state.Users, u)
	m.persistState()

	m.Logger.Infof("user registered: %s", u.ID)

	pub := u.Public()
	return &pub, nil
}

// CheckUser verifies credentials for login.
func (m *Marketplace) CheckUser(email, password string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(email)
	for i := range m.state.Users {
		if strings.ToLower(m.state.Users[i].Email) != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(
			[]byte(m.state.Users[i].PasswordHash), []byte(password),
		); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return nil, myErr.ErrBadPassword
			}
			return nil, err
		}
		u := m.state.Users[i]
		return &u, nil
	}

	return nil, myErr.ErrNotFound
}

// ChangeProfile updates the non-empty fields of a user profile.
func (m *Marketplace) ChangeProfile(userID string, form types.ChangeUser) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userID)
	if u == nil {
		return nil, myErr.ErrNotFound
	}

	if form.Name != "" {
		u.Name = form.Name
	}
	if form.Avatar != "" {
		u.Avatar = form.Avatar
	}
	if form.Bio != "" {
		u.Bio = form.Bio
	}
	m.persistState()

	pub := u.Public()
	return &pub, nil
}

// BanUser blocks a seller account. Their listings stay as they are; the
// ban is a user-level status only.
func (m *Marketplace) BanUser(userID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userID)
	if u == nil {
		return
	}

	u.Status = types.StatusBanned
	u.BanReason = reason
	m.persistState()
}

func (m *Marketplace) UnbanUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.findUser(userID)
	if u == nil {
		return
	}

	u.Status = types.StatusActive
	u.BanReason = ""
	m.persistState()
}

// UpdateAdminConfig merges the partial form into the admin config, which
// lives under its own storage key, apart from the marketplace snapshot.
func (m *Marketplace) UpdateAdminConfig(form types.UpdateAdminConfig) types.AdminConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	if form.SiteMaintenance != nil {
		m.admin.SiteMaintenance = *form.SiteMaintenance
	}
	if form.RegistrationOpen != nil {
		m.admin.RegistrationOpen = *form.RegistrationOpen
	}
	if form.CommissionRates != nil {
		m.admin.CommissionRates = form.CommissionRates
	}
	if form.ContentModeration != "" {
		m.admin.ContentModeration = form.ContentModeration
	}
	if form.PaymentMethods != nil {
		m.admin.PaymentMethods = form.PaymentMethods
	}
	m.persistAdminConfig()

	return m.admin
}
