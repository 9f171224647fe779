package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazdady-market/internal/storage"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

func TestRegisterUser(t *testing.T) {
	m, _ := newTestMarketplace(t)

	u, err := m.RegisterUser(types.CreateUser{
		Name:     "SellerSue",
		Email:    "Sue@Example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "normal", u.Tier)
	assert.Equal(t, types.StatusActive, u.Status)
	assert.Equal(t, "sue@example.com", u.Email)
	// credentials never leave the container
	assert.Empty(t, u.PasswordHash)

	// same email, different case
	_, err = m.RegisterUser(types.CreateUser{
		Name: "Impostor", Email: "SUE@example.com", Password: "whatever123",
	})
	assert.ErrorIs(t, err, myErr.ErrAlreadyExists)
}

func TestRegisterUser_RegistrationClosed(t *testing.T) {
	m, _ := newTestMarketplace(t)

	closed := false
	m.UpdateAdminConfig(types.UpdateAdminConfig{RegistrationOpen: &closed})

	_, err := m.RegisterUser(types.CreateUser{
		Name: "TooLate", Email: "late@example.com", Password: "whatever123",
	})
	assert.ErrorIs(t, err, myErr.ErrRegistrationClosed)
}

func TestCheckUser(t *testing.T) {
	m, _ := newTestMarketplace(t)

	_, err := m.RegisterUser(types.CreateUser{
		Name: "SellerSue", Email: "sue@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	u, err := m.CheckUser("sue@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "SellerSue", u.Name)

	_, err = m.CheckUser("sue@example.com", "wrong")
	assert.ErrorIs(t, err, myErr.ErrBadPassword)

	_, err = m.CheckUser("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, myErr.ErrNotFound)
}

func TestChangeProfile(t *testing.T) {
	m, _ := newTestMarketplace(t)

	u, err := m.ChangeProfile("seller-1", types.ChangeUser{Bio: "New bio."})
	require.NoError(t, err)
	assert.Equal(t, "New bio.", u.Bio)
	assert.Equal(t, "TechieTom", u.Name)

	_, err = m.ChangeProfile("ghost", types.ChangeUser{Bio: "x"})
	assert.ErrorIs(t, err, myErr.ErrNotFound)
}

func TestBanUnbanUser(t *testing.T) {
	m, _ := newTestMarketplace(t)

	m.BanUser("seller-3", "scamming buyers")

	u, err := m.UserByID("seller-3")
	require.NoError(t, err)
	assert.Equal(t, types.StatusBanned, u.Status)
	assert.Equal(t, "scamming buyers", u.BanReason)

	m.UnbanUser("seller-3")

	u, err = m.UserByID("seller-3")
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, u.Status)
	assert.Empty(t, u.BanReason)
}

func TestUpdateAdminConfig(t *testing.T) {
	m, st := newTestMarketplace(t)

	maintenance := true
	cfg := m.UpdateAdminConfig(types.UpdateAdminConfig{
		SiteMaintenance:   &maintenance,
		ContentModeration: "manual",
	})
	assert.True(t, cfg.SiteMaintenance)
	assert.Equal(t, "manual", cfg.ContentModeration)
	// untouched fields keep their defaults
	assert.True(t, cfg.RegistrationOpen)

	// the admin config lives under its own key
	assert.Eventually(t, func() bool {
		var stored types.AdminConfig
		if err := st.Get(context.Background(), storage.KeyAdminConfig, &stored); err != nil {
			return false
		}
		return stored.SiteMaintenance && stored.ContentModeration == "manual"
	}, time.Second, 5*time.Millisecond)
}
