package jobnest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jobnest "github.com/jobnest/go-jobnest"
	"github.com/jobnest/go-jobnest/provider/mockidp"
	"github.com/jobnest/go-jobnest/store"
)

// These tests wire the manager to the real mock identity provider, which
// delivers session events synchronously during credential calls.

func newIntegrationStack(t *testing.T) (*mockidp.Service, *store.Memory, *jobnest.Manager) {
	t.Helper()

	idp := mockidp.New(mockidp.WithBcryptCost(bcrypt.MinCost))
	storage := store.NewMemory()
	m := jobnest.NewManager(idp, storage)
	t.Cleanup(m.Close)
	m.Start(context.Background())
	return idp, storage, m
}

func TestLoginThroughMockProvider(t *testing.T) {
	ctx := context.Background()
	idp, storage, m := newIntegrationStack(t)
	_, err := idp.Seed("alex@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, m.Login(ctx, "alex@example.com", "password123", jobnest.RoleSeeker))

	user := m.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Alex Johnson", user.Name)
	assert.Equal(t, jobnest.RoleSeeker, user.Role)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.False(t, m.Loading())

	_, ok, err := storage.Get(ctx, jobnest.DefaultStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupThroughMockProvider(t *testing.T) {
	ctx := context.Background()
	idp, _, m := newIntegrationStack(t)

	partial := &jobnest.Profile{
		Name:     "Sarah Miller",
		Email:    "sarah@example.com",
		Role:     jobnest.RoleProvider,
		Provider: &jobnest.ProviderFields{CompanyName: "TechCorp Solutions"},
	}
	require.NoError(t, m.Signup(ctx, partial, "password123"))

	user := m.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, jobnest.RoleProvider, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.False(t, m.Loading())

	current, ok := idp.CurrentSession()
	require.True(t, ok)
	assert.Equal(t, user.ID, current.UserID)
}

func TestLogoutThroughMockProvider(t *testing.T) {
	ctx := context.Background()
	idp, storage, m := newIntegrationStack(t)
	_, err := idp.Seed("alex@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, m.Login(ctx, "alex@example.com", "password123", jobnest.RoleSeeker))

	require.NoError(t, m.Logout(ctx))

	assert.Nil(t, m.CurrentUser())
	assert.False(t, m.Loading())
	_, ok := idp.CurrentSession()
	assert.False(t, ok)
	_, ok, err = storage.Get(ctx, jobnest.DefaultStorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestartRestoresSessionFromSlot(t *testing.T) {
	ctx := context.Background()
	idp, storage, m := newIntegrationStack(t)
	_, err := idp.Seed("alex@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, m.Login(ctx, "alex@example.com", "password123", jobnest.RoleSeeker))
	m.Close()

	// A fresh manager over the same provider and slot resolves the still
	// active session from the persisted blob.
	restarted := jobnest.NewManager(idp, storage)
	t.Cleanup(restarted.Close)
	restarted.Start(ctx)

	user := restarted.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Alex Johnson", user.Name)
	assert.False(t, restarted.Loading())
}
