package mockidp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jobnest "github.com/jobnest/go-jobnest"
)

func newTestService(opts ...Option) *Service {
	base := []Option{WithBcryptCost(bcrypt.MinCost)}
	return New(append(base, opts...)...)
}

func TestCreateAccountSignsIn(t *testing.T) {
	s := newTestService()

	acct, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.UserID)
	assert.Equal(t, "alex@example.com", acct.Email)

	current, ok := s.CurrentSession()
	require.True(t, ok)
	assert.Equal(t, acct.UserID, current.UserID)
}

func TestCreateAccountNormalizesEmail(t *testing.T) {
	s := newTestService()

	acct, err := s.CreateAccount(context.Background(), "  Alex@Example.COM ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", acct.Email)

	// The normalized address now exists; the raw variant collides with it.
	_, err = s.CreateAccount(context.Background(), "ALEX@example.com", "password123")
	require.Error(t, err)
	assert.True(t, jobnest.IsCredentialError(err))
}

func TestCreateAccountRejections(t *testing.T) {
	s := newTestService()

	t.Run("invalid email", func(t *testing.T) {
		_, err := s.CreateAccount(context.Background(), "not-an-email", "password123")
		require.Error(t, err)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := s.CreateAccount(context.Background(), "weak@example.com", "12345")
		require.Error(t, err)
		assert.True(t, jobnest.IsCredentialError(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.CreateAccount(context.Background(), "dup@example.com", "password123")
		require.NoError(t, err)
		_, err = s.CreateAccount(context.Background(), "dup@example.com", "password456")
		require.Error(t, err)
		assert.True(t, jobnest.IsCredentialError(err))
	})
}

func TestVerifyCredentials(t *testing.T) {
	s := newTestService()
	seeded, err := s.Seed("alex@example.com", "password123")
	require.NoError(t, err)

	// Seed registers without signing in.
	_, ok := s.CurrentSession()
	assert.False(t, ok)

	t.Run("correct password signs in", func(t *testing.T) {
		acct, err := s.VerifyCredentials(context.Background(), "alex@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, seeded.UserID, acct.UserID)

		current, ok := s.CurrentSession()
		require.True(t, ok)
		assert.Equal(t, seeded.UserID, current.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.VerifyCredentials(context.Background(), "alex@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, jobnest.IsCredentialError(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.VerifyCredentials(context.Background(), "ghost@example.com", "password123")
		require.Error(t, err)
		assert.True(t, jobnest.IsCredentialError(err))
	})
}

func TestEndSession(t *testing.T) {
	s := newTestService()
	_, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, s.EndSession(context.Background()))
	_, ok := s.CurrentSession()
	assert.False(t, ok)

	// Ending an already-ended session succeeds.
	require.NoError(t, s.EndSession(context.Background()))
}

func TestOnSessionChangeDeliversInitialState(t *testing.T) {
	s := newTestService()

	t.Run("no session", func(t *testing.T) {
		var got []*jobnest.Account
		unsubscribe := s.OnSessionChange(func(active *jobnest.Account) {
			got = append(got, active)
		})
		defer unsubscribe()

		require.Len(t, got, 1)
		assert.Nil(t, got[0])
	})

	t.Run("active session", func(t *testing.T) {
		acct, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
		require.NoError(t, err)

		var got []*jobnest.Account
		unsubscribe := s.OnSessionChange(func(active *jobnest.Account) {
			got = append(got, active)
		})
		defer unsubscribe()

		require.Len(t, got, 1)
		require.NotNil(t, got[0])
		assert.Equal(t, acct.UserID, got[0].UserID)
	})
}

func TestOnSessionChangeEventFlow(t *testing.T) {
	s := newTestService()

	var got []*jobnest.Account
	unsubscribe := s.OnSessionChange(func(active *jobnest.Account) {
		got = append(got, active)
	})

	acct, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, s.EndSession(context.Background()))

	require.Len(t, got, 3) // initial nil, sign-in, sign-out
	assert.Nil(t, got[0])
	require.NotNil(t, got[1])
	assert.Equal(t, acct.UserID, got[1].UserID)
	assert.Nil(t, got[2])

	unsubscribe()
	_, err = s.VerifyCredentials(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)
	assert.Len(t, got, 3, "unsubscribed listener must not fire")
}

func TestSessionTokenExpires(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	s := newTestService(
		WithClock(func() time.Time { return clock() }),
		WithTokenTTL(time.Minute),
	)

	_, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)

	_, ok := s.CurrentSession()
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = s.CurrentSession()
	assert.False(t, ok, "expired token counts as no session")
}

func TestSessionTokenCarriesIdentity(t *testing.T) {
	s := newTestService(WithSigningKey([]byte("test-signing-key")))

	acct, err := s.CreateAccount(context.Background(), "alex@example.com", "password123")
	require.NoError(t, err)

	token, ok := s.SessionToken()
	require.True(t, ok)
	assert.NotEmpty(t, token)

	current, ok := s.CurrentSession()
	require.True(t, ok)
	assert.Equal(t, acct.UserID, current.UserID)
	assert.Equal(t, "alex@example.com", current.Email)
}
