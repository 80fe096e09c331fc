package store

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

func testSession(t *testing.T) *data.Repository {
	t.Helper()
	tmpDir := t.TempDir()
	repo, err := data.NewRepository(filepath.Join(tmpDir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoginSuccessStoresTokensAndAuthenticates(t *testing.T) {
	session := testSession(t)
	s := NewAuthState(session)

	s.StartLogin()
	assert.True(t, s.LoginLoading)

	s.FinishLogin(&api.TokenPair{Access: "acc-1", Refresh: "ref-1"})

	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "acc-1", s.Access)
	assert.Equal(t, "ref-1", s.Refresh)
	assert.Empty(t, s.LoginErrors)
	assert.False(t, s.LoginLoading)

	// Persisted like the web client's localStorage keys.
	assert.Equal(t, "acc-1", session.Get(data.KeyAccess))
	assert.Equal(t, "ref-1", session.Get(data.KeyRefresh))
	assert.Equal(t, "true", session.Get(data.KeyIsAuthenticated))
}

func TestLoginFailureLeavesUnauthenticated(t *testing.T) {
	s := NewAuthState(nil)

	s.StartLogin()
	s.FailLogin(&api.APIError{
		StatusCode: http.StatusUnauthorized,
		Detail:     "No active account found with the given credentials",
	})

	assert.False(t, s.IsAuthenticated)
	assert.NotEmpty(t, s.LoginErrors)
	assert.Equal(t, []string{"No active account found with the given credentials"}, s.LoginErrors)
}

func TestLogoutClearsStoreAndPersistence(t *testing.T) {
	session := testSession(t)
	s := NewAuthState(session)

	s.FinishLogin(&api.TokenPair{Access: "acc", Refresh: "ref"})
	s.SetUser(&data.User{ID: 1, Username: "alice"})

	s.Logout()

	assert.Empty(t, s.Access)
	assert.Empty(t, s.Refresh)
	assert.Nil(t, s.User)
	assert.False(t, s.IsAuthenticated)

	assert.Empty(t, session.Get(data.KeyAccess))
	assert.Empty(t, session.Get(data.KeyRefresh))
	assert.Empty(t, session.Get(data.KeyIsAuthenticated))
}

func TestNewAuthStateSeedsTokensFromSession(t *testing.T) {
	session := testSession(t)
	session.Set(data.KeyAccess, "stored-access")
	session.Set(data.KeyRefresh, "stored-refresh")

	s := NewAuthState(session)

	assert.Equal(t, "stored-access", s.Access)
	assert.Equal(t, "stored-refresh", s.Refresh)
	// Still unauthenticated until the token verifies.
	assert.False(t, s.IsAuthenticated)
}

func TestVerificationFailureDemotesSilently(t *testing.T) {
	session := testSession(t)
	s := NewAuthState(session)
	s.FinishLogin(&api.TokenPair{Access: "a", Refresh: "r"})

	s.SetAuthenticated(false)

	assert.False(t, s.IsAuthenticated)
	assert.Empty(t, s.LoginErrors, "verification failure is not an error banner")
	assert.Equal(t, "false", session.Get(data.KeyIsAuthenticated))
}

func TestValidateRegistrationPasswordMismatch(t *testing.T) {
	errs := ValidateRegistration(api.Registration{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "hunter22",
		RePassword: "hunter23",
	})

	assert.Contains(t, errs, "Passwords do not match")
}

func TestValidateRegistrationOK(t *testing.T) {
	errs := ValidateRegistration(api.Registration{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "hunter22",
		RePassword: "hunter22",
	})

	assert.Empty(t, errs)
}

func TestRegistrationDoesNotAuthenticate(t *testing.T) {
	s := NewAuthState(nil)

	s.StartRegister()
	s.FinishRegister()

	assert.True(t, s.IsRegistered)
	assert.False(t, s.IsAuthenticated, "registration requires activation before login")
}

func TestRegisterFieldErrorsFlattened(t *testing.T) {
	s := NewAuthState(nil)

	s.StartRegister()
	s.FailRegister(&api.APIError{
		StatusCode: http.StatusBadRequest,
		Fields: map[string][]string{
			"username": {"a user with that username already exists."},
			"email":    {"enter a valid email address."},
		},
	})

	assert.Len(t, s.RegisterErrors, 2)
	assert.Contains(t, s.RegisterErrors, "A user with that username already exists.")
	assert.Contains(t, s.RegisterErrors, "Enter a valid email address.")
}
