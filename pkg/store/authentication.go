package store

import (
	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

// AuthState owns the session: tokens, the loaded profile, and the per-form
// loading/error state of the auth flows. Tokens and the authenticated flag
// are mirrored into the local session repository on every transition.
type AuthState struct {
	session *data.Repository

	Access          string
	Refresh         string
	User            *data.User
	IsAuthenticated bool

	IsRegistered       bool
	IsAccountActivated bool

	LoginLoading         bool
	RegisterLoading      bool
	PasswordResetLoading bool

	LoginErrors         []string
	RegisterErrors      []string
	PasswordResetErrors []string
}

func NewAuthState(session *data.Repository) AuthState {
	state := AuthState{session: session}
	if session != nil {
		state.Access = session.Get(data.KeyAccess)
		state.Refresh = session.Get(data.KeyRefresh)
	}
	return state
}

func (s *AuthState) StartLogin() {
	s.LoginLoading = true
	s.LoginErrors = nil
}

// FinishLogin flips the session to authenticated and persists both tokens.
func (s *AuthState) FinishLogin(pair *api.TokenPair) {
	s.Access = pair.Access
	s.Refresh = pair.Refresh
	s.IsAuthenticated = true
	s.LoginErrors = []string{}
	s.LoginLoading = false

	if s.session != nil {
		s.session.Set(data.KeyAccess, pair.Access)
		s.session.Set(data.KeyRefresh, pair.Refresh)
		s.session.Set(data.KeyIsAuthenticated, "true")
	}
}

func (s *AuthState) FailLogin(err error) {
	s.LoginLoading = false
	s.LoginErrors = api.ErrorMessages(err)
}

// ValidateRegistration runs the pre-submission checks; a non-empty result
// means no network call is made.
func ValidateRegistration(reg api.Registration) []string {
	var errs []string
	if reg.Username == "" {
		errs = append(errs, "Username is required")
	}
	if reg.Email == "" {
		errs = append(errs, "Email is required")
	}
	if reg.Password != reg.RePassword {
		errs = append(errs, "Passwords do not match")
	}
	return errs
}

func (s *AuthState) StartRegister() {
	s.RegisterLoading = true
	s.RegisterErrors = nil
}

// FinishRegister records the registration without authenticating; the
// account needs activation before login works.
func (s *AuthState) FinishRegister() {
	s.IsRegistered = true
	s.RegisterErrors = nil
	s.RegisterLoading = false
}

func (s *AuthState) FailRegister(err error) {
	s.RegisterLoading = false
	s.RegisterErrors = api.ErrorMessages(err)
}

func (s *AuthState) RejectRegistration(errs []string) {
	s.RegisterLoading = false
	s.RegisterErrors = errs
}

func (s *AuthState) ResetIsRegistered() {
	s.IsRegistered = false
}

// SetAuthenticated records a verification result. Failure demotes the
// session silently; it is not surfaced as an error.
func (s *AuthState) SetAuthenticated(ok bool) {
	s.IsAuthenticated = ok
	s.IsAccountActivated = ok
	if s.session != nil {
		value := "false"
		if ok {
			value = "true"
		}
		s.session.Set(data.KeyIsAuthenticated, value)
	}
}

func (s *AuthState) SetUser(user *data.User) {
	s.User = user
}

func (s *AuthState) FinishActivation() {
	s.IsAccountActivated = true
}

func (s *AuthState) StartPasswordReset() {
	s.PasswordResetLoading = true
	s.PasswordResetErrors = nil
}

func (s *AuthState) FinishPasswordReset() {
	s.PasswordResetLoading = false
}

func (s *AuthState) FailPasswordReset(err error) {
	s.PasswordResetLoading = false
	s.PasswordResetErrors = api.ErrorMessages(err)
}

// Logout clears every session field from both the store and persistence.
func (s *AuthState) Logout() {
	s.Access = ""
	s.Refresh = ""
	s.User = nil
	s.IsAuthenticated = false
	s.IsAccountActivated = false
	s.IsRegistered = false
	s.LoginErrors = nil
	s.RegisterErrors = nil
	s.PasswordResetErrors = nil
	s.LoginLoading = false
	s.RegisterLoading = false

	if s.session != nil {
		s.session.ClearSession()
	}
}
