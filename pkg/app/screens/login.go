package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type LoginScreen struct {
	deps *Deps

	inputs  []textinput.Model
	focused int

	// password-reset mode reuses the email input only
	resetMode bool
	resetSent bool

	width  int
	height int
}

func NewLoginScreen(deps *Deps) *LoginScreen {
	email := textinput.New()
	email.Placeholder = "Email"
	email.Focus()
	email.CharLimit = 100
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	return &LoginScreen{
		deps:   deps,
		inputs: []textinput.Model{email, password},
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.deps.Store.Auth.LoginLoading || s.deps.Store.Auth.PasswordResetLoading {
			return s, nil
		}

		switch msg.String() {
		case "tab", "down":
			s.focusNext(1)
			return s, textinput.Blink
		case "shift+tab", "up":
			s.focusNext(-1)
			return s, textinput.Blink
		case "enter":
			if s.resetMode {
				email := s.inputs[0].Value()
				if email == "" {
					return s, nil
				}
				s.deps.Store.Auth.StartPasswordReset()
				return s, s.requestReset(email)
			}
			creds := api.Credentials{
				Email:    s.inputs[0].Value(),
				Password: s.inputs[1].Value(),
			}
			if creds.Email == "" || creds.Password == "" {
				return s, nil
			}
			s.deps.Store.Auth.StartLogin()
			return s, s.login(creds)
		case "ctrl+r":
			return s, switchTo("register", nil)
		case "ctrl+p":
			s.resetMode = !s.resetMode
			s.resetSent = false
			s.focused = 0
			s.inputs[0].Focus()
			s.inputs[1].Blur()
			return s, textinput.Blink
		case "esc":
			return s, switchTo("home", nil)
		}

	case loginResultMsg:
		if msg.err != nil {
			s.deps.Store.Auth.FailLogin(msg.err)
			return s, nil
		}
		s.deps.Store.Auth.FinishLogin(msg.pair)
		s.deps.Store.Auth.SetUser(msg.user)
		return s, tea.Batch(
			func() tea.Msg { return SessionStartedMsg{} },
			switchTo("home", nil),
		)

	case resetRequestedMsg:
		if msg.err != nil {
			s.deps.Store.Auth.FailPasswordReset(msg.err)
			return s, nil
		}
		s.deps.Store.Auth.FinishPasswordReset()
		s.resetSent = true
		return s, nil
	}

	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *LoginScreen) focusNext(delta int) {
	limit := len(s.inputs)
	if s.resetMode {
		limit = 1
	}
	s.inputs[s.focused].Blur()
	s.focused = (s.focused + delta + limit) % limit
	s.inputs[s.focused].Focus()
}

func (s *LoginScreen) View() string {
	if s.resetMode {
		return s.viewReset()
	}

	header := styles.TitleStyle.Render("Sign in")

	var fields string
	for i, input := range s.inputs {
		inputStyle := styles.InputStyle
		if i == s.focused {
			inputStyle = styles.FocusedInputStyle
		}
		fields += inputStyle.Render(input.View()) + "\n"
	}

	errs := components.ErrorList(s.deps.Store.Auth.LoginErrors)

	status := ""
	if s.deps.Store.Auth.LoginLoading {
		status = styles.LoadingStyle.Render("Signing in...") + "\n"
	}

	help := styles.HelpStyle.Render(
		"enter: sign in • tab: next field • ctrl+r: register • ctrl+p: forgot password • esc: browse anonymously",
	)

	return fmt.Sprintf("%s\n\n%s\n%s%s\n%s", header, fields, errs, status, help)
}

func (s *LoginScreen) viewReset() string {
	header := styles.TitleStyle.Render("Reset password")

	field := styles.FocusedInputStyle.Render(s.inputs[0].View())

	var status string
	switch {
	case s.deps.Store.Auth.PasswordResetLoading:
		status = styles.LoadingStyle.Render("Sending reset email...")
	case s.resetSent:
		status = styles.SuccessStyle.Render("Check your inbox for the reset link")
	}

	errs := components.ErrorList(s.deps.Store.Auth.PasswordResetErrors)
	help := styles.HelpStyle.Render("enter: send reset email • ctrl+p: back to sign in")

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n%s", header, field, errs, status, help)
}

type loginResultMsg struct {
	pair *api.TokenPair
	user *data.User
	err  error
}

type resetRequestedMsg struct {
	err error
}

func (s *LoginScreen) login(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		pair, err := s.deps.API.Login(ctx, creds)
		if err != nil {
			return loginResultMsg{err: err}
		}
		// the token provider reads the session store, so tokens must land
		// there before the profile fetch
		if err := s.deps.Session.Set(data.KeyAccess, pair.Access); err != nil {
			return loginResultMsg{err: err}
		}
		user, err := s.deps.API.CurrentUser(ctx)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{pair: pair, user: user}
	}
}

func (s *LoginScreen) requestReset(email string) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.API.ResetPassword(context.Background(), email)
		return resetRequestedMsg{err: err}
	}
}
