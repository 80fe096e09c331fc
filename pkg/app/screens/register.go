package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/store"
)

type RegisterScreen struct {
	deps *Deps

	inputs  []textinput.Model
	focused int

	width  int
	height int
}

func NewRegisterScreen(deps *Deps) *RegisterScreen {
	placeholders := []string{"Username", "Email", "Password", "Repeat password"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 100
		ti.Width = 40
		if i >= 2 {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	deps.Store.Auth.ResetIsRegistered()

	return &RegisterScreen{deps: deps, inputs: inputs}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *RegisterScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.deps.Store.Auth.RegisterLoading {
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
			if s.deps.Store.Auth.IsRegistered {
				return s, switchTo("login", nil)
			}
			reg := api.Registration{
				Username:   s.inputs[0].Value(),
				Email:      s.inputs[1].Value(),
				Password:   s.inputs[2].Value(),
				RePassword: s.inputs[3].Value(),
			}
			if errs := store.ValidateRegistration(reg); len(errs) > 0 {
				s.deps.Store.Auth.RejectRegistration(errs)
				return s, nil
			}
			s.deps.Store.Auth.StartRegister()
			return s, s.register(reg)
		case "esc":
			return s, switchTo("login", nil)
		}

	case registerResultMsg:
		if msg.err != nil {
			s.deps.Store.Auth.FailRegister(msg.err)
			return s, nil
		}
		s.deps.Store.Auth.FinishRegister()
		return s, nil
	}

	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *RegisterScreen) focusNext(delta int) {
	s.inputs[s.focused].Blur()
	s.focused = (s.focused + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focused].Focus()
}

func (s *RegisterScreen) View() string {
	header := styles.TitleStyle.Render("Create an account")

	if s.deps.Store.Auth.IsRegistered {
		body := styles.SuccessStyle.Render("Account created. Check your email for the activation link.")
		help := styles.HelpStyle.Render("enter: back to sign in")
		return fmt.Sprintf("%s\n\n%s\n\n%s", header, body, help)
	}

	var fields string
	for i, input := range s.inputs {
		inputStyle := styles.InputStyle
		if i == s.focused {
			inputStyle = styles.FocusedInputStyle
		}
		fields += inputStyle.Render(input.View()) + "\n"
	}

	errs := components.ErrorList(s.deps.Store.Auth.RegisterErrors)

	status := ""
	if s.deps.Store.Auth.RegisterLoading {
		status = styles.LoadingStyle.Render("Creating account...") + "\n"
	}

	help := styles.HelpStyle.Render("enter: register • tab: next field • esc: back to sign in")

	return fmt.Sprintf("%s\n\n%s\n%s%s\n%s", header, fields, errs, status, help)
}

type registerResultMsg struct {
	err error
}

func (s *RegisterScreen) register(reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		_, err := s.deps.API.Register(context.Background(), reg)
		return registerResultMsg{err: err}
	}
}
