package authform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/theme"
)

// LoginSubmitMsg is dispatched when the login form is completed.
type LoginSubmitMsg struct {
	Credentials auth.Credentials
}

// RegisterSubmitMsg is dispatched when the registration form is completed.
type RegisterSubmitMsg struct {
	Data auth.RegisterData
}

// CancelMsg is dispatched when either form is abandoned.
type CancelMsg struct{}

// Mode selects which account form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username        string
	email           string
	password        string
	passwordConfirm string
	firstName       string
	lastName        string
}

// Model is the Bubble Tea model for the login and registration forms.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	translate i18n.TranslateFunc
	mode      Mode
	width     int
	height    int
}

// New creates a new account form model.
func New(tr i18n.TranslateFunc, width, height int) Model {
	return Model{
		fb:        &formBindings{},
		translate: tr,
		width:     width,
		height:    height,
	}
}

// StartLogin initializes the login form.
func (m *Model) StartLogin() tea.Cmd {
	m.mode = ModeLogin
	*m.fb = formBindings{}
	m.form = m.buildLoginForm()
	return m.form.Init()
}

// StartRegister initializes the registration form.
func (m *Model) StartRegister() tea.Cmd {
	m.mode = ModeRegister
	*m.fb = formBindings{}
	m.form = m.buildRegisterForm()
	return m.form.Init()
}

// Update handles messages for the account forms.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the account form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := m.translate("login")
	if m.mode == ModeRegister {
		titleText = m.translate("register")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render(titleText) + "\n" + m.form.View())
}

// SetTranslator swaps the translation function after a language change.
func (m *Model) SetTranslator(tr i18n.TranslateFunc) {
	m.translate = tr
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildLoginForm() *huh.Form {
	tr := m.translate

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(tr("username")).
				Placeholder(tr("enterUsername")).
				Value(&m.fb.username).
				Validate(m.required("usernameRequired")),
			huh.NewInput().
				Title(tr("password")).
				Placeholder(tr("enterPassword")).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(m.required("passwordRequired")),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) buildRegisterForm() *huh.Form {
	tr := m.translate

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(tr("username")).
				Value(&m.fb.username).
				Validate(m.required("usernameRequired")),
			huh.NewInput().
				Title(tr("email")).
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title(tr("password")).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(m.required("passwordRequired")),
			huh.NewInput().
				Title(tr("confirmPassword")).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.passwordConfirm).
				Validate(m.validatePasswordConfirm),
			huh.NewInput().
				Title(tr("firstName") + " (" + tr("optional") + ")").
				Value(&m.fb.firstName),
			huh.NewInput().
				Title(tr("lastName") + " (" + tr("optional") + ")").
				Value(&m.fb.lastName),
		),
	).WithWidth(m.formWidth())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb

	if m.mode == ModeLogin {
		return func() tea.Msg {
			return LoginSubmitMsg{Credentials: auth.Credentials{
				Username: fb.username,
				Password: fb.password,
			}}
		}
	}

	return func() tea.Msg {
		return RegisterSubmitMsg{Data: auth.RegisterData{
			Username:        fb.username,
			Email:           fb.email,
			Password:        fb.password,
			PasswordConfirm: fb.passwordConfirm,
			FirstName:       fb.firstName,
			LastName:        fb.lastName,
		}}
	}
}

// required returns a validator that rejects blank input with the given
// translated message.
func (m Model) required(msgKey string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(m.translate(msgKey))
		}
		return nil
	}
}

func (m Model) validatePasswordConfirm(s string) error {
	if s != m.fb.password {
		return errors.New(m.translate("passwordsDoNotMatch"))
	}
	return nil
}

// validateEmail is a light shape check; the server remains the
// authority on address validity.
func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
		return errors.New("invalid email address")
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
