package taskform

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/sanitize"
	"github.com/facildate/taskboard/internal/task"
	"github.com/facildate/taskboard/internal/theme"
)

// SubmitMsg is dispatched when the form is completed. EditID is zero
// for a create; otherwise Patch holds the changed fields.
type SubmitMsg struct {
	EditID  int64
	Draft   task.Draft
	Patch   task.Patch
	DraftID string
}

// CancelMsg is dispatched when the user abandons the form. For a
// create, Draft carries the typed content so it can be kept locally.
type CancelMsg struct {
	EditMode bool
	Draft    model.TaskDraft
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	status      string
	visibility  string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form          *huh.Form
	fb            *formBindings
	translate     i18n.TranslateFunc
	editMode      bool
	editID        int64
	draftID       string
	authenticated bool
	width         int
	height        int
}

// New creates a new task form model.
func New(tr i18n.TranslateFunc, width, height int) Model {
	return Model{
		fb:        &formBindings{status: model.StatusTodo, visibility: model.VisibilityPrivate},
		translate: tr,
		width:     width,
		height:    height,
	}
}

// StartCreate initializes the form for creating a new task. When a
// locally saved draft is supplied, its content pre-fills the form and
// the draft is deleted after a successful submit.
func (m *Model) StartCreate(authenticated bool, fromDraft *model.TaskDraft) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.draftID = ""
	m.authenticated = authenticated
	m.fb.title = ""
	m.fb.description = ""
	m.fb.status = model.StatusTodo
	m.fb.visibility = model.VisibilityPrivate
	if !authenticated {
		m.fb.visibility = model.VisibilityGlobal
	}

	if fromDraft != nil {
		m.draftID = fromDraft.ID
		m.fb.title = fromDraft.Title
		m.fb.description = fromDraft.Description
		m.fb.status = fromDraft.Status
		m.fb.visibility = fromDraft.Visibility
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(t model.Task, authenticated bool) tea.Cmd {
	m.editMode = true
	m.editID = t.ID
	m.draftID = ""
	m.authenticated = authenticated
	m.fb.title = t.Title
	if t.Description != nil {
		m.fb.description = *t.Description
	} else {
		m.fb.description = ""
	}
	m.fb.status = t.Status
	m.fb.visibility = t.Visibility

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
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
		return m, m.handleCancel()
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := m.translate("addTask")
	if m.editMode {
		titleText = m.translate("editTask")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	if !m.authenticated && !m.editMode {
		note := theme.HelpStyle.Render(m.translate("loginToCreatePrivate"))
		content += "\n" + note
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
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

func (m *Model) buildForm() *huh.Form {
	tr := m.translate

	fields := []huh.Field{
		huh.NewInput().
			Title(tr("title")).
			Placeholder(tr("addFirstTask")).
			Value(&m.fb.title).
			Validate(m.validateTitle),
		huh.NewText().
			Title(tr("description") + " (" + tr("optional") + ")").
			Value(&m.fb.description).
			Validate(m.validateDescription),
		huh.NewSelect[string]().
			Title(tr("status")).
			Options(
				huh.NewOption(tr("todo"), model.StatusTodo),
				huh.NewOption(tr("done"), model.StatusDone),
			).
			Value(&m.fb.status),
	}

	// Anonymous tasks are always global; the API enforces it, so the
	// selector is only offered to logged-in users.
	if m.authenticated {
		fields = append(fields,
			huh.NewSelect[string]().
				Title(tr("visibility")).
				Options(
					huh.NewOption(tr("private"), model.VisibilityPrivate),
					huh.NewOption(tr("global"), model.VisibilityGlobal),
				).
				Value(&m.fb.visibility),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	editID := m.editID
	draftID := m.draftID

	if m.editMode {
		patch := task.Patch{
			Title:      &fb.title,
			Status:     &fb.status,
			Visibility: &fb.visibility,
		}
		patch.Description = &fb.description
		return func() tea.Msg {
			return SubmitMsg{EditID: editID, Patch: patch}
		}
	}

	draft := task.Draft{
		Title:      fb.title,
		Status:     fb.status,
		Visibility: fb.visibility,
	}
	if fb.description != "" {
		desc := fb.description
		draft.Description = &desc
	}
	return func() tea.Msg {
		return SubmitMsg{Draft: draft, DraftID: draftID}
	}
}

func (m Model) handleCancel() tea.Cmd {
	editMode := m.editMode
	d := model.TaskDraft{
		ID:          m.draftID,
		Title:       m.fb.title,
		Description: m.fb.description,
		Status:      m.fb.status,
		Visibility:  m.fb.visibility,
	}
	return func() tea.Msg {
		return CancelMsg{EditMode: editMode, Draft: d}
	}
}

func (m Model) validateTitle(s string) error {
	res := sanitize.ValidateTaskInput(s, nil)
	if !res.Valid {
		return errors.New(res.Errors[0])
	}
	return nil
}

func (m Model) validateDescription(s string) error {
	if s == "" {
		return nil
	}
	res := sanitize.ValidateTaskInput("ok", &s)
	if !res.Valid {
		return errors.New(res.Errors[0])
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
