package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/draft"
	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/keys"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/session"
	appsync "github.com/facildate/taskboard/internal/sync"
	"github.com/facildate/taskboard/internal/task"
	"github.com/facildate/taskboard/internal/theme"
	"github.com/facildate/taskboard/internal/ui"
	"github.com/facildate/taskboard/internal/ui/authform"
	helpview "github.com/facildate/taskboard/internal/ui/help"
	"github.com/facildate/taskboard/internal/ui/taskform"
	"github.com/facildate/taskboard/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTaskCreate
	ViewTaskEdit
	ViewLogin
	ViewRegister
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the remote task API.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	tasks  *task.Service
	auth   *auth.Service
	sess   *session.Store
	lang   *i18n.LanguageStore
	drafts *draft.Store
	poller *appsync.Poller

	keys      *keys.KeyMap
	translate i18n.TranslateFunc

	taskList     tasklist.Model
	taskFormView taskform.Model
	authFormView authform.Model
	helpView     helpview.Model

	// authCh receives session snapshots pushed by the session store's
	// change notifications.
	authCh    chan model.AuthState
	authState model.AuthState

	ready         bool
	statusMessage string
	statusIsError bool
}

// New creates the root application model.
func New(
	tasks *task.Service,
	authSvc *auth.Service,
	sess *session.Store,
	lang *i18n.LanguageStore,
	drafts *draft.Store,
	poller *appsync.Poller,
) Model {
	k := keys.DefaultKeyMap()
	tr := i18n.NewTranslator(lang.Current())

	// Keep-latest delivery: when the buffer is full the oldest snapshot
	// is dropped, so the most recent auth state always gets through.
	authCh := make(chan model.AuthState, 8)
	sess.Subscribe(func(s model.AuthState) {
		for {
			select {
			case authCh <- s:
				return
			default:
				select {
				case <-authCh:
				default:
				}
			}
		}
	})

	return Model{
		currentView:  ViewList,
		tasks:        tasks,
		auth:         authSvc,
		sess:         sess,
		lang:         lang,
		drafts:       drafts,
		poller:       poller,
		keys:         k,
		translate:    tr,
		taskList:     tasklist.New(tasks, k, tr, 80, 24),
		taskFormView: taskform.New(tr, 80, 24),
		authFormView: authform.New(tr, 80, 24),
		helpView:     helpview.New(k),
		authCh:       authCh,
		authState:    sess.Current(),
	}
}

// Init returns the initial commands: load tasks and watch for session
// changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.taskList.Init(),
		m.waitForAuthChange(),
	}
	if m.poller != nil {
		cmds = append(cmds, m.poller.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskFormView.SetSize(contentWidth, contentHeight)
		m.authFormView.SetSize(contentWidth, contentHeight)
		m.helpView.SetWidth(contentWidth)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case authChangedMsg:
		m.authState = msg.state
		return m, m.waitForAuthChange()

	case appsync.RefreshResultMsg:
		// Only apply the result when it matches the filter currently
		// shown; a stale background fetch is simply discarded.
		var cmds []tea.Cmd
		if msg.Err == nil && msg.Filter == m.taskList.Filter() {
			var cmd tea.Cmd
			m.taskList, cmd = m.taskList.Update(
				tasklist.TasksLoadedMsg{Tasks: msg.Tasks},
			)
			cmds = append(cmds, cmd)
		}
		if m.poller != nil {
			cmds = append(cmds, m.poller.WaitForNextResult())
		}
		return m, tea.Batch(cmds...)

	case tasklist.TasksLoadedMsg:
		if msg.Err != nil {
			m.setError(msg.Err)
		}
		return m.updateActiveView(msg)

	case taskform.SubmitMsg:
		m.currentView = ViewList
		if msg.EditID > 0 {
			return m, m.updateTask(msg.EditID, msg.Patch)
		}
		return m, m.createTask(msg.Draft, msg.DraftID)

	case taskform.CancelMsg:
		m.currentView = ViewList
		if !msg.EditMode && msg.Draft.Title != "" {
			return m, m.saveDraft(msg.Draft)
		}
		return m, nil

	case authform.LoginSubmitMsg:
		return m, m.login(msg.Credentials)

	case authform.RegisterSubmitMsg:
		return m, m.register(msg.Data)

	case authform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.clearStatus()
		return m, m.taskList.LoadTasks()

	case taskDeletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.clearStatus()
		return m, m.taskList.LoadTasks()

	case loginResultMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.currentView = ViewList
		m.setStatus(m.translate("loginSuccess"))
		return m, m.taskList.LoadTasks()

	case registerResultMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.message != "" {
			m.setStatus(msg.message)
		} else {
			m.setStatus(m.translate("registerSuccess"))
		}
		// Registration does not log in; switch to the login form so
		// the new account can be used right away.
		m.currentView = ViewLogin
		return m, m.authFormView.StartLogin()

	case logoutDoneMsg:
		m.clearStatus()
		return m, m.taskList.LoadTasks()

	case draftLoadedMsg:
		m.previousView = m.currentView
		m.currentView = ViewTaskCreate
		return m, m.taskFormView.StartCreate(m.authState.IsAuthenticated, msg.draft)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	newModel, cmd := m.updateActiveView(msg)
	// Keep background refreshes aligned with the filter on screen.
	if am, ok := newModel.(Model); ok && am.poller != nil {
		am.poller.SetFilter(am.taskList.Filter())
	}
	return newModel, cmd
}

// handleGlobalKey processes keys that are routed by the root model
// rather than the active view. Returns handled=false when the key
// should fall through to the active view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Forms own the keyboard while open; only esc (handled by huh as
	// abort) and ctrl+c pass through.
	inForm := m.currentView == ViewTaskCreate ||
		m.currentView == ViewTaskEdit ||
		m.currentView == ViewLogin ||
		m.currentView == ViewRegister

	switch msg.String() {
	case "ctrl+c":
		if m.poller != nil {
			m.poller.Stop()
		}
		return tea.Quit, true

	case "q":
		if m.currentView == ViewList {
			if m.poller != nil {
				m.poller.Stop()
			}
			return tea.Quit, true
		}
	}

	if inForm {
		return nil, false
	}

	switch msg.String() {
	case "?":
		m.helpView.Toggle()
		return nil, true

	case "n":
		return m.loadLatestDraft(), true

	case "e":
		if t, ok := m.taskList.SelectedTask(); ok {
			m.previousView = m.currentView
			m.currentView = ViewTaskEdit
			return m.taskFormView.StartEdit(t, m.authState.IsAuthenticated), true
		}

	case "d", "x":
		if t, ok := m.taskList.SelectedTask(); ok {
			return m.deleteTask(t.ID), true
		}

	case "enter", " ":
		if t, ok := m.taskList.SelectedTask(); ok {
			return m.toggleTask(t), true
		}

	case "L":
		return m.cycleLanguage(), true

	case "i":
		if !m.authState.IsAuthenticated {
			m.previousView = m.currentView
			m.currentView = ViewLogin
			return m.authFormView.StartLogin(), true
		}

	case "R":
		if !m.authState.IsAuthenticated {
			m.previousView = m.currentView
			m.currentView = ViewRegister
			return m.authFormView.StartRegister(), true
		}

	case "O":
		if m.authState.IsAuthenticated {
			return m.logout(), true
		}
	}

	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskFormView, cmd = m.taskFormView.Update(msg)
	case ViewLogin, ViewRegister:
		m.authFormView, cmd = m.authFormView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.translate("appTitle"), m.accountLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusBarContent())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
// The expanded help listing overlays whatever view is active.
func (m Model) renderContent() string {
	if m.helpView.ShowingAll() {
		return theme.PanelStyle.Render(m.helpView.View())
	}

	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskFormView.View()
	case ViewLogin, ViewRegister:
		return m.authFormView.View()
	default:
		return ""
	}
}

// accountLabel is the header's right-hand indicator.
func (m Model) accountLabel() string {
	if m.authState.IsAuthenticated && m.authState.User != nil {
		return m.authState.User.DisplayName()
	}
	return m.translate("login") + " (i)"
}

// statusBarContent shows a transient status message when present,
// otherwise the filter summary and key hints.
func (m Model) statusBarContent() string {
	if m.statusMessage != "" {
		if m.statusIsError {
			return theme.ErrorStyle.Render(m.statusMessage)
		}
		return m.statusMessage
	}

	if m.helpView.ShowingAll() {
		return "? close help"
	}

	switch m.currentView {
	case ViewTaskCreate, ViewTaskEdit, ViewLogin, ViewRegister:
		return "enter submit | esc cancel"
	default:
		return m.translate("filter") + " " + m.taskList.FilterLabel() +
			"  " + m.helpView.View()
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.statusMessage = m.translate("error") + ": " + err.Error()
	m.statusIsError = true
}

func (m *Model) clearStatus() {
	m.statusMessage = ""
	m.statusIsError = false
}

// cycleLanguage advances the persisted language preference and swaps
// the translator on every view.
func (m *Model) cycleLanguage() tea.Cmd {
	langs := i18n.Languages()
	current := m.lang.Current()
	next := langs[0]
	for i, l := range langs {
		if l == current {
			next = langs[(i+1)%len(langs)]
			break
		}
	}

	m.lang.Set(next)
	m.translate = i18n.NewTranslator(next)
	m.taskList.SetTranslator(m.translate)
	m.taskFormView.SetTranslator(m.translate)
	m.authFormView.SetTranslator(m.translate)
	return nil
}
