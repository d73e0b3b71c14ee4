package tasklist

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/keys"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/task"
	"github.com/facildate/taskboard/internal/theme"
)

// fetchTimeout bounds each list call. The task service itself carries
// no timeout; the UI is the wrapper that imposes one.
const fetchTimeout = 15 * time.Second

// TasksLoadedMsg is sent when a fetch from the API completes.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

// filterCycle is the order the Tab key steps through status filters.
var filterCycle = []model.Filter{
	model.FilterAll,
	model.FilterTodo,
	model.FilterDone,
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	svc         *task.Service
	keys        *keys.KeyMap
	translate   i18n.TranslateFunc
	filter      model.Filter
	filterIndex int
	loading     bool
	width       int
	height      int
}

// New creates a new task list model.
func New(svc *task.Service, k *keys.KeyMap, tr i18n.TranslateFunc, width, height int) Model {
	delegate := ItemDelegate{Translate: tr}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = tr("tasks")
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:      l,
		svc:       svc,
		keys:      k,
		translate: tr,
		filter:    model.FilterAll,
		width:     width,
		height:    height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			items[i] = TaskItem{Task: t}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, m.LoadTasks()

		case key.Matches(msg, m.keys.CycleFilter):
			m.filterIndex = (m.filterIndex + 1) % len(filterCycle)
			m.filter = filterCycle[m.filterIndex]
			return m, m.LoadTasks()
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn).
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter != model.FilterAll {
		return style.Render(m.translate("noTasksFound"))
	}

	return style.Render(
		m.translate("noTasksFound") + "\n\n" + m.translate("addFirstTask"),
	)
}

// LoadTasks returns a tea.Cmd that fetches tasks with the current filter.
func (m Model) LoadTasks() tea.Cmd {
	svc := m.svc
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		tasks, err := svc.List(ctx, filter)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

// Filter returns the currently selected status filter.
func (m Model) Filter() model.Filter {
	return m.filter
}

// FilterLabel returns the localized label of the current filter.
func (m Model) FilterLabel() string {
	switch m.filter {
	case model.FilterTodo:
		return m.translate("todo")
	case model.FilterDone:
		return m.translate("done")
	default:
		return m.translate("all")
	}
}

// SelectedTask returns the task under the cursor, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// SetTranslator swaps the translation function after a language change.
func (m *Model) SetTranslator(tr i18n.TranslateFunc) {
	m.translate = tr
	m.list.Title = tr("tasks")
	m.list.SetDelegate(ItemDelegate{Translate: tr})
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
