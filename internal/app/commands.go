package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/task"
)

// opTimeout bounds each API call made from the UI.
const opTimeout = 15 * time.Second

type authChangedMsg struct {
	state model.AuthState
}

type taskSavedMsg struct {
	err error
}

type taskDeletedMsg struct {
	err error
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	message string
	err     error
}

type logoutDoneMsg struct{}

type draftLoadedMsg struct {
	draft *model.TaskDraft
}

// waitForAuthChange blocks until the session store pushes its next
// snapshot.
func (m Model) waitForAuthChange() tea.Cmd {
	ch := m.authCh
	return func() tea.Msg {
		return authChangedMsg{state: <-ch}
	}
}

func (m Model) createTask(d task.Draft, draftID string) tea.Cmd {
	svc := m.tasks
	drafts := m.drafts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if _, err := svc.Create(ctx, d); err != nil {
			return taskSavedMsg{err: err}
		}
		if draftID != "" && drafts != nil {
			// The form content made it to the server; the local copy
			// is no longer needed.
			_ = drafts.Delete(ctx, draftID)
		}
		return taskSavedMsg{}
	}
}

func (m Model) updateTask(id int64, p task.Patch) tea.Cmd {
	svc := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := svc.Update(ctx, id, p)
		return taskSavedMsg{err: err}
	}
}

func (m Model) deleteTask(id int64) tea.Cmd {
	svc := m.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := svc.Delete(ctx, id)
		return taskDeletedMsg{err: err}
	}
}

// toggleTask flips the selected task between todo and done.
func (m Model) toggleTask(t model.Task) tea.Cmd {
	svc := m.tasks
	next := model.StatusTodo
	if !t.Done() {
		next = model.StatusDone
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := svc.Update(ctx, t.ID, task.Patch{Status: &next})
		return taskSavedMsg{err: err}
	}
}

func (m Model) login(creds auth.Credentials) tea.Cmd {
	svc := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := svc.Login(ctx, creds)
		return loginResultMsg{err: err}
	}
}

func (m Model) register(data auth.RegisterData) tea.Cmd {
	svc := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		res, err := svc.Register(ctx, data)
		if err != nil {
			return registerResultMsg{err: err}
		}
		return registerResultMsg{message: res.Message}
	}
}

func (m Model) logout() tea.Cmd {
	svc := m.auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		svc.Logout(ctx)
		return logoutDoneMsg{}
	}
}

// saveDraft keeps an abandoned create form so its content survives a
// restart.
func (m Model) saveDraft(d model.TaskDraft) tea.Cmd {
	drafts := m.drafts
	if drafts == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := drafts.Save(ctx, d)
		return taskSavedMsg{err: err}
	}
}

// loadLatestDraft fetches the most recently saved draft, if any, to
// pre-fill the create form.
func (m Model) loadLatestDraft() tea.Cmd {
	drafts := m.drafts
	return func() tea.Msg {
		if drafts == nil {
			return draftLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		all, err := drafts.List(ctx)
		if err != nil || len(all) == 0 {
			return draftLoadedMsg{}
		}
		d := all[0]
		return draftLoadedMsg{draft: &d}
	}
}
