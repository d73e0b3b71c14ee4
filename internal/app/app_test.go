package app_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/app"
	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/i18n"
	"github.com/facildate/taskboard/internal/session"
	"github.com/facildate/taskboard/internal/storage"
	"github.com/facildate/taskboard/internal/task"
)

func newTestApp(t *testing.T) app.Model {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	backend := storage.NewMemory()
	sess := session.NewStore(backend)
	lang := i18n.NewLanguageStore(backend)

	client, err := api.NewClient(srv.URL, sess.Token)
	require.NoError(t, err)

	return app.New(
		task.NewService(client, sess),
		auth.NewService(client, sess),
		sess,
		lang,
		nil,
		nil,
	)
}

func resize(m app.Model) app.Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(app.Model)
}

func keyPress(m app.Model, r rune) (app.Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(app.Model), cmd
}

func TestViewShowsAppTitleAfterResize(t *testing.T) {
	m := newTestApp(t)

	assert.Equal(t, "Loading...", m.View())

	m = resize(m)
	assert.Contains(t, m.View(), "Task Manager")
}

func TestLoginKeyOpensLoginForm(t *testing.T) {
	m := resize(newTestApp(t))

	m, cmd := keyPress(m, 'i')
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Username")
}

func TestRegisterKeyOpensRegisterForm(t *testing.T) {
	m := resize(newTestApp(t))

	m, cmd := keyPress(m, 'R')
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Confirm Password")
}

func TestLanguageCycleSwapsTranslations(t *testing.T) {
	m := resize(newTestApp(t))
	require.Contains(t, m.View(), "Task Manager")

	m, _ = keyPress(m, 'L')
	assert.Contains(t, m.View(), "Gestionnaire de Tâches")

	m, _ = keyPress(m, 'L')
	assert.Contains(t, m.View(), "Task Manager")
}

func TestHelpKeyTogglesFullListing(t *testing.T) {
	m := resize(newTestApp(t))

	// "refresh" only appears in the expanded key listing.
	require.NotContains(t, m.View(), "refresh")

	m, _ = keyPress(m, '?')
	assert.Contains(t, m.View(), "refresh")
	assert.Contains(t, m.View(), "logout")

	m, _ = keyPress(m, '?')
	assert.NotContains(t, m.View(), "refresh")
}

func TestQuitKeyOnList(t *testing.T) {
	m := resize(newTestApp(t))

	_, cmd := keyPress(m, 'q')
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAnonymousHeaderShowsLoginHint(t *testing.T) {
	m := resize(newTestApp(t))

	header := strings.Split(m.View(), "\n")[0]
	assert.Contains(t, header, "Login")
}
