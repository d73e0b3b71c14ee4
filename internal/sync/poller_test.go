package sync_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/session"
	"github.com/facildate/taskboard/internal/storage"
	appsync "github.com/facildate/taskboard/internal/sync"
	"github.com/facildate/taskboard/internal/task"
)

func newTestPoller(t *testing.T, handler http.Handler, interval time.Duration) *appsync.Poller {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewStore(storage.NewMemory())
	client, err := api.NewClient(srv.URL, sess.Token)
	require.NoError(t, err)

	p := appsync.New(task.NewService(client, sess), interval)
	t.Cleanup(p.Stop)
	return p
}

func TestManualRefreshDeliversResult(t *testing.T) {
	p := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":7,"title":"buy milk","status":"todo","visibility":"global"}]`))
	}), time.Hour)

	wait := p.Start()
	p.Refresh()

	msg, ok := wait().(appsync.RefreshResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	require.Len(t, msg.Tasks, 1)
	assert.Equal(t, "buy milk", msg.Tasks[0].Title)
	assert.Equal(t, model.FilterAll, msg.Filter)

	status := p.GetStatus()
	assert.Equal(t, appsync.Idle, status.State)
	assert.False(t, status.LastSync.IsZero())
}

func TestIntervalRefresh(t *testing.T) {
	p := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}), 10*time.Millisecond)

	wait := p.Start()

	msg, ok := wait().(appsync.RefreshResultMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
}

func TestRefreshCarriesFilter(t *testing.T) {
	p := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "status=done", r.URL.RawQuery)
		w.Write([]byte(`[]`))
	}), time.Hour)

	p.SetFilter(model.FilterDone)
	wait := p.Start()
	p.Refresh()

	msg, ok := wait().(appsync.RefreshResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, model.FilterDone, msg.Filter)
}

func TestRefreshReportsServerError(t *testing.T) {
	p := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"server exploded"}`, http.StatusInternalServerError)
	}), time.Hour)

	wait := p.Start()
	p.Refresh()

	msg, ok := wait().(appsync.RefreshResultMsg)
	require.True(t, ok)
	require.Error(t, msg.Err)

	status := p.GetStatus()
	assert.Equal(t, appsync.Errored, status.State)
	assert.Error(t, status.Error)
}

func TestStartTwiceIsNoOp(t *testing.T) {
	p := newTestPoller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}), time.Hour)

	first := p.Start()
	require.NotNil(t, first)
	assert.Nil(t, p.Start())
}
