package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/storage"
)

func testUser() model.User {
	return model.User{ID: 7, Username: "diego", Email: "diego@example.com"}
}

func TestNewStoreDefaultsToLoggedOut(t *testing.T) {
	s := NewStore(storage.NewMemory())

	state := s.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
}

func TestNewStoreLoadsPersistedState(t *testing.T) {
	backend := storage.NewMemory()
	user := testUser()
	raw, err := json.Marshal(model.AuthState{
		IsAuthenticated: true,
		User:            &user,
		Token:           "tok-123",
	})
	require.NoError(t, err)
	require.NoError(t, backend.Set(storage.KeyAuth, string(raw)))

	s := NewStore(backend)

	state := s.Current()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "diego", state.User.Username)
	assert.Equal(t, "tok-123", state.Token)
}

func TestNewStoreIgnoresCorruptRecord(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(storage.KeyAuth, "{not json"))

	s := NewStore(backend)
	assert.False(t, s.Current().IsAuthenticated)
}

func TestNewStoreIgnoresInconsistentRecord(t *testing.T) {
	backend := storage.NewMemory()
	// Claims authentication but has no token.
	require.NoError(t, backend.Set(storage.KeyAuth,
		`{"isAuthenticated":true,"user":{"id":1,"username":"x"},"token":""}`))

	s := NewStore(backend)
	assert.False(t, s.Current().IsAuthenticated)
}

func TestSubscribeReceivesCurrentStateImmediately(t *testing.T) {
	s := NewStore(storage.NewMemory())
	s.Login(testUser(), "tok-123")

	var got model.AuthState
	calls := 0
	s.Subscribe(func(state model.AuthState) {
		got = state
		calls++
	})

	assert.Equal(t, 1, calls)
	assert.True(t, got.IsAuthenticated)
	require.NotNil(t, got.User)
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, "tok-123", got.Token)
}

func TestLoginNotifiesAndPersists(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)

	var states []model.AuthState
	s.Subscribe(func(state model.AuthState) {
		states = append(states, state)
	})

	s.Login(testUser(), "tok-123")

	require.Len(t, states, 2)
	assert.False(t, states[0].IsAuthenticated)
	assert.True(t, states[1].IsAuthenticated)

	raw, err := backend.Get(storage.KeyAuth)
	require.NoError(t, err)

	var persisted model.AuthState
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.True(t, persisted.IsAuthenticated)
	assert.Equal(t, "tok-123", persisted.Token)
}

func TestLogoutClearsStateAndStorage(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)
	s.Login(testUser(), "tok-123")

	s.Logout()

	state := s.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)

	_, err := backend.Get(storage.KeyAuth)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateUserPreservesToken(t *testing.T) {
	s := NewStore(storage.NewMemory())
	s.Login(testUser(), "tok-123")

	updated := testUser()
	updated.FirstName = "Diego"
	s.UpdateUser(updated)

	state := s.Current()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "tok-123", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "Diego", state.User.FirstName)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore(storage.NewMemory())

	calls := 0
	unsubscribe := s.Subscribe(func(model.AuthState) { calls++ })
	unsubscribe()

	s.Login(testUser(), "tok-123")
	assert.Equal(t, 1, calls)
}
