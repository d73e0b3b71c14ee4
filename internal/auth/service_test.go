package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/auth"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/session"
	"github.com/facildate/taskboard/internal/storage"
)

func newTestService(t *testing.T, handler http.Handler) (*auth.Service, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewStore(storage.NewMemory())
	client, err := api.NewClient(srv.URL, sess.Token)
	require.NoError(t, err)

	return auth.NewService(client, sess), sess
}

func validRegistration() auth.RegisterData {
	return auth.RegisterData{
		Username:        "diego",
		Email:           "diego@example.com",
		Password:        "s3cret-pass",
		PasswordConfirm: "s3cret-pass",
	}
}

func TestLoginSuccess(t *testing.T) {
	var loginBody auth.Credentials
	var profileAuth string
	svc, sess := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&loginBody))
			w.Write([]byte(`{"access":"tok-abc"}`))
		case "/auth/profile/":
			profileAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"id":7,"username":"diego","email":"diego@example.com"}`))
		default:
			http.NotFound(w, r)
		}
	}))

	user, err := svc.Login(context.Background(), auth.Credentials{
		Username: "diego",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "diego", user.Username)
	assert.Equal(t, "Bearer tok-abc", profileAuth)

	state := sess.Current()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "tok-abc", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, int64(7), state.User.ID)
}

func TestLoginSanitizesUsernameNotPassword(t *testing.T) {
	var loginBody auth.Credentials
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&loginBody))
			w.Write([]byte(`{"access":"tok"}`))
		default:
			w.Write([]byte(`{"id":1,"username":"x"}`))
		}
	}))

	_, err := svc.Login(context.Background(), auth.Credentials{
		Username: `die<go>`,
		Password: `pa'ss<word>`,
	})
	require.NoError(t, err)

	assert.Equal(t, "die&lt;go&gt;", loginBody.Username)
	assert.Equal(t, `pa'ss<word>`, loginBody.Password)
}

func TestLoginFailure(t *testing.T) {
	svc, sess := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid credentials"}`, http.StatusUnauthorized)
	}))

	_, err := svc.Login(context.Background(), auth.Credentials{
		Username: "diego",
		Password: "wrong",
	})

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "logging in", httpErr.Op)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "invalid credentials", httpErr.Detail)

	assert.False(t, sess.Current().IsAuthenticated)
}

func TestLoginProfileFetchFailure(t *testing.T) {
	svc, sess := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login/" {
			w.Write([]byte(`{"access":"tok"}`))
			return
		}
		http.Error(w, `{"detail":"profile unavailable"}`, http.StatusBadGateway)
	}))

	_, err := svc.Login(context.Background(), auth.Credentials{
		Username: "diego",
		Password: "s3cret-pass",
	})

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "fetching profile", httpErr.Op)

	// A failed profile fetch must not leave a half-authenticated session.
	assert.False(t, sess.Current().IsAuthenticated)
}

func TestRegisterSuccess(t *testing.T) {
	var body auth.RegisterData
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"User registered successfully","user":{"id":3,"username":"diego","email":"diego@example.com"}}`))
	}))

	result, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully", result.Message)
	assert.Equal(t, int64(3), result.User.ID)
	assert.Equal(t, "s3cret-pass", body.Password)
}

func TestRegisterSanitizesFieldsExceptPasswords(t *testing.T) {
	var body auth.RegisterData
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok","user":{"id":1,"username":"x"}}`))
	}))

	data := validRegistration()
	data.FirstName = `Die<go>`
	data.Password = `pa"ss-word1`
	data.PasswordConfirm = `pa"ss-word1`

	_, err := svc.Register(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, "Die&lt;go&gt;", body.FirstName)
	assert.Equal(t, `pa"ss-word1`, body.Password)
}

func TestRegisterClientSideValidation(t *testing.T) {
	requests := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	data := validRegistration()
	data.PasswordConfirm = "different-pass"

	_, err := svc.Register(context.Background(), data)
	assert.Error(t, err)
	assert.Zero(t, requests)

	data = validRegistration()
	data.Email = "not-an-email"

	_, err = svc.Register(context.Background(), data)
	assert.Error(t, err)
	assert.Zero(t, requests)
}

func TestRegisterServerFieldErrors(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"username":["This username is already taken"]}`, http.StatusBadRequest)
	}))

	_, err := svc.Register(context.Background(), validRegistration())

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "registering", httpErr.Op)
	assert.Contains(t, httpErr.Detail, "This username is already taken")
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	svc, sess := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Logout never calls the server; any request here is a bug.
		t.Error("unexpected request during logout")
	}))
	sess.Login(model.User{ID: 1, Username: "diego"}, "tok")

	svc.Logout(context.Background())

	assert.False(t, sess.Current().IsAuthenticated)
}

func TestProfileRequiresToken(t *testing.T) {
	requests := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := svc.Profile(context.Background())
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
	assert.Zero(t, requests)
}

func TestProfileRefreshesStoredUser(t *testing.T) {
	svc, sess := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":1,"username":"diego","first_name":"Diego"}`))
	}))
	sess.Login(model.User{ID: 1, Username: "diego"}, "tok")

	user, err := svc.Profile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Diego", user.FirstName)

	state := sess.Current()
	assert.Equal(t, "tok", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "Diego", state.User.FirstName)
}
