// Package auth implements the login, registration, logout, and profile
// operations against the remote auth endpoints, keeping the session
// store in step with their results.
package auth

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/facildate/taskboard/internal/api"
	"github.com/facildate/taskboard/internal/model"
	"github.com/facildate/taskboard/internal/sanitize"
	"github.com/facildate/taskboard/internal/session"
)

const (
	loginPath    = "/auth/login/"
	registerPath = "/auth/register/"
	profilePath  = "/auth/profile/"
)

// Service performs authentication calls and records their outcome in
// the session store.
type Service struct {
	client   *api.Client
	session  *session.Store
	validate *validator.Validate
}

// NewService creates an auth service on top of the shared API client.
func NewService(client *api.Client, sess *session.Store) *Service {
	return &Service{
		client:   client,
		session:  sess,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Login authenticates against the API and, on success, fetches the
// profile and stores both user and token in the session. The username
// is sanitized; the password never is, escaping would corrupt it.
func (s *Service) Login(ctx context.Context, creds Credentials) (model.User, error) {
	body := Credentials{
		Username: sanitize.Clean(creds.Username),
		Password: creds.Password,
	}

	var lr loginResponse
	if err := s.client.Post(ctx, "logging in", loginPath, body, &lr); err != nil {
		return model.User{}, err
	}

	var user model.User
	err := s.client.GetWithToken(ctx, "fetching profile", profilePath, lr.Access, &user)
	if err != nil {
		return model.User{}, err
	}

	s.session.Login(user, lr.Access)
	return user, nil
}

// Register creates a new account. All fields except the passwords are
// sanitized before submission. Server-side rejections surface as an
// *api.HTTPError carrying the parsed field errors.
func (s *Service) Register(ctx context.Context, data RegisterData) (RegisterResult, error) {
	if err := s.validate.Struct(data); err != nil {
		return RegisterResult{}, fmt.Errorf("validating registration: %w", err)
	}

	body := RegisterData{
		Username:        sanitize.Clean(data.Username),
		Email:           sanitize.Clean(data.Email),
		Password:        data.Password,
		PasswordConfirm: data.PasswordConfirm,
		FirstName:       sanitize.Clean(data.FirstName),
		LastName:        sanitize.Clean(data.LastName),
	}

	var result RegisterResult
	if err := s.client.Post(ctx, "registering", registerPath, body, &result); err != nil {
		return RegisterResult{}, err
	}

	return result, nil
}

// Logout clears the local session and expires the legacy auth cookie.
// It never fails: there is no server-side session to invalidate, and
// local clearing is unconditional.
func (s *Service) Logout(ctx context.Context) {
	s.session.Logout()
	s.client.ExpireAuthCookie()
}

// Profile fetches the current user's profile and refreshes the stored
// user record. Returns session.ErrNotAuthenticated when no token is held.
func (s *Service) Profile(ctx context.Context) (model.User, error) {
	token := s.session.Token()
	if token == "" {
		return model.User{}, fmt.Errorf("fetching profile: %w", session.ErrNotAuthenticated)
	}

	var user model.User
	if err := s.client.Get(ctx, "fetching profile", profilePath, &user); err != nil {
		return model.User{}, err
	}

	s.session.UpdateUser(user)
	return user, nil
}
