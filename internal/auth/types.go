package auth

import "github.com/facildate/taskboard/internal/model"

// Credentials are the fields submitted to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterData are the fields submitted to the register endpoint.
// The validate tags mirror the server-side registration rules so
// obviously bad submissions are rejected before any network call.
type RegisterData struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName        string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

// RegisterResult is the register endpoint's success payload.
type RegisterResult struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// loginResponse is the login endpoint's success payload.
type loginResponse struct {
	Access string `json:"access"`
}
