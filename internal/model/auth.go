package model

// AuthState is the client's view of the current session. The JSON field
// names match the record the web client persists under the "auth" key,
// so the two frontends can share a storage format.
//
// Invariant: IsAuthenticated is true exactly when both User and Token
// are set. The session store is the only writer and maintains this.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Token           string `json:"token"`
}

// LoggedOut returns the default unauthenticated state.
func LoggedOut() AuthState {
	return AuthState{IsAuthenticated: false, User: nil, Token: ""}
}
