package models

// Credential is opaque credential material. It is stored as-is today
// (a deliberate simplification of the login exercise); keeping the type
// opaque means a salted-hash swap only touches Matches and the registration
// path.
type Credential string

// Matches reports whether the supplied secret matches this credential.
func (c Credential) Matches(secret string) bool {
	return string(c) == secret
}

// User is the single local user record guarding the app.
type User struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Password Credential `json:"-"`
}

// UserSnapshot is one emission of the single-user stream. User is nil when
// no user is registered.
type UserSnapshot struct {
	User *User
	Err  error
}

// ExistsSnapshot is one emission of the has-user stream.
type ExistsSnapshot struct {
	Exists bool
	Err    error
}
