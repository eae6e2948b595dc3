package types

// User represents an account in the system.
// The JSON tags are the on-disk collection format and must not change.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id"`

	// Name is the user's display or full name.
	Name string `json:"nome"`

	// Email is the user's email address.
	Email string `json:"email"`

	// Login is the unique login name chosen by the user.
	Login string `json:"login"`

	// PasswordHash stores the SHA-256 hex digest of the user's password.
	// It is stripped before a user leaves the service layer, so it is
	// never present in API responses or session state.
	PasswordHash string `json:"senha_hash,omitempty"`
}

// Sanitized returns a copy of the user without the credential hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
