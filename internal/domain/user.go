package domain

// User is the session identity handed to callers after authentication.
// It never carries a password.
type User struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Account is a registered, non-privileged account as persisted.
// Password holds plain text or a bcrypt hash depending on the password mode.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
