package model

// User is an authorized account. PasswordHash is a bcrypt hash,
// never the plaintext secret. Names are unique within the repo.
type User struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
}
