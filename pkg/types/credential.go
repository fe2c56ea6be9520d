package types

// Credential is the single operator login stored in login.json. PasswordHash
// is a bcrypt hash; Password is only read from files written before hashing
// was supported.
type Credential struct {
	Username     string `json:"username"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}
