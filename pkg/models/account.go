package models

// Account represents a maintainer login. Each account carries its own
// hashing scheme: verification must re-derive the hash with the
// account's current algorithm and rehash count, never a global default.
type Account struct {
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	HashAlgorithm string `json:"hash_algo"`
	RehashCount   int    `json:"rehash_count"`
	Removable     bool   `json:"removable"`
}
