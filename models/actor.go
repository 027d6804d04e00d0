package models

// Actor is the authenticated operator performing a settlement. Resolved by the auth
// middleware from the bearer token; recorded on every verified ledger entry.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
