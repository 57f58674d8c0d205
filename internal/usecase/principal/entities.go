package principal

import "time"

// Seed holds the accounts installed at start-up. Empty fields are skipped.
type Seed struct {
	Owner      string
	Admin      string
	Manager    string
	TdrManager string
}

type PrincipalDTO struct {
	Slot      string    `json:"slot"`
	Account   string    `json:"account"`
	UpdatedAt time.Time `json:"updated_at"`
}
