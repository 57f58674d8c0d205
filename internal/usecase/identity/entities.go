package identity

import "tdr-registry/internal/domain/ident"

// OfficerInput carries the officer id and the metadata replaced on add/update.
type OfficerInput struct {
	ID         ident.ID
	Role       uint8
	Department uint8
	Zone       uint8
}

type EntryDTO struct {
	Kind    string   `json:"kind"`
	ID      ident.ID `json:"id"`
	Account string   `json:"account"`
}
