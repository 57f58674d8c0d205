package transfer

import (
	"tdr-registry/internal/domain/application"
	"tdr-registry/internal/domain/ident"
)

// Input names the source record, the application slot it is spent under and
// the buyers of the derived record. Shares is optional.
type Input struct {
	SourceDrcID   ident.ID
	ApplicationID ident.ID
	Far           uint64
	BuyerIDs      []ident.ID
	Shares        []uint64
}

type Result struct {
	SourceDrcID       ident.ID `json:"source_drc_id"`
	DerivedDrcID      ident.ID `json:"derived_drc_id"`
	ApplicationID     ident.ID `json:"application_id"`
	Far               uint64   `json:"far"`
	SourceAvailable   uint64   `json:"source_far_available"`
	SourceStatus      uint8    `json:"source_status"`
	SourceStatusLabel string   `json:"source_status_name"`
}

// Options wires the optional collaborators. A nil Applications skips the
// application workflow checks.
type Options struct {
	Applications            application.Reader
	RequireRegisteredBuyers bool
}
