package id

import (
	"crypto/sha256"

	"tdr-registry/internal/domain/ident"
)

// transferTag separates derived DRC ids from any other hash over the same inputs.
const transferTag = "tdr-registry/derived-drc/v1"

// Derive returns the id of the DRC produced by transferring part of source under
// application. Inputs are fixed width, so the concatenation is unambiguous.
func Derive(source, application ident.ID) ident.ID {
	h := sha256.New()
	h.Write([]byte(transferTag))
	h.Write(source[:])
	h.Write(application[:])
	var out ident.ID
	copy(out[:], h.Sum(nil))
	return out
}
