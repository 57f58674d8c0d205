package ident

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"tdr-registry/internal/domain/apperr"
)

// Size is the fixed width of every domain identifier.
const Size = 32

// ID is a fixed-width opaque identifier. The zero value is the empty sentinel.
type ID [Size]byte

var (
	ErrTooLong    = fmt.Errorf("identifier longer than %d bytes: %w", Size, apperr.ErrInvalidInvariant)
	ErrMalformed  = fmt.Errorf("malformed identifier: %w", apperr.ErrInvalidInvariant)
	ErrEmptyInput = fmt.Errorf("empty identifier: %w", apperr.ErrInvalidInvariant)
)

// FromString encodes a business key into an ID: UTF-8 bytes, right-padded with zeros.
func FromString(s string) (ID, error) {
	var out ID
	if s == "" {
		return out, ErrEmptyInput
	}
	if len(s) > Size {
		return out, ErrTooLong
	}
	copy(out[:], s)
	return out, nil
}

// MustFromString is FromString for constants and tests.
func MustFromString(s string) ID {
	id, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Parse accepts the 0x-prefixed 64-hex text form, or falls back to a business key.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2+2*Size && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return fromHex(s[2:])
	}
	return FromString(s)
}

func fromHex(h string) (ID, error) {
	var out ID
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != Size {
		return out, ErrMalformed
	}
	copy(out[:], b)
	return out, nil
}

func (id ID) IsZero() bool { return id == ID{} }

// Hex returns 64 lowercase hex chars without prefix (storage form).
func (id ID) Hex() string { return hex.EncodeToString(id[:]) }

func (id ID) String() string { return "0x" + id.Hex() }

// Key returns the business key with zero padding stripped; non-printable ids fall back to hex.
func (id ID) Key() string {
	trimmed := strings.TrimRight(string(id[:]), "\x00")
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f || r == utf8.RuneError {
			return id.String()
		}
	}
	return trimmed
}

func (id ID) MarshalJSON() ([]byte, error) { return json.Marshal(id.String()) }

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*id = ID{}
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Value stores the id as 64 hex chars.
func (id ID) Value() (driver.Value, error) { return id.Hex(), nil }

func (id *ID) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*id = ID{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("ident: cannot scan %T", src)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*id = ID{}
		return nil
	}
	v, err := fromHex(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}
