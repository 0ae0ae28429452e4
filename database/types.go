// Package database provides attribute value types for the entity graph.
package database

// Access describes the access restriction of a register or field.
// Read-write is the implicit default: it is never stored, so absent
// entries in the access map read back as AccessReadWrite.
type Access uint8

const (
	AccessReadWrite Access = iota
	AccessReadOnly
	AccessWriteOnly
)

// String returns the canonical lowercase spelling of the access mode.
func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "read-only"
	case AccessWriteOnly:
		return "write-only"
	default:
		return "read-write"
	}
}
