// Package urn implements the opaque identifier algebra AFF4 objects are
// named with: a hierarchical string identifier with an append/child
// operation (spec §1, "URN / identifier algebra"). It is deliberately a
// thin wrapper — the stream engine never inspects a URN's internal
// structure beyond appending components to it.
package urn

import "github.com/google/uuid"

// URN is an opaque hierarchical identifier.
type URN string

// New mints a fresh URN under the given scheme, using a random UUID for
// uniqueness — the same convention original_source's stream identifiers
// use (an "aff4://<uuid>" URN minted once per object).
func New(scheme string) URN {
	return URN(scheme + "://" + uuid.New().String())
}

// Append returns the child URN formed by joining component onto the
// receiver with "/", mirroring the original's URN::Append.
func (u URN) Append(component string) URN {
	return URN(string(u) + "/" + component)
}

// String returns the URN's string form.
func (u URN) String() string {
	return string(u)
}

// Equal reports whether two URNs are identical.
func (u URN) Equal(other URN) bool {
	return u == other
}
