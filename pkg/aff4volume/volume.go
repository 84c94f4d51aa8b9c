// Package aff4volume defines the minimal capability the chunked stream
// engine in pkg/aff4 requires of its containing archive: create a named
// member that accepts bytes, later open a named member for reading with
// known size and seek (spec §1/§9). The volume backend itself — the actual
// zip-like container format — is deliberately out of the engine's scope;
// this package only defines the boundary and two concrete collaborators
// (an in-memory fake and a real zip-backed volume).
package aff4volume

import "io"

// Member is a single named entry inside a Volume. While being written it
// behaves as an io.WriteCloser; once opened for reading it behaves as an
// io.ReadSeekCloser. A Member is never both at once.
type Member interface {
	io.Writer
	io.Reader
	io.Seeker
	io.Closer
}

// Volume is the capability the stream engine consumes from its containing
// archive.
type Volume interface {
	// CreateMember opens a new named member for writing. Creating a member
	// that already exists is an error. Closing the returned Member
	// finalizes its on-disk representation (spec §9 "Scoped member
	// handles").
	CreateMember(name string) (Member, error)

	// OpenMember opens an existing named member for reading, along with
	// its size in bytes. Opening a member that does not exist returns an
	// error satisfying errors.Is(err, ErrMemberNotFound).
	OpenMember(name string) (Member, int64, error)
}
