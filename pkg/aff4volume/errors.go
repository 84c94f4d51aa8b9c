package aff4volume

import "errors"

// ErrMemberNotFound is returned by OpenMember when the named member does
// not exist in the volume.
var ErrMemberNotFound = errors.New("aff4volume: member not found")

// ErrMemberExists is returned by CreateMember when the named member
// already exists in the volume.
var ErrMemberExists = errors.New("aff4volume: member already exists")

// errNotReadable/errNotSeekable/errNotWritable report a call against the
// wrong half of a Member's write-then-read lifecycle (spec §3 Bevy
// lifecycle: a member is written once, sealed on Close, then only read).
var (
	errNotReadable = errors.New("aff4volume: member open for writing only")
	errNotSeekable = errors.New("aff4volume: member open for writing only")
	errNotWritable = errors.New("aff4volume: member open for reading only")
)
