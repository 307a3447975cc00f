// Package domain contains entity types and the participant metadata codec.
package domain

type (
	// RoomName identifies an ephemeral room on the media transport.
	// Rooms have no record of their own here; existence is inferred
	// from the transport's live participant list.
	RoomName string

	// Identity is a participant identity, unique within a room for the
	// lifetime of a session. Assigned at token mint time.
	Identity string
)
