package core

import (
	"github.com/livekit/protocol/livekit"

	"github.com/dkeye/greenroom/internal/domain"
)

// TrackHandle is one remote track publication as seen by a connected client.
// Owned by the transport SDK; the synchronizer only flips subscription state.
type TrackHandle interface {
	Source() livekit.TrackSource
	IsSubscribed() bool
	SetSubscribed(subscribed bool) error
}

// RemotePeer is the synchronizer's view of a remote participant.
type RemotePeer interface {
	Identity() domain.Identity
	Metadata() string
	Publications() []TrackHandle
}
