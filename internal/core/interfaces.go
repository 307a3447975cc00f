// Package core holds the interfaces the coordinator consumes the media
// transport through. The transport itself (connection, publish/subscribe,
// track delivery) lives behind these seams and is never reimplemented here.
package core

import (
	"context"

	"github.com/dkeye/greenroom/internal/domain"
)

// ParticipantSnapshot is a point-in-time read model of one connected
// participant, as reported by the transport's admin API.
type ParticipantSnapshot struct {
	Identity domain.Identity
	Name     string
	Metadata string
}

// RoomDirectory reads live room membership.
// ListParticipants must return ErrRoomNotFound (possibly wrapped) when the
// room does not exist, so callers can tell "empty room" from "outage".
type RoomDirectory interface {
	ListParticipants(ctx context.Context, room domain.RoomName) ([]ParticipantSnapshot, error)
	GetParticipant(ctx context.Context, room domain.RoomName, identity domain.Identity) (ParticipantSnapshot, error)
}

// ParticipantAdmin replaces a participant's metadata document wholesale via
// the transport's administrative API. The transport then broadcasts a
// metadata-changed event to every connected client in the room.
type ParticipantAdmin interface {
	UpdateMetadata(ctx context.Context, room domain.RoomName, identity domain.Identity, metadata string) (ParticipantSnapshot, error)
}
