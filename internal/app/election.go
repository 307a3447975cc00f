package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// HostResolver decides host election at join time: host is first-come,
// exactly one per room. Read-only; the caller encodes the result into the
// issued token's metadata.
type HostResolver struct {
	dir core.RoomDirectory
}

func NewHostResolver(dir core.RoomDirectory) *HostResolver {
	return &HostResolver{dir: dir}
}

// ResolveHost reports whether a participant joining roomName now would
// become host. A nonexistent room means the caller is first and wins. Any
// other membership-query failure propagates: an unreachable transport must
// not be mistaken for an empty room, or flakiness mints duplicate hosts.
//
// The decision is a point-in-time snapshot with no locking; two joins in
// the same window can both see "no host yet". Accepted as a known race.
func (r *HostResolver) ResolveHost(ctx context.Context, room domain.RoomName) (bool, error) {
	if strings.TrimSpace(string(room)) == "" {
		return false, core.NewValidationError("roomName")
	}

	participants, err := r.dir.ListParticipants(ctx, room)
	if errors.Is(err, core.ErrRoomNotFound) {
		log.Debug().Str("module", "app.election").Str("room", string(room)).Msg("room not found, caller becomes host")
		return true, nil
	}
	if err != nil {
		return false, err
	}

	hostTaken := lo.SomeBy(participants, func(p core.ParticipantSnapshot) bool {
		return domain.DecodeMeta(p.Metadata).IsHost
	})
	log.Debug().Str("module", "app.election").Str("room", string(room)).Int("participants", len(participants)).Bool("host_taken", hostTaken).Msg("resolved host")
	return !hostTaken, nil
}
