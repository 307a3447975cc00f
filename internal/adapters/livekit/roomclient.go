// Package livekit adapts the LiveKit server SDK to the coordinator's
// transport seams.
package livekit

import (
	"context"
	"errors"
	"fmt"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/twitchtv/twirp"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// RoomClient talks to the LiveKit room admin API.
type RoomClient struct {
	svc *lksdk.RoomServiceClient
}

var (
	_ core.RoomDirectory    = (*RoomClient)(nil)
	_ core.ParticipantAdmin = (*RoomClient)(nil)
)

func NewRoomClient(host, apiKey, apiSecret string) *RoomClient {
	return &RoomClient{svc: lksdk.NewRoomServiceClient(host, apiKey, apiSecret)}
}

func (c *RoomClient) ListParticipants(ctx context.Context, room domain.RoomName) ([]core.ParticipantSnapshot, error) {
	resp, err := c.svc.ListParticipants(ctx, &livekit.ListParticipantsRequest{
		Room: string(room),
	})
	if err != nil {
		return nil, mapErr("list participants", err)
	}
	out := make([]core.ParticipantSnapshot, 0, len(resp.Participants))
	for _, p := range resp.Participants {
		out = append(out, snapshot(p))
	}
	return out, nil
}

func (c *RoomClient) GetParticipant(ctx context.Context, room domain.RoomName, identity domain.Identity) (core.ParticipantSnapshot, error) {
	p, err := c.svc.GetParticipant(ctx, &livekit.RoomParticipantIdentity{
		Room:     string(room),
		Identity: string(identity),
	})
	if err != nil {
		return core.ParticipantSnapshot{}, mapErr("get participant", err)
	}
	return snapshot(p), nil
}

func (c *RoomClient) UpdateMetadata(ctx context.Context, room domain.RoomName, identity domain.Identity, metadata string) (core.ParticipantSnapshot, error) {
	p, err := c.svc.UpdateParticipant(ctx, &livekit.UpdateParticipantRequest{
		Room:     string(room),
		Identity: string(identity),
		Metadata: metadata,
	})
	if err != nil {
		return core.ParticipantSnapshot{}, mapErr("update participant", err)
	}
	return snapshot(p), nil
}

func snapshot(p *livekit.ParticipantInfo) core.ParticipantSnapshot {
	return core.ParticipantSnapshot{
		Identity: domain.Identity(p.Identity),
		Name:     p.Name,
		Metadata: p.Metadata,
	}
}

// mapErr separates "room/participant does not exist" from everything else.
// The admin API speaks twirp, so not-found arrives as a twirp error code.
func mapErr(op string, err error) error {
	var twerr twirp.Error
	if errors.As(err, &twerr) && twerr.Code() == twirp.NotFound {
		return fmt.Errorf("%s: %w", op, core.ErrRoomNotFound)
	}
	return &core.UpstreamError{Op: op, Err: err}
}
