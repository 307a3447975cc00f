package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

func TestStageService_UpdateParticipantMetadata(t *testing.T) {
	ctx := context.Background()
	patch := map[string]json.RawMessage{"onStage": json.RawMessage("true")}

	t.Run("should merge the patch over current metadata and submit the full document", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{participants: []core.ParticipantSnapshot{
			{Identity: "user123", Metadata: `{"isHost":true,"onStage":false,"avatar":"a.png"}`},
		}}
		admin := &fakeAdmin{}
		svc := NewStageService(dir, admin)

		updated, err := svc.UpdateParticipantMetadata(ctx, "test-room", "user123", patch)

		req.NoError(err)
		req.True(updated.IsHost, "isHost must survive an onStage patch")
		req.True(updated.OnStage)
		req.Equal(1, admin.updateCalls)
		req.JSONEq(`{"isHost":true,"onStage":true,"avatar":"a.png"}`, admin.lastMeta)
	})

	t.Run("should reject missing fields without touching upstream", func(t *testing.T) {
		cases := []struct {
			name     string
			room     string
			identity string
			patch    map[string]json.RawMessage
			fields   []string
		}{
			{"no room", "", "user123", patch, []string{"roomName"}},
			{"no identity", "test-room", "", patch, []string{"participantIdentity"}},
			{"no metadata", "test-room", "user123", nil, []string{"metadata"}},
			{"nothing at all", "", "", nil, []string{"roomName", "participantIdentity", "metadata"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := require.New(t)
				dir := &fakeDirectory{}
				admin := &fakeAdmin{}
				svc := NewStageService(dir, admin)

				_, err := svc.UpdateParticipantMetadata(ctx,
					domain.RoomName(tc.room), domain.Identity(tc.identity), tc.patch)

				var verr *core.ValidationError
				req.ErrorAs(err, &verr)
				req.Equal(tc.fields, verr.Fields)
				req.Zero(dir.getCalls)
				req.Zero(admin.updateCalls)
			})
		}
	})

	t.Run("should surface upstream failure on the write", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{participants: []core.ParticipantSnapshot{
			{Identity: "user123", Metadata: "{}"},
		}}
		outage := &core.UpstreamError{Op: "update participant", Err: errors.New("twirp 503")}
		admin := &fakeAdmin{updateErr: outage}
		svc := NewStageService(dir, admin)

		_, err := svc.UpdateParticipantMetadata(ctx, "test-room", "user123", patch)

		req.ErrorIs(err, outage)
	})

	t.Run("should surface failure reading the current document", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{getErr: &core.UpstreamError{Op: "get participant", Err: errors.New("gone")}}
		admin := &fakeAdmin{}
		svc := NewStageService(dir, admin)

		_, err := svc.UpdateParticipantMetadata(ctx, "test-room", "user123", patch)

		req.Error(err)
		req.Zero(admin.updateCalls)
	})
}
