package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/greenroom/internal/core"
)

func TestHostResolver_ResolveHost(t *testing.T) {
	ctx := context.Background()

	t.Run("should elect the first participant when the room does not exist", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{listErr: fmt.Errorf("list participants: %w", core.ErrRoomNotFound)}

		isHost, err := NewHostResolver(dir).ResolveHost(ctx, "test-room")

		req.NoError(err)
		req.True(isHost)
	})

	t.Run("should elect when the room exists but has no host", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{participants: []core.ParticipantSnapshot{
			{Identity: "viewer", Metadata: `{"isHost":false,"onStage":false}`},
			{Identity: "anon", Metadata: ""},
		}}

		isHost, err := NewHostResolver(dir).ResolveHost(ctx, "test-room")

		req.NoError(err)
		req.True(isHost)
	})

	t.Run("should not elect when a host is already present", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{participants: []core.ParticipantSnapshot{
			{Identity: "user123", Metadata: `{"isHost":true,"onStage":true}`},
		}}

		isHost, err := NewHostResolver(dir).ResolveHost(ctx, "test-room")

		req.NoError(err)
		req.False(isHost)
	})

	t.Run("should ignore malformed metadata when scanning for a host", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{participants: []core.ParticipantSnapshot{
			{Identity: "broken", Metadata: "{not json"},
		}}

		isHost, err := NewHostResolver(dir).ResolveHost(ctx, "test-room")

		req.NoError(err)
		req.True(isHost)
	})

	t.Run("should propagate upstream failures instead of defaulting to host", func(t *testing.T) {
		req := require.New(t)
		outage := &core.UpstreamError{Op: "list participants", Err: errors.New("connection refused")}
		dir := &fakeDirectory{listErr: outage}

		isHost, err := NewHostResolver(dir).ResolveHost(ctx, "test-room")

		req.ErrorIs(err, outage)
		req.False(isHost)
	})

	t.Run("should reject a blank room name without calling upstream", func(t *testing.T) {
		req := require.New(t)
		dir := &fakeDirectory{}

		_, err := NewHostResolver(dir).ResolveHost(ctx, "  ")

		var verr *core.ValidationError
		req.ErrorAs(err, &verr)
		req.Zero(dir.listCalls)
	})
}
