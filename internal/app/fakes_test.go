package app

import (
	"context"

	"github.com/livekit/protocol/livekit"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// fakeDirectory serves canned snapshots and counts calls.
type fakeDirectory struct {
	participants []core.ParticipantSnapshot
	listErr      error
	getErr       error
	listCalls    int
	getCalls     int
}

func (f *fakeDirectory) ListParticipants(_ context.Context, _ domain.RoomName) ([]core.ParticipantSnapshot, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.participants, nil
}

func (f *fakeDirectory) GetParticipant(_ context.Context, _ domain.RoomName, identity domain.Identity) (core.ParticipantSnapshot, error) {
	f.getCalls++
	if f.getErr != nil {
		return core.ParticipantSnapshot{}, f.getErr
	}
	for _, p := range f.participants {
		if p.Identity == identity {
			return p, nil
		}
	}
	return core.ParticipantSnapshot{}, core.ErrRoomNotFound
}

// fakeAdmin records the last replacement document it was handed.
type fakeAdmin struct {
	updateErr   error
	updateCalls int
	lastRoom    domain.RoomName
	lastIdent   domain.Identity
	lastMeta    string
}

func (f *fakeAdmin) UpdateMetadata(_ context.Context, room domain.RoomName, identity domain.Identity, metadata string) (core.ParticipantSnapshot, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return core.ParticipantSnapshot{}, f.updateErr
	}
	f.lastRoom = room
	f.lastIdent = identity
	f.lastMeta = metadata
	return core.ParticipantSnapshot{Identity: identity, Metadata: metadata}, nil
}

// fakeTrack is one remote publication with toggle accounting.
type fakeTrack struct {
	source     livekit.TrackSource
	subscribed bool
	setErr     error
	setCalls   int
}

func (f *fakeTrack) Source() livekit.TrackSource { return f.source }
func (f *fakeTrack) IsSubscribed() bool          { return f.subscribed }

func (f *fakeTrack) SetSubscribed(subscribed bool) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.subscribed = subscribed
	return nil
}

// fakePeer is a remote participant with mutable metadata.
type fakePeer struct {
	identity domain.Identity
	metadata string
	tracks   []*fakeTrack
}

func (f *fakePeer) Identity() domain.Identity { return f.identity }
func (f *fakePeer) Metadata() string          { return f.metadata }

func (f *fakePeer) Publications() []core.TrackHandle {
	out := make([]core.TrackHandle, 0, len(f.tracks))
	for _, t := range f.tracks {
		out = append(out, t)
	}
	return out
}
