package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// Synchronizer keeps local video subscriptions for every tracked remote
// participant in line with their onStage metadata flag. Purely reactive:
// it never writes metadata, and applying it with unchanged metadata is a
// no-op. Malformed metadata decodes to onStage=false, so the failure mode
// is "not subscribed" rather than unwanted bandwidth.
type Synchronizer struct {
	policy SubscriptionPolicy

	mu    sync.Mutex
	peers map[domain.Identity]core.RemotePeer
}

func NewSynchronizer(policy SubscriptionPolicy) *Synchronizer {
	return &Synchronizer{
		policy: policy,
		peers:  make(map[domain.Identity]core.RemotePeer),
	}
}

// Track registers a newly discovered or newly joined participant and
// applies their current metadata immediately.
func (s *Synchronizer) Track(peer core.RemotePeer) {
	s.mu.Lock()
	s.peers[peer.Identity()] = peer
	s.mu.Unlock()
	s.apply(peer)
}

// Refresh re-applies subscription state after a metadata-changed event.
// An unknown peer is registered on the way through.
func (s *Synchronizer) Refresh(peer core.RemotePeer) {
	s.mu.Lock()
	if _, ok := s.peers[peer.Identity()]; !ok {
		s.peers[peer.Identity()] = peer
	}
	s.mu.Unlock()
	s.apply(peer)
}

// Untrack drops a disconnected participant. The transport tears down the
// participant's tracks itself, so there is nothing else to undo.
func (s *Synchronizer) Untrack(identity domain.Identity) {
	s.mu.Lock()
	delete(s.peers, identity)
	s.mu.Unlock()
	log.Debug().Str("module", "app.sync").Str("identity", string(identity)).Msg("untracked peer")
}

// Tracked reports how many peers are currently registered.
func (s *Synchronizer) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

func (s *Synchronizer) apply(peer core.RemotePeer) {
	meta := domain.DecodeMeta(peer.Metadata())
	for _, pub := range peer.Publications() {
		want, applies := s.policy.Desired(meta, pub.Source())
		if !applies || want == pub.IsSubscribed() {
			continue
		}
		if err := pub.SetSubscribed(want); err != nil {
			log.Warn().Err(err).Str("module", "app.sync").Str("identity", string(peer.Identity())).Bool("want", want).Msg("subscription toggle failed")
			continue
		}
		log.Debug().Str("module", "app.sync").Str("identity", string(peer.Identity())).Bool("subscribed", want).Msg("subscription updated")
	}
}
