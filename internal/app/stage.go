package app

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// StageService mutates a participant's metadata document through the
// transport's admin API. The transport's copy is the single source of
// truth; there is no database behind this.
type StageService struct {
	dir   core.RoomDirectory
	admin core.ParticipantAdmin

	mu    sync.Mutex
	locks map[domain.Identity]*sync.Mutex
}

func NewStageService(dir core.RoomDirectory, admin core.ParticipantAdmin) *StageService {
	return &StageService{
		dir:   dir,
		admin: admin,
		locks: make(map[domain.Identity]*sync.Mutex),
	}
}

// UpdateParticipantMetadata merges patch over the participant's current
// metadata and submits the full replacement document. The read-modify-write
// is serialized per identity within this process so two local writers cannot
// clobber each other's fields; concurrent writes from other processes can
// still race (last write wins, no version check on the transport side).
func (s *StageService) UpdateParticipantMetadata(
	ctx context.Context,
	room domain.RoomName,
	identity domain.Identity,
	patch map[string]json.RawMessage,
) (domain.StageMeta, error) {
	var missing []string
	if strings.TrimSpace(string(room)) == "" {
		missing = append(missing, "roomName")
	}
	if strings.TrimSpace(string(identity)) == "" {
		missing = append(missing, "participantIdentity")
	}
	if patch == nil {
		missing = append(missing, "metadata")
	}
	if len(missing) > 0 {
		return domain.StageMeta{}, core.NewValidationError(missing...)
	}

	lock := s.lockFor(identity)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.dir.GetParticipant(ctx, room, identity)
	if err != nil {
		return domain.StageMeta{}, err
	}

	merged := domain.DecodeMeta(current.Metadata).Merge(patch)
	encoded, err := merged.Encode()
	if err != nil {
		return domain.StageMeta{}, err
	}

	updated, err := s.admin.UpdateMetadata(ctx, room, identity, encoded)
	if err != nil {
		return domain.StageMeta{}, err
	}
	log.Info().Str("module", "app.stage").Str("room", string(room)).Str("identity", string(identity)).Bool("on_stage", merged.OnStage).Msg("metadata updated")
	return domain.DecodeMeta(updated.Metadata), nil
}

func (s *StageService) lockFor(identity domain.Identity) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[identity]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[identity] = l
	return l
}
