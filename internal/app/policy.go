package app

import (
	"github.com/livekit/protocol/livekit"

	"github.com/dkeye/greenroom/internal/domain"
)

// SubscriptionPolicy decides the desired subscription state for one remote
// track. applies is false for tracks the synchronizer must never touch.
type SubscriptionPolicy interface {
	Desired(meta domain.StageMeta, source livekit.TrackSource) (want, applies bool)
}

// StagePolicy follows the onStage flag for camera and screen-share video.
// Audio and unknown sources are left alone.
type StagePolicy struct{}

func (StagePolicy) Desired(meta domain.StageMeta, source livekit.TrackSource) (bool, bool) {
	switch source {
	case livekit.TrackSource_CAMERA, livekit.TrackSource_SCREEN_SHARE:
		return meta.OnStage, true
	}
	return false, false
}
