// Package app implements the coordinator's decisions: token minting, host
// election, stage membership updates and client-side subscription sync.
package app

import (
	"strings"
	"time"

	"github.com/livekit/protocol/auth"

	"github.com/dkeye/greenroom/internal/config"
	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// Credential is a signed session token plus the transport endpoint the
// client should connect to. Immutable once issued; expires per its TTL.
type Credential struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// Issuer mints signed session credentials. Stateless.
type Issuer struct {
	host   string
	key    string
	secret string
	ttl    time.Duration
}

func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		host:   cfg.LiveKitHost,
		key:    cfg.LiveKitAPIKey,
		secret: cfg.LiveKitAPISecret,
		ttl:    cfg.TokenTTL,
	}
}

// IssueToken builds a credential binding the identity to the room with
// publish/subscribe/publish-data grants and the initial role metadata.
func (i *Issuer) IssueToken(room domain.RoomName, participantName string, claims domain.StageMeta) (Credential, error) {
	var missing []string
	if strings.TrimSpace(string(room)) == "" {
		missing = append(missing, "roomName")
	}
	if strings.TrimSpace(participantName) == "" {
		missing = append(missing, "participantName")
	}
	if len(missing) > 0 {
		return Credential{}, core.NewValidationError(missing...)
	}
	if i.key == "" || i.secret == "" {
		var keys []string
		if i.key == "" {
			keys = append(keys, config.EnvLiveKitAPIKey)
		}
		if i.secret == "" {
			keys = append(keys, config.EnvLiveKitAPISecret)
		}
		return Credential{}, &core.ConfigurationError{Keys: keys}
	}

	metadata, err := claims.Encode()
	if err != nil {
		return Credential{}, err
	}

	canPublish := true
	canSubscribe := true
	canPublishData := true
	grant := &auth.VideoGrant{
		RoomJoin:       true,
		Room:           string(room),
		CanPublish:     &canPublish,
		CanSubscribe:   &canSubscribe,
		CanPublishData: &canPublishData,
	}

	at := auth.NewAccessToken(i.key, i.secret).
		SetVideoGrant(grant).
		SetIdentity(participantName).
		SetName(participantName).
		SetMetadata(metadata).
		SetValidFor(i.ttl)

	token, err := at.ToJWT()
	if err != nil {
		return Credential{}, err
	}
	return Credential{Token: token, URL: i.host}, nil
}
