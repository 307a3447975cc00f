package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/app"
	"github.com/dkeye/greenroom/internal/core"
	"github.com/dkeye/greenroom/internal/domain"
)

// TokenIssuer mints session credentials.
type TokenIssuer interface {
	IssueToken(room domain.RoomName, participantName string, claims domain.StageMeta) (app.Credential, error)
}

// HostResolver answers whether a joining participant becomes host.
type HostResolver interface {
	ResolveHost(ctx context.Context, room domain.RoomName) (bool, error)
}

// StageUpdater applies a metadata patch to a connected participant.
type StageUpdater interface {
	UpdateParticipantMetadata(ctx context.Context, room domain.RoomName, identity domain.Identity, patch map[string]json.RawMessage) (domain.StageMeta, error)
}

type Handlers struct {
	Issuer   TokenIssuer
	Resolver HostResolver
	Stage    StageUpdater
}

func NewHandlers(issuer TokenIssuer, resolver HostResolver, stage StageUpdater) *Handlers {
	return &Handlers{Issuer: issuer, Resolver: resolver, Stage: stage}
}

type tokenRequest struct {
	RoomName        string `form:"roomName" json:"roomName"`
	ParticipantName string `form:"participantName" json:"participantName"`
	CheckHost       bool   `form:"checkHost" json:"checkHost"`
	IsHost          bool   `form:"isHost" json:"isHost"`
	OnStage         bool   `form:"onStage" json:"onStage"`
}

// Token serves both variants of the token endpoint: with checkHost=true it
// only answers the host-election question; otherwise it mints a credential
// carrying the claimed flags as initial metadata.
func (h *Handlers) Token(c *gin.Context) {
	var req tokenRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := domain.RoomName(req.RoomName)
	if req.CheckHost {
		if room == "" {
			writeError(c, core.NewValidationError("roomName"))
			return
		}
		isHost, err := h.Resolver.ResolveHost(c.Request.Context(), room)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"isHost": isHost})
		return
	}

	claims := domain.StageMeta{IsHost: req.IsHost, OnStage: req.OnStage}
	cred, err := h.Issuer.IssueToken(room, req.ParticipantName, claims)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cred)
}

type updateRequest struct {
	RoomName            string                     `json:"roomName"`
	ParticipantIdentity string                     `json:"participantIdentity"`
	Metadata            map[string]json.RawMessage `json:"metadata"`
}

// UpdateMetadata applies a stage-membership patch to one participant.
func (h *Handlers) UpdateMetadata(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Stage.UpdateParticipantMetadata(
		c.Request.Context(),
		domain.RoomName(req.RoomName),
		domain.Identity(req.ParticipantIdentity),
		req.Metadata,
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "greenroom"})
}

// writeError maps the error taxonomy to status codes: validation to 400,
// configuration and upstream failures to 500. Messages name missing fields
// or carry the upstream cause, never secret values.
func writeError(c *gin.Context, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	log.Error().Err(err).Str("module", "adapters.http").Str("request_id", c.GetString("request_id")).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
