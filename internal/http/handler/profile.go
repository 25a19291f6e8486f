package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"replyloop.app/engine/internal/http/dto"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/store"
	"replyloop.app/engine/internal/voice"
)

type ProfileHandler struct {
	profiles store.VoiceProfileStore
}

func NewProfileHandler(profiles store.VoiceProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.profiles.GetByUser(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// Update replaces the profile wholesale and recomputes voice confidence.
// Confidence is never accepted from the client.
func (h *ProfileHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attrs := make(map[model.StyleDimension]model.StyleLevel, len(req.Attributes))
	for dim, level := range req.Attributes {
		attrs[model.StyleDimension(dim)] = model.StyleLevel(level)
	}
	if err := voice.ValidateAttributes(attrs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patterns := make([]model.AvoidPattern, len(req.AvoidPatterns))
	for i, p := range req.AvoidPatterns {
		patterns[i] = model.AvoidPattern(p)
	}
	if err := voice.ValidateAvoidPatterns(patterns); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := model.VoiceProfile{
		UserID:          middleware.UserID(c),
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		Tone:            req.Tone,
		Expertise:       req.Expertise,
		ExampleReplies:  req.ExampleReplies,
		Positioning:     req.Positioning,
		VoiceAttributes: attrs,
		AvoidPatterns:   patterns,
		SampleReplies:   req.SampleReplies,
		XHandle:         req.XHandle,
		XBio:            req.XBio,
	}
	profile.VoiceConfidence = voice.ComputeConfidence(profile)

	if err := h.profiles.Upsert(ctx, &profile); err != nil {
		slog.ErrorContext(ctx, "failed to save profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	slog.InfoContext(ctx, "profile updated", "voice_confidence", profile.VoiceConfidence)
	c.JSON(http.StatusOK, dto.ToProfileResponse(&profile))
}
