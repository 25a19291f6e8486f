package dto

import (
	"time"

	"replyloop.app/engine/internal/model"
)

type UpdateProfileRequest struct {
	DisplayName    string            `json:"display_name" binding:"max=255"`
	Bio            string            `json:"bio" binding:"max=2000"`
	Tone           string            `json:"tone" binding:"max=500"`
	Expertise      string            `json:"expertise" binding:"max=1000"`
	ExampleReplies string            `json:"example_replies" binding:"max=5000"`
	Positioning    *string           `json:"positioning,omitempty" binding:"omitempty,max=1000"`
	Attributes     map[string]string `json:"voice_attributes,omitempty"`
	AvoidPatterns  []string          `json:"avoid_patterns,omitempty"`
	SampleReplies  []string          `json:"sample_replies,omitempty" binding:"omitempty,max=20,dive,max=500"`
	XHandle        string            `json:"x_handle" binding:"max=50"`
	XBio           string            `json:"x_bio" binding:"max=500"`
}

type ProfileResponse struct {
	DisplayName     string            `json:"display_name"`
	Bio             string            `json:"bio"`
	Tone            string            `json:"tone"`
	Expertise       string            `json:"expertise"`
	ExampleReplies  string            `json:"example_replies"`
	Positioning     *string           `json:"positioning,omitempty"`
	Attributes      map[string]string `json:"voice_attributes,omitempty"`
	AvoidPatterns   []string          `json:"avoid_patterns,omitempty"`
	SampleReplies   []string          `json:"sample_replies,omitempty"`
	XHandle         string            `json:"x_handle"`
	XBio            string            `json:"x_bio"`
	VoiceConfidence int               `json:"voice_confidence"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func ToProfileResponse(p *model.VoiceProfile) *ProfileResponse {
	var attrs map[string]string
	if len(p.VoiceAttributes) > 0 {
		attrs = make(map[string]string, len(p.VoiceAttributes))
		for dim, level := range p.VoiceAttributes {
			attrs[string(dim)] = string(level)
		}
	}
	var avoid []string
	for _, pattern := range p.AvoidPatterns {
		avoid = append(avoid, string(pattern))
	}

	return &ProfileResponse{
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		Tone:            p.Tone,
		Expertise:       p.Expertise,
		ExampleReplies:  p.ExampleReplies,
		Positioning:     p.Positioning,
		Attributes:      attrs,
		AvoidPatterns:   avoid,
		SampleReplies:   p.SampleReplies,
		XHandle:         p.XHandle,
		XBio:            p.XBio,
		VoiceConfidence: p.VoiceConfidence,
		UpdatedAt:       p.UpdatedAt,
	}
}
