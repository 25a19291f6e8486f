package model

import "time"

// StyleDimension is one axis of a user's writing voice. The set is closed:
// profile updates reject anything outside these eight dimensions.
type StyleDimension string

const (
	DimensionFormality    StyleDimension = "formality"
	DimensionHumor        StyleDimension = "humor"
	DimensionEnergy       StyleDimension = "energy"
	DimensionDirectness   StyleDimension = "directness"
	DimensionTechnicality StyleDimension = "technicality"
	DimensionWarmth       StyleDimension = "warmth"
	DimensionBrevity      StyleDimension = "brevity"
	DimensionConviction   StyleDimension = "conviction"
)

// StyleLevel is the configured value for a style dimension. Each dimension
// accepts four named levels; the valid levels per dimension live in the voice
// package alongside the guidance text they map to.
type StyleLevel string

// AvoidPattern is a named anti-pattern the user never wants in drafted replies.
type AvoidPattern string

const (
	AvoidHypeWords         AvoidPattern = "hype_words"
	AvoidGenericAgreement  AvoidPattern = "generic_agreement"
	AvoidEmojis            AvoidPattern = "emojis"
	AvoidHashtags          AvoidPattern = "hashtags"
	AvoidSelfPromotion     AvoidPattern = "self_promotion"
	AvoidCorporateJargon   AvoidPattern = "corporate_jargon"
	AvoidUnsolicitedAdvice AvoidPattern = "unsolicited_advice"
)

// VoiceProfile captures how a user writes. It starts as coarse free-text
// fields and accretes structured signal (attributes, avoid patterns, real
// sample replies) as the user fills it in. VoiceConfidence is derived; it is
// recomputed by voice.ComputeConfidence on every profile save and never set
// directly.
type VoiceProfile struct {
	UserID         int64
	DisplayName    string
	Bio            string
	Tone           string
	Expertise      string
	ExampleReplies string // legacy free-text examples, superseded by SampleReplies
	Positioning    *string

	VoiceAttributes map[StyleDimension]StyleLevel
	AvoidPatterns   []AvoidPattern
	SampleReplies   []string // real authored replies, ordered, used as few-shot exemplars

	XHandle string
	XBio    string

	VoiceConfidence int // derived, 0..100
	UpdatedAt       time.Time
}

// HasBio reports whether the profile carries enough signal to drive reply
// generation at all. The ranker skips draft generation entirely without it.
func (p VoiceProfile) HasBio() bool {
	return p.Bio != ""
}
