// Package voice models how confidently the system knows a user's writing
// style. The confidence score is the single control variable for how much
// personalization detail the reply generator injects.
package voice

import "replyloop.app/engine/internal/model"

// Point weights per contributing field. Attribute and sample-reply points are
// capped so no single section dominates; the final score clamps to [0,100].
const (
	displayNamePoints = 8
	bioPoints         = 10
	tonePoints        = 7
	positioningPoints = 10

	attributePoints = 5
	attributeCap    = 25

	avoidPatternPoints = 5
	xHandlePoints      = 5
	xBioPoints         = 5

	sampleReplyPoints = 5
	sampleReplyCap    = 20
)

// Prompt tier thresholds. Tier 1 unlocks positioning, style guidance, and the
// never-use clause; tier 2 unlocks few-shot exemplars.
const (
	Tier1Threshold = 31
	Tier2Threshold = 71
)

// ComputeConfidence derives the 0-100 voice confidence from profile contents.
// Monotonic: filling any previously-empty field never lowers the result.
func ComputeConfidence(p model.VoiceProfile) int {
	points := 0

	if p.DisplayName != "" {
		points += displayNamePoints
	}
	if p.Bio != "" {
		points += bioPoints
	}
	if p.Tone != "" {
		points += tonePoints
	}
	if p.Positioning != nil && *p.Positioning != "" {
		points += positioningPoints
	}

	attrPoints := 0
	for _, level := range p.VoiceAttributes {
		if level != "" {
			attrPoints += attributePoints
		}
	}
	if attrPoints > attributeCap {
		attrPoints = attributeCap
	}
	points += attrPoints

	if len(p.AvoidPatterns) > 0 {
		points += avoidPatternPoints
	}
	if p.XHandle != "" {
		points += xHandlePoints
	}
	if p.XBio != "" {
		points += xBioPoints
	}

	samplePoints := sampleReplyPoints * len(p.SampleReplies)
	if samplePoints > sampleReplyCap {
		samplePoints = sampleReplyCap
	}
	points += samplePoints

	if points > 100 {
		points = 100
	}
	if points < 0 {
		points = 0
	}
	return points
}

// Tier maps a confidence value to its prompt tier (0, 1, or 2).
func Tier(confidence int) int {
	switch {
	case confidence >= Tier2Threshold:
		return 2
	case confidence >= Tier1Threshold:
		return 1
	default:
		return 0
	}
}
