package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"replyloop.app/engine/internal/model"
)

type voiceProfileStore struct {
	q Querier
}

func (s *voiceProfileStore) GetByUser(ctx context.Context, userID int64) (*model.VoiceProfile, error) {
	row := s.q.QueryRow(ctx, `
		SELECT user_id, display_name, bio, tone, expertise, example_replies,
		       positioning, voice_attributes, avoid_patterns, sample_replies,
		       x_handle, x_bio, voice_confidence, updated_at
		FROM voice_profiles
		WHERE user_id = $1`, userID)

	profile, err := scanVoiceProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *voiceProfileStore) Upsert(ctx context.Context, profile *model.VoiceProfile) error {
	attrs, err := json.Marshal(profile.VoiceAttributes)
	if err != nil {
		return fmt.Errorf("marshal voice attributes: %w", err)
	}
	avoid := make([]string, len(profile.AvoidPatterns))
	for i, p := range profile.AvoidPatterns {
		avoid[i] = string(p)
	}

	row := s.q.QueryRow(ctx, `
		INSERT INTO voice_profiles (
			user_id, display_name, bio, tone, expertise, example_replies,
			positioning, voice_attributes, avoid_patterns, sample_replies,
			x_handle, x_bio, voice_confidence, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			tone = EXCLUDED.tone,
			expertise = EXCLUDED.expertise,
			example_replies = EXCLUDED.example_replies,
			positioning = EXCLUDED.positioning,
			voice_attributes = EXCLUDED.voice_attributes,
			avoid_patterns = EXCLUDED.avoid_patterns,
			sample_replies = EXCLUDED.sample_replies,
			x_handle = EXCLUDED.x_handle,
			x_bio = EXCLUDED.x_bio,
			voice_confidence = EXCLUDED.voice_confidence,
			updated_at = NOW()
		RETURNING user_id, display_name, bio, tone, expertise, example_replies,
		          positioning, voice_attributes, avoid_patterns, sample_replies,
		          x_handle, x_bio, voice_confidence, updated_at`,
		profile.UserID, profile.DisplayName, profile.Bio, profile.Tone,
		profile.Expertise, profile.ExampleReplies, profile.Positioning,
		attrs, avoid, profile.SampleReplies,
		profile.XHandle, profile.XBio, profile.VoiceConfidence)

	saved, err := scanVoiceProfile(row)
	if err != nil {
		return err
	}
	*profile = *saved
	return nil
}

func scanVoiceProfile(row pgx.Row) (*model.VoiceProfile, error) {
	var (
		profile model.VoiceProfile
		attrs   []byte
		avoid   []string
	)
	err := row.Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Bio,
		&profile.Tone,
		&profile.Expertise,
		&profile.ExampleReplies,
		&profile.Positioning,
		&attrs,
		&avoid,
		&profile.SampleReplies,
		&profile.XHandle,
		&profile.XBio,
		&profile.VoiceConfidence,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &profile.VoiceAttributes); err != nil {
			return nil, fmt.Errorf("unmarshal voice attributes: %w", err)
		}
	}
	profile.AvoidPatterns = make([]model.AvoidPattern, len(avoid))
	for i, p := range avoid {
		profile.AvoidPatterns[i] = model.AvoidPattern(p)
	}
	return &profile, nil
}
