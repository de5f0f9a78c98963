package memory

import (
	"context"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
)

type ProfileShowRepository struct {
	tx *txState
}

func (r *ProfileShowRepository) GetByUserID(_ context.Context, userID string) (profileshow.Settings, bool, error) {
	item, ok := r.tx.profileShows[userID]
	return item, ok, nil
}

func (r *ProfileShowRepository) Upsert(_ context.Context, settings profileshow.Settings) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}

	now := r.tx.now().UTC()
	existing, ok := r.tx.profileShows[settings.UserID]
	if !ok {
		settings.CreatedAt = now
		settings.UpdatedAt = now
		r.tx.profileShows[settings.UserID] = settings
		return nil
	}

	existing.Flags = settings.Flags
	existing.UpdatedAt = now
	r.tx.profileShows[settings.UserID] = existing
	return nil
}

func (r *ProfileShowRepository) Create(_ context.Context, settings profileshow.Settings) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.tx.profileShows[settings.UserID]; ok {
		return profileshow.ErrAlreadyExists
	}

	now := r.tx.now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now
	r.tx.profileShows[settings.UserID] = settings
	return nil
}
