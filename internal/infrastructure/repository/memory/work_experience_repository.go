package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

type WorkExperienceRepository struct {
	tx *txState
}

func (r *WorkExperienceRepository) ListByUserID(_ context.Context, userID string) ([]workexperience.WorkExperience, error) {
	out := make([]workexperience.WorkExperience, 0)
	for _, w := range r.tx.works {
		if w.UserID == userID {
			out = append(out, cloneWorkExperience(w))
		}
	}
	return out, nil
}

func (r *WorkExperienceRepository) GetByID(_ context.Context, id string) (workexperience.WorkExperience, bool, error) {
	for _, w := range r.tx.works {
		if w.ID == id {
			return cloneWorkExperience(w), true, nil
		}
	}
	return workexperience.WorkExperience{}, false, nil
}

func (r *WorkExperienceRepository) Insert(_ context.Context, item workexperience.WorkExperience) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	if _, ok := r.tx.userInfos[item.UserID]; !ok {
		return fmt.Errorf("insert work experience id=%s: user=%s: %w", item.ID, item.UserID, errForeignKey)
	}
	if r.tx.hasWork(item.ID) {
		return fmt.Errorf("insert work experience id=%s: duplicate primary key", item.ID)
	}

	now := r.tx.now().UTC()
	item = cloneWorkExperience(item)
	item.CreatedAt = now
	item.UpdatedAt = now
	r.tx.works = append(r.tx.works, item)
	return nil
}

func (r *WorkExperienceRepository) Update(_ context.Context, item workexperience.WorkExperience) (bool, error) {
	if err := r.tx.checkWritable(); err != nil {
		return false, err
	}

	for i, w := range r.tx.works {
		if w.ID != item.ID {
			continue
		}
		w.OrgName = item.OrgName
		w.Position = cloneString(item.Position)
		w.Description = cloneString(item.Description)
		w.BeginDate = cloneTime(item.BeginDate)
		w.EndDate = cloneTime(item.EndDate)
		w.IsWorkContinues = item.IsWorkContinues
		w.ShowRowInfo = item.ShowRowInfo
		w.UpdatedAt = r.tx.now().UTC()
		r.tx.works[i] = w
		return true, nil
	}
	return false, nil
}

func (r *WorkExperienceRepository) DeleteAllByUserID(_ context.Context, userID string) (int64, error) {
	if err := r.tx.checkWritable(); err != nil {
		return 0, err
	}

	kept := r.tx.works[:0]
	var deleted int64
	for _, w := range r.tx.works {
		if w.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, w)
	}
	r.tx.works = kept
	return deleted, nil
}

func (r *WorkExperienceRepository) DeleteOne(_ context.Context, userID, id string) (bool, error) {
	if err := r.tx.checkWritable(); err != nil {
		return false, err
	}

	for i, w := range r.tx.works {
		if w.ID == id && w.UserID == userID {
			r.tx.works = append(r.tx.works[:i], r.tx.works[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
