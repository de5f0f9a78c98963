package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

type LinkRepository struct {
	tx *txState
}

func (r *LinkRepository) ListSpecializationIDs(_ context.Context, workExperienceIDs []string) (map[string][]string, error) {
	wanted := toSet(workExperienceIDs)
	out := make(map[string][]string, len(wanted))
	for _, link := range r.tx.links {
		if _, ok := wanted[link.WorkExperienceID]; ok {
			out[link.WorkExperienceID] = append(out[link.WorkExperienceID], link.SpecializationID)
		}
	}
	return out, nil
}

func (r *LinkRepository) Insert(_ context.Context, link workexperience.SpecializationLink) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	if !r.tx.hasWork(link.WorkExperienceID) {
		return fmt.Errorf("insert link id=%s: work experience id=%s: %w", link.ID, link.WorkExperienceID, errForeignKey)
	}
	r.tx.links = append(r.tx.links, link)
	return nil
}

func (r *LinkRepository) DeleteByWorkExperienceIDs(_ context.Context, workExperienceIDs []string) (int64, error) {
	if err := r.tx.checkWritable(); err != nil {
		return 0, err
	}

	doomed := toSet(workExperienceIDs)
	kept := r.tx.links[:0]
	var deleted int64
	for _, link := range r.tx.links {
		if _, ok := doomed[link.WorkExperienceID]; ok {
			deleted++
			continue
		}
		kept = append(kept, link)
	}
	r.tx.links = kept
	return deleted, nil
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
