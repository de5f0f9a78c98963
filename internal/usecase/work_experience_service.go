package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
	idgen "github.com/riskibarqy/hr-profile/internal/platform/id"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
)

type WorkExperienceService struct {
	tx     unitofwork.Manager
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewWorkExperienceService(tx unitofwork.Manager, idGen idgen.Generator, logger *logging.Logger) *WorkExperienceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WorkExperienceService{
		tx:     tx,
		idGen:  idGen,
		logger: logger,
	}
}

// ReplaceAllForUser swaps the whole work history of a user in one transaction:
// the professional-experience flag is updated, existing rows and their links
// are removed, and every entry is inserted together with its specialization links.
func (s *WorkExperienceService) ReplaceAllForUser(ctx context.Context, userID string, entries []workexperience.Entry, hasProfessionalExperience bool) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.ReplaceAllForUser", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	prepared, err := s.prepareReplaceEntries(userID, entries)
	if err != nil {
		return err
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		info, err := requireUserInfo(ctx, stores, userID)
		if err != nil {
			return err
		}
		info.HaveProfExperience = hasProfessionalExperience
		if err := stores.UserInfo.Update(ctx, info); err != nil {
			return fmt.Errorf("update professional experience flag: %w", err)
		}

		if err := deleteAllWorkExperiences(ctx, stores, userID); err != nil {
			return err
		}

		for _, entry := range prepared {
			// The user's own rows are gone by now, so any hit belongs to someone else.
			if _, taken, err := stores.WorkExperiences.GetByID(ctx, entry.ID); err != nil {
				return fmt.Errorf("get work experience id=%s: %w", entry.ID, err)
			} else if taken {
				return fmt.Errorf("%w: work experience id=%s belongs to another user", ErrInvalidInput, entry.ID)
			}
			if err := stores.WorkExperiences.Insert(ctx, entry.WorkExperience); err != nil {
				return fmt.Errorf("insert work experience id=%s: %w", entry.ID, err)
			}
			if err := s.insertLinks(ctx, stores, entry.ID, entry.SpecializationIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrapOrchestration(err, "replace work experience for user=%s", userID)
	}

	s.logger.InfoContext(ctx, "work experience replaced",
		"user_id", userID,
		"entries", len(prepared),
		"has_professional_experience", hasProfessionalExperience,
	)
	return nil
}

// GetWorkHistoryWithSpecializations returns the professional-experience flag
// and every work experience of the user with its specialization ids.
func (s *WorkExperienceService) GetWorkHistoryWithSpecializations(ctx context.Context, userID string) (history workexperience.History, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.GetWorkHistoryWithSpecializations", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return workexperience.History{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	err = s.tx.Within(ctx, unitofwork.ReadOnly(), func(ctx context.Context, stores unitofwork.Stores) error {
		info, err := requireUserInfo(ctx, stores, userID)
		if err != nil {
			return err
		}

		entries, err := listEntries(ctx, stores, userID)
		if err != nil {
			return err
		}
		history = workexperience.History{
			HavingWorkExperience: info.HaveProfExperience,
			PlacesOfWork:         entries,
		}
		return nil
	})
	if err != nil {
		return workexperience.History{}, wrapOrchestration(err, "get work history for user=%s", userID)
	}

	return history, nil
}

// ListAllForUser returns the work experiences of a user with their
// specialization ids, in storage order.
func (s *WorkExperienceService) ListAllForUser(ctx context.Context, userID string) (entries []workexperience.Entry, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.ListAllForUser", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	err = s.tx.Within(ctx, unitofwork.ReadOnly(), func(ctx context.Context, stores unitofwork.Stores) error {
		var err error
		entries, err = listEntries(ctx, stores, userID)
		return err
	})
	if err != nil {
		return nil, wrapOrchestration(err, "list work experience for user=%s", userID)
	}

	return entries, nil
}

// DeleteAllForUser removes every work experience of the user along with
// their specialization links.
func (s *WorkExperienceService) DeleteAllForUser(ctx context.Context, userID string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.DeleteAllForUser", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		return deleteAllWorkExperiences(ctx, stores, userID)
	})
	if err != nil {
		return wrapOrchestration(err, "delete all work experience for user=%s", userID)
	}

	s.logger.InfoContext(ctx, "work experience deleted", "user_id", userID)
	return nil
}

// BulkAdd inserts every entry as a new row and returns the user's full list.
// Specialization ids on the entries are not linked here.
func (s *WorkExperienceService) BulkAdd(ctx context.Context, entries []workexperience.Entry) (items []workexperience.Entry, err error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one work experience is required", ErrInvalidInput)
	}

	userID := strings.TrimSpace(entries[0].UserID)
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.BulkAdd", userID)
	defer func() { endSpan(span, err) }()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	rows := make([]workexperience.WorkExperience, 0, len(entries))
	for i, entry := range entries {
		row := normalizeWorkExperience(entry.WorkExperience)
		if row.UserID != userID {
			return nil, fmt.Errorf("%w: entry %d belongs to user=%s, expected user=%s", ErrInvalidInput, i, row.UserID, userID)
		}
		if err := row.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
		rows = append(rows, row)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		if _, err := requireUserInfo(ctx, stores, userID); err != nil {
			return err
		}
		for _, row := range rows {
			if err := s.assignIdentity(&row, true); err != nil {
				return err
			}
			if err := stores.WorkExperiences.Insert(ctx, row); err != nil {
				return fmt.Errorf("insert work experience id=%s: %w", row.ID, err)
			}
		}

		var err error
		items, err = listEntries(ctx, stores, userID)
		return err
	})
	if err != nil {
		return nil, wrapOrchestration(err, "bulk add work experience for user=%s", userID)
	}

	s.logger.InfoContext(ctx, "work experience added", "user_id", userID, "entries", len(rows))
	return items, nil
}

// BulkUpdate updates entries that carry an id and inserts those that do not,
// then returns the user's full list. Ids owned by another user or missing
// from storage fail the whole batch with ErrNotFound.
func (s *WorkExperienceService) BulkUpdate(ctx context.Context, userID string, entries []workexperience.Entry) (items []workexperience.Entry, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.BulkUpdate", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one work experience is required", ErrInvalidInput)
	}

	rows := make([]workexperience.WorkExperience, 0, len(entries))
	for i, entry := range entries {
		row := normalizeWorkExperience(entry.WorkExperience)
		row.UserID = userID
		if err := row.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
		rows = append(rows, row)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		checkedUser := false
		for _, row := range rows {
			if row.ID == "" {
				if !checkedUser {
					if _, err := requireUserInfo(ctx, stores, userID); err != nil {
						return err
					}
					checkedUser = true
				}
				if err := s.assignIdentity(&row, true); err != nil {
					return err
				}
				if err := stores.WorkExperiences.Insert(ctx, row); err != nil {
					return fmt.Errorf("insert work experience id=%s: %w", row.ID, err)
				}
				continue
			}

			if err := ensureOwned(ctx, stores, userID, row.ID); err != nil {
				return err
			}
			updated, err := stores.WorkExperiences.Update(ctx, row)
			if err != nil {
				return fmt.Errorf("update work experience id=%s: %w", row.ID, err)
			}
			if !updated {
				return fmt.Errorf("%w: work experience id=%s", ErrNotFound, row.ID)
			}
		}

		var err error
		items, err = listEntries(ctx, stores, userID)
		return err
	})
	if err != nil {
		return nil, wrapOrchestration(err, "bulk update work experience for user=%s", userID)
	}

	s.logger.InfoContext(ctx, "work experience updated", "user_id", userID, "entries", len(rows))
	return items, nil
}

// DeleteOneAndReturnList removes a single work experience of the user with
// its links and returns what remains.
func (s *WorkExperienceService) DeleteOneAndReturnList(ctx context.Context, userID, workExperienceID string) (items []workexperience.Entry, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WorkExperienceService.DeleteOneAndReturnList", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	workExperienceID = strings.TrimSpace(workExperienceID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if workExperienceID == "" {
		return nil, fmt.Errorf("%w: user_work_exp_id is required", ErrInvalidInput)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		if err := ensureOwned(ctx, stores, userID, workExperienceID); err != nil {
			return err
		}
		if _, err := stores.Links.DeleteByWorkExperienceIDs(ctx, []string{workExperienceID}); err != nil {
			return fmt.Errorf("delete specialization links: %w", err)
		}
		deleted, err := stores.WorkExperiences.DeleteOne(ctx, userID, workExperienceID)
		if err != nil {
			return fmt.Errorf("delete work experience id=%s: %w", workExperienceID, err)
		}
		if !deleted {
			return fmt.Errorf("%w: work experience id=%s", ErrNotFound, workExperienceID)
		}

		items, err = listEntries(ctx, stores, userID)
		return err
	})
	if err != nil {
		return nil, wrapOrchestration(err, "delete work experience id=%s for user=%s", workExperienceID, userID)
	}

	s.logger.InfoContext(ctx, "work experience removed", "user_id", userID, "user_work_exp_id", workExperienceID)
	return items, nil
}

func (s *WorkExperienceService) prepareReplaceEntries(userID string, entries []workexperience.Entry) ([]workexperience.Entry, error) {
	out := make([]workexperience.Entry, 0, len(entries))
	seenIDs := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		row := normalizeWorkExperience(entry.WorkExperience)
		row.UserID = userID
		if err := row.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
		if err := s.assignIdentity(&row, false); err != nil {
			return nil, err
		}
		if _, ok := seenIDs[row.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate work experience id=%s", ErrInvalidInput, row.ID)
		}
		seenIDs[row.ID] = struct{}{}

		specIDs, err := workexperience.CleanSpecializationIDs(entry.SpecializationIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
		out = append(out, workexperience.Entry{WorkExperience: row, SpecializationIDs: specIDs})
	}
	return out, nil
}

// assignIdentity fills ID and GUID. With fresh set, any caller-provided
// values are replaced.
func (s *WorkExperienceService) assignIdentity(row *workexperience.WorkExperience, fresh bool) error {
	if fresh || row.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate work experience id: %w", err)
		}
		row.ID = id
	}
	if fresh || row.GUID == "" {
		guid, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate work experience guid: %w", err)
		}
		row.GUID = guid
	}
	return nil
}

func (s *WorkExperienceService) insertLinks(ctx context.Context, stores unitofwork.Stores, workExperienceID string, specializationIDs []string) error {
	for _, specID := range specializationIDs {
		linkID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate specialization link id: %w", err)
		}
		linkGUID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate specialization link guid: %w", err)
		}

		link := workexperience.SpecializationLink{
			ID:               linkID,
			GUID:             linkGUID,
			WorkExperienceID: workExperienceID,
			SpecializationID: specID,
		}
		if err := stores.Links.Insert(ctx, link); err != nil {
			return fmt.Errorf("insert specialization link work_exp=%s spec=%s: %w", workExperienceID, specID, err)
		}
	}
	return nil
}

func requireUserInfo(ctx context.Context, stores unitofwork.Stores, userID string) (userinfo.Info, error) {
	info, exists, err := stores.UserInfo.GetByUserID(ctx, userID)
	if err != nil {
		return userinfo.Info{}, fmt.Errorf("get user info: %w", err)
	}
	if !exists {
		return userinfo.Info{}, fmt.Errorf("%w: user info for user=%s", ErrNotFound, userID)
	}
	return info, nil
}

func deleteAllWorkExperiences(ctx context.Context, stores unitofwork.Stores, userID string) error {
	existing, err := stores.WorkExperiences.ListByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("list work experience: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}

	if _, err := stores.Links.DeleteByWorkExperienceIDs(ctx, workexperience.IDs(existing)); err != nil {
		return fmt.Errorf("delete specialization links: %w", err)
	}
	if _, err := stores.WorkExperiences.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete work experience: %w", err)
	}
	return nil
}

func listEntries(ctx context.Context, stores unitofwork.Stores, userID string) ([]workexperience.Entry, error) {
	rows, err := stores.WorkExperiences.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list work experience: %w", err)
	}

	links, err := stores.Links.ListSpecializationIDs(ctx, workexperience.IDs(rows))
	if err != nil {
		return nil, fmt.Errorf("list specialization links: %w", err)
	}

	out := make([]workexperience.Entry, 0, len(rows))
	for _, row := range rows {
		specIDs := links[row.ID]
		if specIDs == nil {
			specIDs = []string{}
		}
		out = append(out, workexperience.Entry{WorkExperience: row, SpecializationIDs: specIDs})
	}
	return out, nil
}

func ensureOwned(ctx context.Context, stores unitofwork.Stores, userID, workExperienceID string) error {
	existing, exists, err := stores.WorkExperiences.GetByID(ctx, workExperienceID)
	if err != nil {
		return fmt.Errorf("get work experience id=%s: %w", workExperienceID, err)
	}
	if !exists || existing.UserID != userID {
		return fmt.Errorf("%w: work experience id=%s", ErrNotFound, workExperienceID)
	}
	return nil
}

func normalizeWorkExperience(row workexperience.WorkExperience) workexperience.WorkExperience {
	row.ID = strings.TrimSpace(row.ID)
	row.GUID = strings.TrimSpace(row.GUID)
	row.UserID = strings.TrimSpace(row.UserID)
	row.OrgName = strings.TrimSpace(row.OrgName)
	row.Position = trimOptional(row.Position)
	row.Description = trimOptional(row.Description)
	return row
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
