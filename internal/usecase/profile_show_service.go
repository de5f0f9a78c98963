package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	idgen "github.com/riskibarqy/hr-profile/internal/platform/id"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
)

// FlagPatch carries the visibility flags of an update. Nil fields keep the
// stored value.
type FlagPatch struct {
	AllUserShow            *int
	RegUserShow            *int
	ProfileSpecListShow    *int
	GenderShow             *int
	BirthDateShow          *int
	RegistrationRegionShow *int
	EducationLevelShow     *int
	LanguagesShow          *int
	CommunicationShow      *int
	EducationShow          *int
	WorkExperienceShow     *int
	RndShow                *int
	EventShow              *int
	ProfRestrictionShow    *int
}

func (p FlagPatch) apply(base profileshow.Flags) profileshow.Flags {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	set(&base.AllUserShow, p.AllUserShow)
	set(&base.RegUserShow, p.RegUserShow)
	set(&base.ProfileSpecListShow, p.ProfileSpecListShow)
	set(&base.GenderShow, p.GenderShow)
	set(&base.BirthDateShow, p.BirthDateShow)
	set(&base.RegistrationRegionShow, p.RegistrationRegionShow)
	set(&base.EducationLevelShow, p.EducationLevelShow)
	set(&base.LanguagesShow, p.LanguagesShow)
	set(&base.CommunicationShow, p.CommunicationShow)
	set(&base.EducationShow, p.EducationShow)
	set(&base.WorkExperienceShow, p.WorkExperienceShow)
	set(&base.RndShow, p.RndShow)
	set(&base.EventShow, p.EventShow)
	set(&base.ProfRestrictionShow, p.ProfRestrictionShow)
	return base
}

type UpdateProfileShowInput struct {
	UserID        string
	ProfileShowID string
	Flags         FlagPatch
}

type ProfileShowService struct {
	tx     unitofwork.Manager
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewProfileShowService(tx unitofwork.Manager, idGen idgen.Generator, logger *logging.Logger) *ProfileShowService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileShowService{
		tx:     tx,
		idGen:  idGen,
		logger: logger,
	}
}

// Get returns the visibility settings of a user, creating the all-hidden
// default row on first access.
func (s *ProfileShowService) Get(ctx context.Context, userID string) (settings profileshow.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileShowService.Get", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profileshow.Settings{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	created := false
	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		item, exists, err := stores.ProfileShow.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("%w: get profile show: %w", ErrPersistence, err)
		}
		if exists {
			settings = item
			return nil
		}

		settings, err = s.createDefault(ctx, stores, userID)
		created = err == nil
		return err
	})
	if err != nil {
		return profileshow.Settings{}, err
	}

	if created {
		s.logger.InfoContext(ctx, "default profile show created", "user_id", userID)
	}
	return settings, nil
}

// Update writes the given flags for a user. The supplied id must match the
// stored row when one exists. Flags left nil keep their stored value, or 0
// when the row is new.
func (s *ProfileShowService) Update(ctx context.Context, input UpdateProfileShowInput) (settings profileshow.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileShowService.Update", input.UserID)
	defer func() { endSpan(span, err) }()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ProfileShowID = strings.TrimSpace(input.ProfileShowID)
	if input.UserID == "" {
		return profileshow.Settings{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.ProfileShowID == "" {
		return profileshow.Settings{}, fmt.Errorf("%w: user_profile_show_id is required", ErrInvalidInput)
	}
	if err := input.Flags.apply(profileshow.HiddenFlags()).Validate(); err != nil {
		return profileshow.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(input.UserID), func(ctx context.Context, stores unitofwork.Stores) error {
		existing, exists, err := stores.ProfileShow.GetByUserID(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("%w: get profile show: %w", ErrPersistence, err)
		}

		next := existing
		if exists {
			if existing.ID != input.ProfileShowID {
				return fmt.Errorf("%w: user_profile_show_id does not match the stored settings", ErrInvalidInput)
			}
		} else {
			next, err = s.newSettings(input.UserID)
			if err != nil {
				return err
			}
		}
		next.Flags = input.Flags.apply(next.Flags)

		if err := stores.ProfileShow.Upsert(ctx, next); err != nil {
			return fmt.Errorf("%w: upsert profile show: %w", ErrPersistence, err)
		}

		saved, found, err := stores.ProfileShow.GetByUserID(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("%w: reload profile show: %w", ErrPersistence, err)
		}
		if !found {
			return fmt.Errorf("%w: profile show vanished after upsert", ErrPersistence)
		}
		settings = saved
		return nil
	})
	if err != nil {
		return profileshow.Settings{}, err
	}

	s.logger.InfoContext(ctx, "profile show updated", "user_id", input.UserID, "user_profile_show_id", settings.ID)
	return settings, nil
}

// CreateDefault inserts the all-hidden row for a user. It fails with
// ErrAlreadyExists when the user already has settings.
func (s *ProfileShowService) CreateDefault(ctx context.Context, userID string) (settings profileshow.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileShowService.CreateDefault", userID)
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profileshow.Settings{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	err = s.tx.Within(ctx, unitofwork.ForUser(userID), func(ctx context.Context, stores unitofwork.Stores) error {
		var err error
		settings, err = s.createDefault(ctx, stores, userID)
		return err
	})
	if err != nil {
		return profileshow.Settings{}, err
	}

	return settings, nil
}

// EnsureDefault creates the default row unless one exists and reports
// whether it did.
func (s *ProfileShowService) EnsureDefault(ctx context.Context, userID string) (bool, error) {
	_, err := s.CreateDefault(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrAlreadyExists):
		return false, nil
	default:
		return false, err
	}
}

func (s *ProfileShowService) createDefault(ctx context.Context, stores unitofwork.Stores, userID string) (profileshow.Settings, error) {
	settings, err := s.newSettings(userID)
	if err != nil {
		return profileshow.Settings{}, err
	}

	if err := stores.ProfileShow.Create(ctx, settings); err != nil {
		if errors.Is(err, profileshow.ErrAlreadyExists) {
			return profileshow.Settings{}, fmt.Errorf("%w: profile show for user=%s", ErrAlreadyExists, userID)
		}
		return profileshow.Settings{}, fmt.Errorf("%w: create profile show: %w", ErrPersistence, err)
	}

	saved, found, err := stores.ProfileShow.GetByUserID(ctx, userID)
	if err != nil {
		return profileshow.Settings{}, fmt.Errorf("%w: reload profile show: %w", ErrPersistence, err)
	}
	if !found {
		return profileshow.Settings{}, fmt.Errorf("%w: profile show missing after create", ErrPersistence)
	}
	return saved, nil
}

func (s *ProfileShowService) newSettings(userID string) (profileshow.Settings, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return profileshow.Settings{}, fmt.Errorf("generate profile show id: %w", err)
	}
	guid, err := s.idGen.NewID()
	if err != nil {
		return profileshow.Settings{}, fmt.Errorf("generate profile show guid: %w", err)
	}

	return profileshow.Settings{
		ID:     id,
		GUID:   guid,
		UserID: userID,
		Flags:  profileshow.HiddenFlags(),
	}, nil
}
