package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
	"github.com/riskibarqy/hr-profile/internal/usecase"
)

type profileShowDTO struct {
	UserProfileShowID      string    `json:"user_profile_show_id"`
	GUID                   string    `json:"guid"`
	UserID                 string    `json:"user_id"`
	AllUserShow            int       `json:"all_user_show"`
	RegUserShow            int       `json:"reg_user_show"`
	ProfileSpecListShow    int       `json:"profile_spec_list_show"`
	GenderShow             int       `json:"gender_show"`
	BirthDateShow          int       `json:"birth_date_show"`
	RegistrationRegionShow int       `json:"registration_region_show"`
	EducationLevelShow     int       `json:"education_level_show"`
	LanguagesShow          int       `json:"languages_show"`
	CommunicationShow      int       `json:"communication_show"`
	EducationShow          int       `json:"education_show"`
	WorkExperienceShow     int       `json:"work_experience_show"`
	RndShow                int       `json:"rnd_show"`
	EventShow              int       `json:"event_show"`
	ProfRestrictionShow    int       `json:"prof_restriction_show"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// profileShowUpdateRequest carries optional flags; a nil flag keeps the stored value.
type profileShowUpdateRequest struct {
	UserProfileShowID      string `json:"user_profile_show_id" validate:"required,max=64"`
	AllUserShow            *int   `json:"all_user_show" validate:"omitempty,oneof=0 1"`
	RegUserShow            *int   `json:"reg_user_show" validate:"omitempty,oneof=0 1"`
	ProfileSpecListShow    *int   `json:"profile_spec_list_show" validate:"omitempty,oneof=0 1"`
	GenderShow             *int   `json:"gender_show" validate:"omitempty,oneof=0 1"`
	BirthDateShow          *int   `json:"birth_date_show" validate:"omitempty,oneof=0 1"`
	RegistrationRegionShow *int   `json:"registration_region_show" validate:"omitempty,oneof=0 1"`
	EducationLevelShow     *int   `json:"education_level_show" validate:"omitempty,oneof=0 1"`
	LanguagesShow          *int   `json:"languages_show" validate:"omitempty,oneof=0 1"`
	CommunicationShow      *int   `json:"communication_show" validate:"omitempty,oneof=0 1"`
	EducationShow          *int   `json:"education_show" validate:"omitempty,oneof=0 1"`
	WorkExperienceShow     *int   `json:"work_experience_show" validate:"omitempty,oneof=0 1"`
	RndShow                *int   `json:"rnd_show" validate:"omitempty,oneof=0 1"`
	EventShow              *int   `json:"event_show" validate:"omitempty,oneof=0 1"`
	ProfRestrictionShow    *int   `json:"prof_restriction_show" validate:"omitempty,oneof=0 1"`
}

func (h *Handler) GetProfileShow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfileShow")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.profileShowService.Get(ctx, principal.UserID)
	if err != nil {
		h.logFailure(ctx, "get profile show failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileShowToDTO(settings))
}

func (h *Handler) UpdateProfileShow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProfileShow")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req profileShowUpdateRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.profileShowService.Update(ctx, usecase.UpdateProfileShowInput{
		UserID:        principal.UserID,
		ProfileShowID: req.UserProfileShowID,
		Flags: usecase.FlagPatch{
			AllUserShow:            req.AllUserShow,
			RegUserShow:            req.RegUserShow,
			ProfileSpecListShow:    req.ProfileSpecListShow,
			GenderShow:             req.GenderShow,
			BirthDateShow:          req.BirthDateShow,
			RegistrationRegionShow: req.RegistrationRegionShow,
			EducationLevelShow:     req.EducationLevelShow,
			LanguagesShow:          req.LanguagesShow,
			CommunicationShow:      req.CommunicationShow,
			EducationShow:          req.EducationShow,
			WorkExperienceShow:     req.WorkExperienceShow,
			RndShow:                req.RndShow,
			EventShow:              req.EventShow,
			ProfRestrictionShow:    req.ProfRestrictionShow,
		},
	})
	if err != nil {
		h.logFailure(ctx, "update profile show failed", err, "user_id", principal.UserID, "user_profile_show_id", req.UserProfileShowID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileShowToDTO(settings))
}

func profileShowToDTO(s profileshow.Settings) profileShowDTO {
	return profileShowDTO{
		UserProfileShowID:      s.ID,
		GUID:                   s.GUID,
		UserID:                 s.UserID,
		AllUserShow:            s.Flags.AllUserShow,
		RegUserShow:            s.Flags.RegUserShow,
		ProfileSpecListShow:    s.Flags.ProfileSpecListShow,
		GenderShow:             s.Flags.GenderShow,
		BirthDateShow:          s.Flags.BirthDateShow,
		RegistrationRegionShow: s.Flags.RegistrationRegionShow,
		EducationLevelShow:     s.Flags.EducationLevelShow,
		LanguagesShow:          s.Flags.LanguagesShow,
		CommunicationShow:      s.Flags.CommunicationShow,
		EducationShow:          s.Flags.EducationShow,
		WorkExperienceShow:     s.Flags.WorkExperienceShow,
		RndShow:                s.Flags.RndShow,
		EventShow:              s.Flags.EventShow,
		ProfRestrictionShow:    s.Flags.ProfRestrictionShow,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}
