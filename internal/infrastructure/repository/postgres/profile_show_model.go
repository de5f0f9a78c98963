package postgres

import (
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
)

var profileShowColumns = []string{
	"user_profile_show_id",
	"guid",
	"user_id",
	"all_user_show",
	"reg_user_show",
	"profile_spec_list_show",
	"gender_show",
	"birth_date_show",
	"registration_region_show",
	"education_level_show",
	"languages_show",
	"communication_show",
	"education_show",
	"work_experience_show",
	"rnd_show",
	"event_show",
	"prof_restriction_show",
	"created_at",
	"updated_at",
}

type profileShowTableModel struct {
	ID                     string    `db:"user_profile_show_id"`
	GUID                   string    `db:"guid"`
	UserID                 string    `db:"user_id"`
	AllUserShow            int       `db:"all_user_show"`
	RegUserShow            int       `db:"reg_user_show"`
	ProfileSpecListShow    int       `db:"profile_spec_list_show"`
	GenderShow             int       `db:"gender_show"`
	BirthDateShow          int       `db:"birth_date_show"`
	RegistrationRegionShow int       `db:"registration_region_show"`
	EducationLevelShow     int       `db:"education_level_show"`
	LanguagesShow          int       `db:"languages_show"`
	CommunicationShow      int       `db:"communication_show"`
	EducationShow          int       `db:"education_show"`
	WorkExperienceShow     int       `db:"work_experience_show"`
	RndShow                int       `db:"rnd_show"`
	EventShow              int       `db:"event_show"`
	ProfRestrictionShow    int       `db:"prof_restriction_show"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

func profileShowToRow(settings profileshow.Settings) profileShowTableModel {
	f := settings.Flags
	return profileShowTableModel{
		ID:                     settings.ID,
		GUID:                   settings.GUID,
		UserID:                 settings.UserID,
		AllUserShow:            f.AllUserShow,
		RegUserShow:            f.RegUserShow,
		ProfileSpecListShow:    f.ProfileSpecListShow,
		GenderShow:             f.GenderShow,
		BirthDateShow:          f.BirthDateShow,
		RegistrationRegionShow: f.RegistrationRegionShow,
		EducationLevelShow:     f.EducationLevelShow,
		LanguagesShow:          f.LanguagesShow,
		CommunicationShow:      f.CommunicationShow,
		EducationShow:          f.EducationShow,
		WorkExperienceShow:     f.WorkExperienceShow,
		RndShow:                f.RndShow,
		EventShow:              f.EventShow,
		ProfRestrictionShow:    f.ProfRestrictionShow,
	}
}

func profileShowFromRow(row profileShowTableModel) profileshow.Settings {
	return profileshow.Settings{
		ID:     row.ID,
		GUID:   row.GUID,
		UserID: row.UserID,
		Flags: profileshow.Flags{
			AllUserShow:            row.AllUserShow,
			RegUserShow:            row.RegUserShow,
			ProfileSpecListShow:    row.ProfileSpecListShow,
			GenderShow:             row.GenderShow,
			BirthDateShow:          row.BirthDateShow,
			RegistrationRegionShow: row.RegistrationRegionShow,
			EducationLevelShow:     row.EducationLevelShow,
			LanguagesShow:          row.LanguagesShow,
			CommunicationShow:      row.CommunicationShow,
			EducationShow:          row.EducationShow,
			WorkExperienceShow:     row.WorkExperienceShow,
			RndShow:                row.RndShow,
			EventShow:              row.EventShow,
			ProfRestrictionShow:    row.ProfRestrictionShow,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
