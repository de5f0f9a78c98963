package profileshow

import (
	"fmt"
	"time"
)

// Flags holds the per-field visibility switches. Every value is 0 (hidden) or 1 (shown).
type Flags struct {
	AllUserShow            int
	RegUserShow            int
	ProfileSpecListShow    int
	GenderShow             int
	BirthDateShow          int
	RegistrationRegionShow int
	EducationLevelShow     int
	LanguagesShow          int
	CommunicationShow      int
	EducationShow          int
	WorkExperienceShow     int
	RndShow                int
	EventShow              int
	ProfRestrictionShow    int
}

// Settings is the single visibility row of a user.
type Settings struct {
	ID        string
	GUID      string
	UserID    string
	Flags     Flags
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HiddenFlags returns flags with every field hidden.
func HiddenFlags() Flags {
	return Flags{}
}

// Named returns the flags keyed by their column name.
func (f Flags) Named() map[string]int {
	return map[string]int{
		"all_user_show":            f.AllUserShow,
		"reg_user_show":            f.RegUserShow,
		"profile_spec_list_show":   f.ProfileSpecListShow,
		"gender_show":              f.GenderShow,
		"birth_date_show":          f.BirthDateShow,
		"registration_region_show": f.RegistrationRegionShow,
		"education_level_show":     f.EducationLevelShow,
		"languages_show":           f.LanguagesShow,
		"communication_show":       f.CommunicationShow,
		"education_show":           f.EducationShow,
		"work_experience_show":     f.WorkExperienceShow,
		"rnd_show":                 f.RndShow,
		"event_show":               f.EventShow,
		"prof_restriction_show":    f.ProfRestrictionShow,
	}
}

func (f Flags) Validate() error {
	for name, value := range f.Named() {
		if value != 0 && value != 1 {
			return fmt.Errorf("%s must be 0 or 1, got %d", name, value)
		}
	}
	return nil
}
