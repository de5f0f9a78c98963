package workexperience

import (
	"fmt"
	"strings"
	"time"
)

// WorkExperience is one employment record of a user.
type WorkExperience struct {
	ID              string
	GUID            string
	UserID          string
	OrgName         string
	Description     *string
	Position        *string
	BeginDate       *time.Time
	EndDate         *time.Time
	IsWorkContinues bool
	ShowRowInfo     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SpecializationLink joins a work experience row to a specialization record.
type SpecializationLink struct {
	ID               string
	GUID             string
	WorkExperienceID string
	SpecializationID string
}

// Entry is a work experience row together with its linked specialization ids.
// It is both the write payload of a replace and the read view of a history.
type Entry struct {
	WorkExperience
	SpecializationIDs []string
}

// History is the full work history of one user.
type History struct {
	HavingWorkExperience bool
	PlacesOfWork         []Entry
}

func (w WorkExperience) ValidateBasic() error {
	if strings.TrimSpace(w.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(w.OrgName) == "" {
		return fmt.Errorf("organization name is required")
	}
	if w.BeginDate != nil && w.EndDate != nil && w.EndDate.Before(*w.BeginDate) {
		return fmt.Errorf("work end date %s is before begin date %s",
			w.EndDate.Format(time.DateOnly), w.BeginDate.Format(time.DateOnly))
	}

	return nil
}

// IDs returns the identifiers of the given rows in order.
func IDs(items []WorkExperience) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

// CleanSpecializationIDs trims and de-duplicates ids, keeping first-seen order.
func CleanSpecializationIDs(ids []string) ([]string, error) {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("specialization id cannot be empty")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
