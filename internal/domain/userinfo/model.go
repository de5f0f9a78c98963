package userinfo

import "time"

// Info is the per-user profile row owned by the wider platform. This service
// only reads it and toggles HaveProfExperience.
type Info struct {
	UserID             string
	HaveProfExperience bool
	UpdatedAt          time.Time
}
