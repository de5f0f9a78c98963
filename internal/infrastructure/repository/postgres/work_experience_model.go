package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

var workExperienceColumns = []string{
	"user_work_exp_id",
	"guid",
	"user_id",
	"org_name",
	"description",
	"position",
	"work_begin_date",
	"work_end_date",
	"is_work_continues",
	"show_row_info",
	"created_at",
	"updated_at",
}

type workExperienceTableModel struct {
	ID              string         `db:"user_work_exp_id"`
	GUID            string         `db:"guid"`
	UserID          string         `db:"user_id"`
	OrgName         string         `db:"org_name"`
	Description     sql.NullString `db:"description"`
	Position        sql.NullString `db:"position"`
	BeginDate       sql.NullTime   `db:"work_begin_date"`
	EndDate         sql.NullTime   `db:"work_end_date"`
	IsWorkContinues bool           `db:"is_work_continues"`
	ShowRowInfo     bool           `db:"show_row_info"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func workExperienceFromRow(row workExperienceTableModel) workexperience.WorkExperience {
	return workexperience.WorkExperience{
		ID:              row.ID,
		GUID:            row.GUID,
		UserID:          row.UserID,
		OrgName:         row.OrgName,
		Description:     stringPtr(row.Description),
		Position:        stringPtr(row.Position),
		BeginDate:       datePtr(row.BeginDate),
		EndDate:         datePtr(row.EndDate),
		IsWorkContinues: row.IsWorkContinues,
		ShowRowInfo:     row.ShowRowInfo,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// editableWorkExperienceColumns lists the columns a bulk update may overwrite.
func editableWorkExperienceColumns(item workexperience.WorkExperience) map[string]any {
	return map[string]any{
		"org_name":          item.OrgName,
		"description":       nullableString(item.Description),
		"position":          nullableString(item.Position),
		"work_begin_date":   nullableDate(item.BeginDate),
		"work_end_date":     nullableDate(item.EndDate),
		"is_work_continues": item.IsWorkContinues,
		"show_row_info":     item.ShowRowInfo,
	}
}
