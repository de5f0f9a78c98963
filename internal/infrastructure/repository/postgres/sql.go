package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const (
	userInfoTable       = "users.user_info"
	workExperienceTable = "users.user_work_experience"
	workExpLinkTable    = "users.user_work_experience_profile"
	profileShowTable    = "users.user_profile_show"

	uniqueViolationCode = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: trimmed, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

func nullableDate(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	y, m, d := value.Date()
	return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func datePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	y, m, d := value.Time.Date()
	out := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &out
}
