package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
)

// profileShowFlagColumns are every column except identity and timestamps.
var profileShowFlagColumns = profileShowColumns[3 : len(profileShowColumns)-2]

var upsertProfileShowQuery = buildUpsertProfileShowQuery()

type ProfileShowRepository struct {
	db sqlx.ExtContext
}

func NewProfileShowRepository(db sqlx.ExtContext) *ProfileShowRepository {
	return &ProfileShowRepository{db: db}
}

func (r *ProfileShowRepository) GetByUserID(ctx context.Context, userID string) (profileshow.Settings, bool, error) {
	query, args, err := psql.Select(profileShowColumns...).
		From(profileShowTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return profileshow.Settings{}, false, fmt.Errorf("build get profile show query: %w", err)
	}

	var row profileShowTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profileshow.Settings{}, false, nil
		}
		return profileshow.Settings{}, false, fmt.Errorf("get profile show: %w", err)
	}

	return profileShowFromRow(row), true, nil
}

func (r *ProfileShowRepository) Upsert(ctx context.Context, settings profileshow.Settings) error {
	query, args, err := sqlx.Named(upsertProfileShowQuery, profileShowToRow(settings))
	if err != nil {
		return fmt.Errorf("build upsert profile show query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert profile show: %w", err)
	}
	return nil
}

func (r *ProfileShowRepository) Create(ctx context.Context, settings profileshow.Settings) error {
	row := profileShowToRow(settings)
	query, args, err := psql.Insert(profileShowTable).
		Columns(profileShowColumns[:len(profileShowColumns)-2]...).
		Values(profileShowInsertValues(row)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create profile show query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return profileshow.ErrAlreadyExists
		}
		return fmt.Errorf("create profile show: %w", err)
	}
	return nil
}

func profileShowInsertValues(row profileShowTableModel) []any {
	return []any{
		row.ID, row.GUID, row.UserID,
		row.AllUserShow, row.RegUserShow, row.ProfileSpecListShow, row.GenderShow,
		row.BirthDateShow, row.RegistrationRegionShow, row.EducationLevelShow, row.LanguagesShow,
		row.CommunicationShow, row.EducationShow, row.WorkExperienceShow, row.RndShow,
		row.EventShow, row.ProfRestrictionShow,
	}
}

func buildUpsertProfileShowQuery() string {
	insertColumns := profileShowColumns[:len(profileShowColumns)-2]
	named := make([]string, 0, len(insertColumns))
	for _, column := range insertColumns {
		named = append(named, ":"+column)
	}
	updates := make([]string, 0, len(profileShowFlagColumns)+1)
	for _, column := range profileShowFlagColumns {
		updates = append(updates, column+" = EXCLUDED."+column)
	}
	updates = append(updates, "updated_at = NOW()")

	return "INSERT INTO " + profileShowTable + " (" + strings.Join(insertColumns, ", ") + ")" +
		" VALUES (" + strings.Join(named, ", ") + ")" +
		" ON CONFLICT (user_id) DO UPDATE SET " + strings.Join(updates, ", ")
}
