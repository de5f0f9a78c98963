package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

type WorkExperienceRepository struct {
	db sqlx.ExtContext
}

func NewWorkExperienceRepository(db sqlx.ExtContext) *WorkExperienceRepository {
	return &WorkExperienceRepository{db: db}
}

func (r *WorkExperienceRepository) ListByUserID(ctx context.Context, userID string) ([]workexperience.WorkExperience, error) {
	query, args, err := psql.Select(workExperienceColumns...).
		From(workExperienceTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("row_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list work experience query: %w", err)
	}

	var rows []workExperienceTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list work experience: %w", err)
	}

	out := make([]workexperience.WorkExperience, 0, len(rows))
	for _, row := range rows {
		out = append(out, workExperienceFromRow(row))
	}
	return out, nil
}

func (r *WorkExperienceRepository) GetByID(ctx context.Context, id string) (workexperience.WorkExperience, bool, error) {
	query, args, err := psql.Select(workExperienceColumns...).
		From(workExperienceTable).
		Where(sq.Eq{"user_work_exp_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return workexperience.WorkExperience{}, false, fmt.Errorf("build get work experience query: %w", err)
	}

	var row workExperienceTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return workexperience.WorkExperience{}, false, nil
		}
		return workexperience.WorkExperience{}, false, fmt.Errorf("get work experience: %w", err)
	}

	return workExperienceFromRow(row), true, nil
}

func (r *WorkExperienceRepository) Insert(ctx context.Context, item workexperience.WorkExperience) error {
	values := editableWorkExperienceColumns(item)
	values["user_work_exp_id"] = item.ID
	values["guid"] = item.GUID
	values["user_id"] = item.UserID

	query, args, err := psql.Insert(workExperienceTable).
		SetMap(values).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert work experience query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert work experience: %w", err)
	}
	return nil
}

func (r *WorkExperienceRepository) Update(ctx context.Context, item workexperience.WorkExperience) (bool, error) {
	query, args, err := psql.Update(workExperienceTable).
		SetMap(editableWorkExperienceColumns(item)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_work_exp_id": item.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update work experience query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("update work experience: %w", err)
	}
	return affected > 0, nil
}

func (r *WorkExperienceRepository) DeleteAllByUserID(ctx context.Context, userID string) (int64, error) {
	query, args, err := psql.Delete(workExperienceTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete work experience query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("delete work experience: %w", err)
	}
	return affected, nil
}

func (r *WorkExperienceRepository) DeleteOne(ctx context.Context, userID, id string) (bool, error) {
	query, args, err := psql.Delete(workExperienceTable).
		Where(sq.Eq{"user_work_exp_id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete one work experience query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return false, fmt.Errorf("delete one work experience: %w", err)
	}
	return affected > 0, nil
}

func execAffected(ctx context.Context, db sqlx.ExecerContext, query string, args []any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
