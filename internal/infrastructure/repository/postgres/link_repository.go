package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

type linkTableModel struct {
	WorkExperienceID string `db:"user_work_exp_id"`
	SpecializationID string `db:"r_experience_prof_id"`
}

type LinkRepository struct {
	db sqlx.ExtContext
}

func NewLinkRepository(db sqlx.ExtContext) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) ListSpecializationIDs(ctx context.Context, workExperienceIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(workExperienceIDs))
	if len(workExperienceIDs) == 0 {
		return out, nil
	}

	query, args, err := psql.Select("user_work_exp_id", "r_experience_prof_id").
		From(workExpLinkTable).
		Where(sq.Eq{"user_work_exp_id": workExperienceIDs}).
		OrderBy("row_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list specialization links query: %w", err)
	}

	var rows []linkTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list specialization links: %w", err)
	}

	for _, row := range rows {
		out[row.WorkExperienceID] = append(out[row.WorkExperienceID], row.SpecializationID)
	}
	return out, nil
}

func (r *LinkRepository) Insert(ctx context.Context, link workexperience.SpecializationLink) error {
	query, args, err := psql.Insert(workExpLinkTable).
		Columns("user_work_exp_prof_id", "guid", "user_work_exp_id", "r_experience_prof_id").
		Values(link.ID, link.GUID, link.WorkExperienceID, link.SpecializationID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert specialization link query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert specialization link: %w", err)
	}
	return nil
}

func (r *LinkRepository) DeleteByWorkExperienceIDs(ctx context.Context, workExperienceIDs []string) (int64, error) {
	if len(workExperienceIDs) == 0 {
		return 0, nil
	}

	query, args, err := psql.Delete(workExpLinkTable).
		Where(sq.Eq{"user_work_exp_id": workExperienceIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete specialization links query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args)
	if err != nil {
		return 0, fmt.Errorf("delete specialization links: %w", err)
	}
	return affected, nil
}
