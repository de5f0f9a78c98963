package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
)

type userInfoTableModel struct {
	UserID             string    `db:"user_id"`
	HaveProfExperience bool      `db:"have_prof_experience"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type UserInfoRepository struct {
	db sqlx.ExtContext
}

func NewUserInfoRepository(db sqlx.ExtContext) *UserInfoRepository {
	return &UserInfoRepository{db: db}
}

func (r *UserInfoRepository) GetByUserID(ctx context.Context, userID string) (userinfo.Info, bool, error) {
	query, args, err := psql.Select("user_id", "have_prof_experience", "updated_at").
		From(userInfoTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return userinfo.Info{}, false, fmt.Errorf("build get user info query: %w", err)
	}

	var row userInfoTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return userinfo.Info{}, false, nil
		}
		return userinfo.Info{}, false, fmt.Errorf("get user info: %w", err)
	}

	return userinfo.Info{
		UserID:             row.UserID,
		HaveProfExperience: row.HaveProfExperience,
		UpdatedAt:          row.UpdatedAt,
	}, true, nil
}

func (r *UserInfoRepository) Update(ctx context.Context, info userinfo.Info) error {
	query, args, err := psql.Update(userInfoTable).
		Set("have_prof_experience", info.HaveProfExperience).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": info.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user info query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user info rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user info user=%s: no row", info.UserID)
	}
	return nil
}
