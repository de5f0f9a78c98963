package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
)

// advisoryLockQuery holds a transaction-scoped lock keyed by an arbitrary string.
const advisoryLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

type TxManager struct {
	db *sqlx.DB
}

var _ unitofwork.Manager = (*TxManager)(nil)

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Within(ctx context.Context, opts unitofwork.Options, fn func(ctx context.Context, stores unitofwork.Stores) error) error {
	tx, err := m.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if key := strings.TrimSpace(opts.LockKey); key != "" {
		if _, err := tx.ExecContext(ctx, advisoryLockQuery, key); err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
	}

	if err := fn(ctx, storesFor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func storesFor(db sqlx.ExtContext) unitofwork.Stores {
	return unitofwork.Stores{
		UserInfo:        NewUserInfoRepository(db),
		WorkExperiences: NewWorkExperienceRepository(db),
		Links:           NewLinkRepository(db),
		ProfileShow:     NewProfileShowRepository(db),
	}
}
