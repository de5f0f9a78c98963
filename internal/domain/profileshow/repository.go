package profileshow

import (
	"context"
	"errors"
)

var ErrAlreadyExists = errors.New("profile show settings already exist")

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Settings, bool, error)
	// Upsert creates the user's row when absent, otherwise overwrites every flag
	// in place. ID and GUID are only used on create.
	Upsert(ctx context.Context, settings Settings) error
	// Create inserts a new row and fails with ErrAlreadyExists when the user
	// already has one.
	Create(ctx context.Context, settings Settings) error
}
