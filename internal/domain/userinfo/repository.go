package userinfo

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Info, bool, error)
	Update(ctx context.Context, info Info) error
}
