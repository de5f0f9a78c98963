package unitofwork

import (
	"context"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

// Stores exposes every repository bound to one open transaction.
type Stores struct {
	UserInfo        userinfo.Repository
	WorkExperiences workexperience.Repository
	Links           workexperience.LinkRepository
	ProfileShow     profileshow.Repository
}

// Options tunes a single transaction.
type Options struct {
	// LockKey serializes transactions sharing the same key (normally a user id)
	// until commit or rollback. Empty means no lock.
	LockKey  string
	ReadOnly bool
}

// Manager runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back on error or panic.
type Manager interface {
	Within(ctx context.Context, opts Options, fn func(ctx context.Context, stores Stores) error) error
}

// ForUser locks on the user id for a read-write transaction.
func ForUser(userID string) Options {
	return Options{LockKey: userID}
}

// ReadOnly opens a read-only transaction without a lock.
func ReadOnly() Options {
	return Options{ReadOnly: true}
}
