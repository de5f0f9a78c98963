package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
	"github.com/riskibarqy/hr-profile/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
)

var errInjected = errors.New("injected failure")

type sequenceIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++
	return fmt.Sprintf("id-%03d", g.n), nil
}

// failingWorkRepo fails every insert of a row with the given org name.
type failingWorkRepo struct {
	workexperience.Repository
	failOrg string
}

func (r failingWorkRepo) Insert(ctx context.Context, item workexperience.WorkExperience) error {
	if item.OrgName == r.failOrg {
		return errInjected
	}
	return r.Repository.Insert(ctx, item)
}

type faultyManager struct {
	inner   unitofwork.Manager
	failOrg string
}

func (m faultyManager) Within(ctx context.Context, opts unitofwork.Options, fn func(context.Context, unitofwork.Stores) error) error {
	return m.inner.Within(ctx, opts, func(ctx context.Context, stores unitofwork.Stores) error {
		stores.WorkExperiences = failingWorkRepo{Repository: stores.WorkExperiences, failOrg: m.failOrg}
		return fn(ctx, stores)
	})
}

// stubManager hands fixed stores to fn without any transaction.
type stubManager struct {
	stores unitofwork.Stores
}

func (m stubManager) Within(ctx context.Context, _ unitofwork.Options, fn func(context.Context, unitofwork.Stores) error) error {
	return fn(ctx, m.stores)
}

func newSeededStore(userIDs ...string) *memory.Store {
	store := memory.NewStore()
	for _, userID := range userIDs {
		store.SeedUserInfo(userinfo.Info{UserID: userID})
	}
	return store
}

func newTestWorkExperienceService(tx unitofwork.Manager) *WorkExperienceService {
	return NewWorkExperienceService(tx, &sequenceIDGen{}, logging.NewNop())
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
