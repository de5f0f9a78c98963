package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

var (
	errReadOnlyTx = errors.New("write attempted in read-only transaction")
	errForeignKey = errors.New("foreign key violation")
)

type state struct {
	userInfos    map[string]userinfo.Info
	works        []workexperience.WorkExperience
	links        []workexperience.SpecializationLink
	profileShows map[string]profileshow.Settings
}

func newState() *state {
	return &state{
		userInfos:    make(map[string]userinfo.Info),
		profileShows: make(map[string]profileshow.Settings),
	}
}

func (s *state) clone() *state {
	out := &state{
		userInfos:    make(map[string]userinfo.Info, len(s.userInfos)),
		works:        make([]workexperience.WorkExperience, 0, len(s.works)),
		links:        append([]workexperience.SpecializationLink(nil), s.links...),
		profileShows: make(map[string]profileshow.Settings, len(s.profileShows)),
	}
	for k, v := range s.userInfos {
		out.userInfos[k] = v
	}
	for _, w := range s.works {
		out.works = append(out.works, cloneWorkExperience(w))
	}
	for k, v := range s.profileShows {
		out.profileShows[k] = v
	}
	return out
}

// Store keeps every table in process memory. Transactions run one at a time
// against a private copy that replaces the shared state only on commit.
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

var _ unitofwork.Manager = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data: newState(),
		now:  time.Now,
	}
}

// SeedUserInfo inserts or replaces user info rows outside any transaction.
func (s *Store) SeedUserInfo(infos ...userinfo.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, info := range infos {
		s.data.userInfos[info.UserID] = info
	}
}

func (s *Store) Within(ctx context.Context, opts unitofwork.Options, fn func(ctx context.Context, stores unitofwork.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{
		state:    s.data.clone(),
		readOnly: opts.ReadOnly,
		now:      s.now,
	}
	if err := fn(ctx, tx.stores()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !opts.ReadOnly {
		s.data = tx.state
	}
	return nil
}

// CountOrphanLinks counts committed links whose parent work experience row
// no longer exists.
func (s *Store) CountOrphanLinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	parents := make(map[string]struct{}, len(s.data.works))
	for _, w := range s.data.works {
		parents[w.ID] = struct{}{}
	}

	orphans := 0
	for _, link := range s.data.links {
		if _, ok := parents[link.WorkExperienceID]; !ok {
			orphans++
		}
	}
	return orphans
}

type txState struct {
	*state
	readOnly bool
	now      func() time.Time
}

func (t *txState) stores() unitofwork.Stores {
	return unitofwork.Stores{
		UserInfo:        &UserInfoRepository{tx: t},
		WorkExperiences: &WorkExperienceRepository{tx: t},
		Links:           &LinkRepository{tx: t},
		ProfileShow:     &ProfileShowRepository{tx: t},
	}
}

func (t *txState) checkWritable() error {
	if t.readOnly {
		return errReadOnlyTx
	}
	return nil
}

func (t *txState) hasWork(id string) bool {
	for _, w := range t.works {
		if w.ID == id {
			return true
		}
	}
	return false
}

func cloneWorkExperience(w workexperience.WorkExperience) workexperience.WorkExperience {
	copied := w
	copied.Description = cloneString(w.Description)
	copied.Position = cloneString(w.Position)
	copied.BeginDate = cloneTime(w.BeginDate)
	copied.EndDate = cloneTime(w.EndDate)
	return copied
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
