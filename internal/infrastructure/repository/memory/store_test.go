package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
	"github.com/riskibarqy/hr-profile/internal/domain/unitofwork"
	"github.com/riskibarqy/hr-profile/internal/domain/userinfo"
	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
)

func TestStore_CommitPersistsWrites(t *testing.T) {
	store := NewStore()
	store.SeedUserInfo(userinfo.Info{UserID: "u1"})
	ctx := context.Background()

	err := store.Within(ctx, unitofwork.ForUser("u1"), func(ctx context.Context, s unitofwork.Stores) error {
		if err := s.WorkExperiences.Insert(ctx, workexperience.WorkExperience{ID: "w1", UserID: "u1", OrgName: "Acme"}); err != nil {
			return err
		}
		return s.Links.Insert(ctx, workexperience.SpecializationLink{ID: "l1", WorkExperienceID: "w1", SpecializationID: "p1"})
	})
	if err != nil {
		t.Fatalf("within: %v", err)
	}

	err = store.Within(ctx, unitofwork.ReadOnly(), func(ctx context.Context, s unitofwork.Stores) error {
		items, err := s.WorkExperiences.ListByUserID(ctx, "u1")
		if err != nil {
			return err
		}
		if len(items) != 1 || items[0].OrgName != "Acme" {
			t.Fatalf("unexpected rows: %+v", items)
		}
		if items[0].CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be stamped")
		}
		links, err := s.Links.ListSpecializationIDs(ctx, []string{"w1"})
		if err != nil {
			return err
		}
		if got := links["w1"]; len(got) != 1 || got[0] != "p1" {
			t.Fatalf("unexpected links: %v", links)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
}

func TestStore_ErrorRollsBack(t *testing.T) {
	store := NewStore()
	store.SeedUserInfo(userinfo.Info{UserID: "u1"})
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Within(ctx, unitofwork.ForUser("u1"), func(ctx context.Context, s unitofwork.Stores) error {
		if err := s.WorkExperiences.Insert(ctx, workexperience.WorkExperience{ID: "w1", UserID: "u1", OrgName: "Acme"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_ = store.Within(ctx, unitofwork.ReadOnly(), func(ctx context.Context, s unitofwork.Stores) error {
		items, _ := s.WorkExperiences.ListByUserID(ctx, "u1")
		if len(items) != 0 {
			t.Fatalf("expected rollback to drop insert, got %+v", items)
		}
		return nil
	})
}

func TestStore_ReadOnlyRejectsWrites(t *testing.T) {
	store := NewStore()
	store.SeedUserInfo(userinfo.Info{UserID: "u1"})

	err := store.Within(context.Background(), unitofwork.ReadOnly(), func(ctx context.Context, s unitofwork.Stores) error {
		return s.UserInfo.Update(ctx, userinfo.Info{UserID: "u1", HaveProfExperience: true})
	})
	if !errors.Is(err, errReadOnlyTx) {
		t.Fatalf("expected read-only error, got %v", err)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Within(ctx, unitofwork.ForUser("u1"), func(context.Context, unitofwork.Stores) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run on canceled context")
	}
}

func TestProfileShowRepository_CreateRejectsDuplicate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	create := func() error {
		return store.Within(ctx, unitofwork.ForUser("u1"), func(ctx context.Context, s unitofwork.Stores) error {
			return s.ProfileShow.Create(ctx, profileshow.Settings{ID: "ps1", UserID: "u1"})
		})
	}
	if err := create(); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := create(); !errors.Is(err, profileshow.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestStore_CountOrphanLinks(t *testing.T) {
	store := NewStore()
	store.SeedUserInfo(userinfo.Info{UserID: "u1"})
	ctx := context.Background()

	err := store.Within(ctx, unitofwork.ForUser("u1"), func(ctx context.Context, s unitofwork.Stores) error {
		if err := s.WorkExperiences.Insert(ctx, workexperience.WorkExperience{ID: "w1", UserID: "u1", OrgName: "Acme"}); err != nil {
			return err
		}
		if err := s.Links.Insert(ctx, workexperience.SpecializationLink{ID: "l1", WorkExperienceID: "w1", SpecializationID: "p1"}); err != nil {
			return err
		}
		_, err := s.WorkExperiences.DeleteAllByUserID(ctx, "u1")
		return err
	})
	if err != nil {
		t.Fatalf("within: %v", err)
	}

	if orphans := store.CountOrphanLinks(); orphans != 1 {
		t.Fatalf("expected one orphan after deleting parent only, got %d", orphans)
	}
}

func TestStore_EnforcesForeignKeys(t *testing.T) {
	store := NewStore()
	store.SeedUserInfo(userinfo.Info{UserID: "u1"})
	ctx := context.Background()

	tests := []struct {
		name  string
		write func(ctx context.Context, s unitofwork.Stores) error
	}{
		{
			name: "work experience for unknown user",
			write: func(ctx context.Context, s unitofwork.Stores) error {
				return s.WorkExperiences.Insert(ctx, workexperience.WorkExperience{ID: "w1", UserID: "ghost", OrgName: "Acme"})
			},
		},
		{
			name: "link for unknown work experience",
			write: func(ctx context.Context, s unitofwork.Stores) error {
				return s.Links.Insert(ctx, workexperience.SpecializationLink{ID: "l1", WorkExperienceID: "missing", SpecializationID: "p1"})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Within(ctx, unitofwork.ForUser("u1"), tt.write)
			if !errors.Is(err, errForeignKey) {
				t.Fatalf("expected foreign key error, got %v", err)
			}
		})
	}

	err := store.Within(ctx, unitofwork.ReadOnly(), func(ctx context.Context, s unitofwork.Stores) error {
		items, err := s.WorkExperiences.ListByUserID(ctx, "ghost")
		if err != nil {
			return err
		}
		if len(items) != 0 {
			t.Fatalf("expected rejected insert to leave no rows, got %+v", items)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
}
