package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/riskibarqy/hr-profile/internal/domain/profileshow"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableString(t *testing.T) {
	blank := "   "
	value := " Engineer "

	if got := nullableString(nil); got.Valid {
		t.Fatalf("expected nil to be NULL")
	}
	if got := nullableString(&blank); got.Valid {
		t.Fatalf("expected blank to be NULL")
	}
	got := nullableString(&value)
	if !got.Valid || got.String != "Engineer" {
		t.Fatalf("unexpected value: %+v", got)
	}
	if back := stringPtr(got); back == nil || *back != "Engineer" {
		t.Fatalf("unexpected round trip: %v", back)
	}
}

func TestNullableDateDropsClock(t *testing.T) {
	in := time.Date(2024, time.May, 17, 15, 4, 5, 0, time.FixedZone("WIB", 7*3600))
	got := nullableDate(&in)
	if !got.Valid {
		t.Fatalf("expected valid date")
	}
	if got.Time.Hour() != 0 || got.Time.Day() != 17 || got.Time.Location() != time.UTC {
		t.Fatalf("unexpected normalized date: %s", got.Time)
	}
	if datePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected NULL date to map to nil")
	}
}

func TestUpsertProfileShowQuery(t *testing.T) {
	query := buildUpsertProfileShowQuery()

	if !strings.HasPrefix(query, "INSERT INTO users.user_profile_show (user_profile_show_id, guid, user_id, all_user_show") {
		t.Fatalf("unexpected insert head: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (user_id) DO UPDATE SET all_user_show = EXCLUDED.all_user_show") {
		t.Fatalf("expected conflict clause on user_id: %s", query)
	}
	if strings.Contains(query, "user_profile_show_id = EXCLUDED") || strings.Contains(query, "guid = EXCLUDED") {
		t.Fatalf("identity columns must not be overwritten: %s", query)
	}
	if got := strings.Count(query, "EXCLUDED."); got != len(profileshow.HiddenFlags().Named()) {
		t.Fatalf("expected every flag column updated, got %d", got)
	}
}

func TestProfileShowRowMapping(t *testing.T) {
	settings := profileshow.Settings{
		ID:     "ps1",
		GUID:   "g1",
		UserID: "u1",
		Flags:  profileshow.Flags{AllUserShow: 1, EventShow: 1, ProfRestrictionShow: 1},
	}

	got := profileShowFromRow(profileShowToRow(settings))
	if got.ID != settings.ID || got.UserID != settings.UserID || got.Flags != settings.Flags {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if values := profileShowInsertValues(profileShowToRow(settings)); len(values) != len(profileShowColumns)-2 {
		t.Fatalf("insert values do not match insert columns: %d", len(values))
	}
}

func TestLinkQueryUsesDollarPlaceholders(t *testing.T) {
	query, args, err := psql.Select("user_work_exp_id").
		From(workExpLinkTable).
		Where(sq.Eq{"user_work_exp_id": []string{"w1", "w2"}}).
		ToSql()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.Contains(query, "user_work_exp_id IN ($1,$2)") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}
