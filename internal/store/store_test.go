package store

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gestion-formations/gate"
	"gestion-formations/session"
)

func setupTestStore(t *testing.T) *SessionStore {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := New(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestSessionStore_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sess := session.Session{SID: "abc", Token: "tok", Username: "amine", Role: gate.RoleAdministrateur}
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := s.Find(ctx, "abc")
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if got != sess {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSessionStore_FindMissing(t *testing.T) {
	s := setupTestStore(t)
	_, found, err := s.Find(context.Background(), "nope")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found {
		t.Fatal("expected not found")
	}
}

func TestSessionStore_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, session.Session{SID: "gone", Token: "t"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Find(ctx, "gone"); found {
		t.Fatal("expected record deleted")
	}
	// Deleting twice is not an error.
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionStore_UnknownRoleFailsClosed(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, session.Session{SID: "x", Token: "t", Role: gate.Role("GARBAGE")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, found, err := s.Find(ctx, "x")
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if got.Role != gate.RoleUnknown {
		t.Fatalf("expected RoleUnknown, got %q", got.Role)
	}
}

func TestNormalizeDSN(t *testing.T) {
	cases := map[string]string{
		"":                          "",
		"sessions.db":               "sessions.db",
		" 'postgres://u:p@h/db' ":   "postgres://u:p@h/db",
		"host=h user=u dbname=d":    "host=h user=u dbname=d sslmode=disable",
		"host=h   user=u  dbname=d sslmode=require": "host=h user=u dbname=d sslmode=require",
	}
	for in, want := range cases {
		if got := NormalizeDSN(in); got != want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsPostgresDSN(t *testing.T) {
	if !IsPostgresDSN("postgres://u@h/db") {
		t.Error("URL form should be postgres")
	}
	if !IsPostgresDSN("host=localhost dbname=sessions") {
		t.Error("key=value form should be postgres")
	}
	if IsPostgresDSN("sessions.db") {
		t.Error("sqlite path is not postgres")
	}
	if IsPostgresDSN("file::memory:?cache=shared") {
		t.Error("sqlite memory DSN is not postgres")
	}
}

// The lookup queries address the primary key as "sid"; the struct tag must
// pin that column name so the naming strategy cannot silently rename it.
func TestSessionStore_SIDColumnName(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, session.Session{SID: "col-check", Token: "tok", Role: gate.RoleUtilisateur}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got string
	if err := s.db.Raw("SELECT sid FROM session_records WHERE sid = ?", "col-check").Scan(&got).Error; err != nil {
		t.Fatalf("raw select on sid column: %v", err)
	}
	if got != "col-check" {
		t.Fatalf("unexpected sid value: %q", got)
	}
}
