// Package store persists sessions in a local database so the back office
// keeps visitors logged in across restarts. SQLite is the default; pointing
// DATABASE_DSN at postgres switches drivers.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gestion-formations/gate"
	"gestion-formations/session"
)

// SessionRecord is the persisted form of a session.
type SessionRecord struct {
	SID       string    `gorm:"column:sid;primaryKey;size:64"`
	Token     string    `gorm:"size:2048;not null"`
	Username  string    `gorm:"size:255"`
	Role      string    `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionStore implements session.Store on top of GORM.
type SessionStore struct {
	db *gorm.DB
}

// Open connects to the database named by dsn and migrates the session table.
// An empty dsn falls back to a local sqlite file.
func Open(dsn string) (*SessionStore, error) {
	dsn = NormalizeDSN(dsn)
	var dialector gorm.Dialector
	if IsPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "sessions.db"
		}
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return New(db)
}

// New wraps an existing connection; tests use this with in-memory sqlite.
func New(db *gorm.DB) (*SessionStore, error) {
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, err
	}
	return &SessionStore{db: db}, nil
}

// Ping checks the connection; used by the health endpoint.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	rec := SessionRecord{
		SID:      sess.SID,
		Token:    sess.Token,
		Username: sess.Username,
		Role:     string(sess.Role),
	}
	return s.db.WithContext(ctx).Save(&rec).Error
}

func (s *SessionStore) Find(ctx context.Context, sid string) (session.Session, bool, error) {
	var rec SessionRecord
	err := s.db.WithContext(ctx).First(&rec, "sid = ?", sid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, err
	}
	return session.Session{
		SID:      rec.SID,
		Token:    rec.Token,
		Username: rec.Username,
		Role:     gate.ParseRole(rec.Role),
	}, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.db.WithContext(ctx).Delete(&SessionRecord{}, "sid = ?", sid).Error
}
