package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories bound to one transaction.
type Store struct {
	Users        *UserRepository
	SocialEvents *SocialEventRepository
	Attendees    *AttendeeRepository
	Audit        *AuditRepository
}

// NewStore binds every repository to db, which may be a transaction.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewUserRepo(db),
		SocialEvents: NewSocialEventRepo(db),
		Attendees:    NewAttendeeRepo(db),
		Audit:        NewAuditRepo(db),
	}
}

// UnitOfWork runs fn against a transaction-scoped Store. Writes made through
// the store are committed once, after fn returns nil; an error, a panic or a
// cancelled ctx rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(store *Store) error) error
}

// GormUnitOfWork implements UnitOfWork with a GORM transaction per call.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(store *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(NewStore(tx)); err != nil {
			return err
		}
		// do not commit work for a request that has gone away
		return ctx.Err()
	})
}
