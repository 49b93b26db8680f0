package repo

import (
	"context"
	"time"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"gorm.io/gorm"
)

type LoginAttemptRepository interface {
	Create(ctx context.Context, a *domain.LoginAttempt) error
	// CountFailuresSince counts failed attempts for the account with a
	// timestamp at or after since. Lock state is derived from this
	// count alone; there is no cached counter to drift from the log.
	CountFailuresSince(ctx context.Context, account string, since time.Time) (int64, error)
	ListByAccountSince(ctx context.Context, account string, since time.Time, limit int) ([]*domain.LoginAttempt, error)
}

type loginAttemptRepositoryGorm struct {
	db *gorm.DB
}

func NewLoginAttemptRepositoryGorm(db *gorm.DB) LoginAttemptRepository {
	return &loginAttemptRepositoryGorm{db: db}
}

func (r *loginAttemptRepositoryGorm) Create(ctx context.Context, a *domain.LoginAttempt) error {
	return r.db.WithContext(ctx).Create(convert.LoginAttemptDomainToRecord(a)).Error
}

func (r *loginAttemptRepositoryGorm) CountFailuresSince(ctx context.Context, account string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&storage.LoginAttemptRecord{}).
		Where("account = ? AND success = ? AND created_at >= ?", account, false, since).
		Count(&n).Error
	return n, err
}

func (r *loginAttemptRepositoryGorm) ListByAccountSince(ctx context.Context, account string, since time.Time, limit int) ([]*domain.LoginAttempt, error) {
	q := r.db.WithContext(ctx).
		Where("account = ? AND created_at >= ?", account, since).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ms []*storage.LoginAttemptRecord
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.LoginAttempt, 0, len(ms))
	for _, m := range ms {
		out = append(out, convert.LoginAttemptRecordToDomain(m))
	}
	return out, nil
}
