package repo

import (
	"context"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"gorm.io/gorm"
)

type SecurityEventRepository interface {
	Create(ctx context.Context, ev *domain.SecurityEvent) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.SecurityEvent, error)
}

type securityEventRepositoryGorm struct {
	db *gorm.DB
}

func NewSecurityEventRepositoryGorm(db *gorm.DB) SecurityEventRepository {
	return &securityEventRepositoryGorm{db: db}
}

func (r *securityEventRepositoryGorm) Create(ctx context.Context, ev *domain.SecurityEvent) error {
	return r.db.WithContext(ctx).Create(convert.SecurityEventDomainToRecord(ev)).Error
}

func (r *securityEventRepositoryGorm) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.SecurityEvent, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ms []*storage.SecurityEventRecord
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.SecurityEvent, 0, len(ms))
	for _, m := range ms {
		out = append(out, convert.SecurityEventRecordToDomain(m))
	}
	return out, nil
}
