package repo

import (
	"context"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"gorm.io/gorm"
)

type MfaSecretRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.MfaSecret, error)
	// Save upserts the secret row keyed by user id.
	Save(ctx context.Context, s *domain.MfaSecret) error
}

type mfaSecretRepositoryGorm struct {
	db *gorm.DB
}

func NewMfaSecretRepositoryGorm(db *gorm.DB) MfaSecretRepository {
	return &mfaSecretRepositoryGorm{db: db}
}

func (r *mfaSecretRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.MfaSecret, error) {
	var m storage.MfaSecretRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.MfaSecretRecordToDomain(&m), nil
}

func (r *mfaSecretRepositoryGorm) Save(ctx context.Context, s *domain.MfaSecret) error {
	var m storage.MfaSecretRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", s.UserID).First(&m).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return r.db.WithContext(ctx).Create(convert.MfaSecretDomainToRecord(s)).Error
	}

	return r.db.WithContext(ctx).
		Model(&storage.MfaSecretRecord{}).
		Where("user_id = ?", s.UserID).
		Updates(map[string]any{
			"totp_secret":      s.TotpSecret,
			"face_fingerprint": s.FaceFingerprint,
		}).Error
}
