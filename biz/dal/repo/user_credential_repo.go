package repo

import (
	"context"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"gorm.io/gorm"
)

type UserCredentialRepository interface {
	Create(ctx context.Context, c *domain.Credential) error
	FindByUserID(ctx context.Context, userID string) (*domain.Credential, error)
	Update(ctx context.Context, c *domain.Credential) error
}

type userCredentialRepositoryGorm struct {
	db *gorm.DB
}

func NewUserCredentialRepositoryGorm(db *gorm.DB) UserCredentialRepository {
	return &userCredentialRepositoryGorm{db: db}
}

func (r *userCredentialRepositoryGorm) Create(ctx context.Context, c *domain.Credential) error {
	return r.db.WithContext(ctx).Create(convert.CredentialDomainToRecord(c)).Error
}

func (r *userCredentialRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	var m storage.UserCredentialRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.CredentialRecordToDomain(&m), nil
}

func (r *userCredentialRepositoryGorm) Update(ctx context.Context, c *domain.Credential) error {
	return r.db.WithContext(ctx).
		Model(&storage.UserCredentialRecord{}).
		Where("user_id = ?", c.UserID).
		Updates(map[string]any{
			"password_salt":      c.PasswordSalt,
			"password_hash":      c.PasswordHash,
			"credential_version": c.CredentialVersion,
		}).Error
}
