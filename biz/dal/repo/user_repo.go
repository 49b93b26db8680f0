package repo

import (
	"context"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"
	"attend_now/be/biz/util/id_gen"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByAccount(ctx context.Context, account string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type userRepositoryGorm struct {
	db *gorm.DB
}

func NewUserRepositoryGorm(db *gorm.DB) UserRepository {
	return &userRepositoryGorm{db: db}
}

func (r *userRepositoryGorm) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	m := convert.UserDomainToRecord(u)
	if m.UserId == "" {
		m.UserId = id_gen.NewID()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return convert.UserRecordToDomain(m), nil
}

func (r *userRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *userRepositoryGorm) FindByAccount(ctx context.Context, account string) (*domain.User, error) {
	return r.findOne(ctx, "account = ?", account)
}

func (r *userRepositoryGorm) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepositoryGorm) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m storage.UserRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m), nil
}

// Update writes the mutable user fields, keyed by user id. Identity
// fields (account, email) are immutable after registration.
func (r *userRepositoryGorm) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).
		Model(&storage.UserRecord{}).
		Where("user_id = ?", u.UserID).
		Updates(map[string]any{
			"name":          u.Name,
			"phone":         u.Phone,
			"is_active":     u.IsActive,
			"face_enrolled": u.FaceEnrolled,
			"totp_enabled":  u.TotpEnabled,
		}).Error
}
