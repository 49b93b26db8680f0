package storage

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

type GormModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt soft_delete.DeletedAt
}

type UserRecord struct {
	GormModel
	UserId       string `gorm:"size:64;not null;uniqueIndex"`  // 用户唯一索引
	Account      string `gorm:"size:64;not null;uniqueIndex"`  // 用户唯一登录账号
	Email        string `gorm:"size:100;not null;uniqueIndex"` // 用户邮箱
	Name         string `gorm:"size:100;not null"`             // 用户姓名
	Phone        string `gorm:"size:20"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	FaceEnrolled bool   `gorm:"not null;default:false"`
	TotpEnabled  bool   `gorm:"not null;default:false"`
}

func (UserRecord) TableName() string {
	return "users"
}

type UserCredentialRecord struct {
	GormModel
	UserId            string `gorm:"size:64;not null;uniqueIndex"` // 用户唯一索引
	PasswordSalt      string `gorm:"size:64;not null"`
	PasswordHash      string `gorm:"size:128;not null"`
	CredentialVersion uint   `gorm:"default:0;not null"` // 密码凭证版本
}

func (UserCredentialRecord) TableName() string {
	return "user_credentials"
}

// MfaSecretRecord holds the verification material for both second
// factors: the pending-or-enabled TOTP secret and the enrolled face
// fingerprint. The corresponding enablement flags live on UserRecord.
type MfaSecretRecord struct {
	GormModel
	UserId          string `gorm:"size:64;not null;uniqueIndex"`
	TotpSecret      string `gorm:"size:64"`
	FaceFingerprint uint64 `gorm:"not null;default:0"`
}

func (MfaSecretRecord) TableName() string {
	return "mfa_secrets"
}
