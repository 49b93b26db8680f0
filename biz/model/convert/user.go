package convert

import (
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"
)

func UserDomainToRecord(u *domain.User) *storage.UserRecord {
	if u == nil {
		return nil
	}
	return &storage.UserRecord{
		GormModel: storage.GormModel{
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		UserId:       u.UserID,
		Account:      u.Account,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		IsAdmin:      u.IsAdmin,
		FaceEnrolled: u.FaceEnrolled,
		TotpEnabled:  u.TotpEnabled,
	}
}

func UserRecordToDomain(m *storage.UserRecord) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UserID:       m.UserId,
		Account:      m.Account,
		Email:        m.Email,
		Name:         m.Name,
		Phone:        m.Phone,
		IsActive:     m.IsActive,
		IsAdmin:      m.IsAdmin,
		FaceEnrolled: m.FaceEnrolled,
		TotpEnabled:  m.TotpEnabled,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func CredentialRecordToDomain(m *storage.UserCredentialRecord) *domain.Credential {
	if m == nil {
		return nil
	}
	return &domain.Credential{
		UserID:            m.UserId,
		PasswordSalt:      m.PasswordSalt,
		PasswordHash:      m.PasswordHash,
		CredentialVersion: m.CredentialVersion,
	}
}

func CredentialDomainToRecord(c *domain.Credential) *storage.UserCredentialRecord {
	if c == nil {
		return nil
	}
	return &storage.UserCredentialRecord{
		UserId:            c.UserID,
		PasswordSalt:      c.PasswordSalt,
		PasswordHash:      c.PasswordHash,
		CredentialVersion: c.CredentialVersion,
	}
}

func MfaSecretRecordToDomain(m *storage.MfaSecretRecord) *domain.MfaSecret {
	if m == nil {
		return nil
	}
	return &domain.MfaSecret{
		UserID:          m.UserId,
		TotpSecret:      m.TotpSecret,
		FaceFingerprint: m.FaceFingerprint,
	}
}

func MfaSecretDomainToRecord(s *domain.MfaSecret) *storage.MfaSecretRecord {
	if s == nil {
		return nil
	}
	return &storage.MfaSecretRecord{
		UserId:          s.UserID,
		TotpSecret:      s.TotpSecret,
		FaceFingerprint: s.FaceFingerprint,
	}
}
