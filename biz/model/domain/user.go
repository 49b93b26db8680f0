package domain

import "time"

type User struct {
	UserID       string
	Account      string
	Email        string
	Name         string
	Phone        string
	IsActive     bool
	IsAdmin      bool
	FaceEnrolled bool
	TotpEnabled  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Credential struct {
	UserID            string
	PasswordSalt      string
	PasswordHash      string
	CredentialVersion uint
}

// MfaSecret carries a user's second-factor material. TotpSecret is set
// at setup time but only counts as active once User.TotpEnabled flips.
// FaceFingerprint is a 64-bit average hash; zero means not enrolled
// (User.FaceEnrolled is authoritative).
type MfaSecret struct {
	UserID          string
	TotpSecret      string
	FaceFingerprint uint64
}

type ClientInfo struct {
	IPAddress string
	UserAgent string
}
