package domain

import "time"

type LoginAttempt struct {
	UserID        string
	Account       string
	IPAddress     string
	UserAgent     string
	Success       bool
	FailureReason string
	CreatedAt     time.Time
}

// Enumerated failure reasons recorded on every denied login.
const (
	FailureUserNotFound    = "user_not_found"
	FailureAccountLocked   = "account_locked"
	FailureBadPassword     = "invalid_password"
	FailureAccountInactive = "account_inactive"
)

type SecurityEvent struct {
	UserID      string // 系统级事件为空
	EventType   string
	Description string
	IPAddress   string
	Severity    string
	CreatedAt   time.Time
}

const (
	EventRegistered     = "registered"
	EventLogout         = "logout"
	EventCheckIn        = "check_in"
	EventCheckOut       = "check_out"
	EventFaceRegistered = "face_registered"
	EventFaceFailure    = "face_failure"
	EventTotpEnabled    = "totp_enabled"
	EventTotpFailure    = "totp_failure"
	EventPasswordChange = "password_changed"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)
