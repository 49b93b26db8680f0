package convert

import (
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"
)

func LoginAttemptDomainToRecord(a *domain.LoginAttempt) *storage.LoginAttemptRecord {
	if a == nil {
		return nil
	}
	return &storage.LoginAttemptRecord{
		UserId:        a.UserID,
		Account:       a.Account,
		IpAddress:     a.IPAddress,
		UserAgent:     a.UserAgent,
		Success:       a.Success,
		FailureReason: a.FailureReason,
	}
}

func LoginAttemptRecordToDomain(m *storage.LoginAttemptRecord) *domain.LoginAttempt {
	if m == nil {
		return nil
	}
	return &domain.LoginAttempt{
		UserID:        m.UserId,
		Account:       m.Account,
		IPAddress:     m.IpAddress,
		UserAgent:     m.UserAgent,
		Success:       m.Success,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
	}
}

func SecurityEventDomainToRecord(ev *domain.SecurityEvent) *storage.SecurityEventRecord {
	if ev == nil {
		return nil
	}
	return &storage.SecurityEventRecord{
		UserId:      ev.UserID,
		EventType:   ev.EventType,
		Description: ev.Description,
		IpAddress:   ev.IPAddress,
		Severity:    ev.Severity,
	}
}

func SecurityEventRecordToDomain(m *storage.SecurityEventRecord) *domain.SecurityEvent {
	if m == nil {
		return nil
	}
	return &domain.SecurityEvent{
		UserID:      m.UserId,
		EventType:   m.EventType,
		Description: m.Description,
		IPAddress:   m.IpAddress,
		Severity:    m.Severity,
		CreatedAt:   m.CreatedAt,
	}
}
