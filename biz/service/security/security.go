package security

import (
	"context"
	"time"

	"attend_now/be/biz/dal/repo"
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const defaultListLimit = 50

// Logger appends to the security audit trail. Recording is best-effort
// and never fails the caller's flow; a write failure only leaves a log
// line behind.
type Logger struct {
	events   repo.SecurityEventRepository
	attempts repo.LoginAttemptRepository
}

func New(events repo.SecurityEventRepository, attempts repo.LoginAttemptRepository) *Logger {
	return &Logger{
		events:   events,
		attempts: attempts,
	}
}

func NewDefault() *Logger {
	db := mysql.GetDbConn()
	return New(
		repo.NewSecurityEventRepositoryGorm(db),
		repo.NewLoginAttemptRepositoryGorm(db),
	)
}

func (l *Logger) Record(ctx context.Context, ev *domain.SecurityEvent) {
	if ev.Severity == "" {
		ev.Severity = domain.SeverityInfo
	}
	if err := l.events.Create(ctx, ev); err != nil {
		hlog.CtxWarnf(ctx, "security event dropped, type: %s, err: %v", ev.EventType, err)
	}
}

func (l *Logger) RecordAttempt(ctx context.Context, attempt *domain.LoginAttempt) {
	if err := l.attempts.Create(ctx, attempt); err != nil {
		hlog.CtxWarnf(ctx, "login attempt dropped, account: %s, err: %v", attempt.Account, err)
	}
}

func (l *Logger) RecentEvents(ctx context.Context, userID string, limit int) ([]*domain.SecurityEvent, errs.Error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	events, err := l.events.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		hlog.CtxErrorf(ctx, "list security events failed, err: %v", err)
		return nil, errs.ServerError
	}
	return events, nil
}

func (l *Logger) RecentAttempts(ctx context.Context, account string, since time.Time, limit int) ([]*domain.LoginAttempt, errs.Error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	attempts, err := l.attempts.ListByAccountSince(ctx, account, since, limit)
	if err != nil {
		hlog.CtxErrorf(ctx, "list login attempts failed, account: %s, err: %v", account, err)
		return nil, errs.ServerError
	}
	return attempts, nil
}
