package repo

import (
	"context"
	"testing"
	"time"

	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"github.com/stretchr/testify/assert"
)

func TestLoginAttemptRepository_CountFailuresSince(t *testing.T) {
	db := setupTestDB(t)
	r := NewLoginAttemptRepositoryGorm(db)
	ctx := context.Background()

	now := time.Now()
	windowStart := now.Add(-time.Hour)

	// Three failures in the window, one success, one stale failure.
	for i := 0; i < 3; i++ {
		assert.NoError(t, r.Create(ctx, &domain.LoginAttempt{
			Account:       "test_account",
			Success:       false,
			FailureReason: domain.FailureBadPassword,
		}))
	}
	assert.NoError(t, r.Create(ctx, &domain.LoginAttempt{
		Account: "test_account",
		Success: true,
	}))
	assert.NoError(t, db.Create(&storage.LoginAttemptRecord{
		GormModel: storage.GormModel{CreatedAt: now.Add(-2 * time.Hour)},
		Account:   "test_account",
		Success:   false,
	}).Error)
	// Other accounts never count.
	assert.NoError(t, r.Create(ctx, &domain.LoginAttempt{
		Account: "other_account",
		Success: false,
	}))

	n, err := r.CountFailuresSince(ctx, "test_account", windowStart)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestLoginAttemptRepository_ListByAccountSince(t *testing.T) {
	db := setupTestDB(t)
	r := NewLoginAttemptRepositoryGorm(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		assert.NoError(t, r.Create(ctx, &domain.LoginAttempt{
			UserID:  "test_user_id",
			Account: "test_account",
			Success: i%2 == 0,
		}))
	}

	list, err := r.ListByAccountSince(ctx, "test_account", time.Now().Add(-time.Hour), 0)
	assert.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = r.ListByAccountSince(ctx, "test_account", time.Now().Add(-time.Hour), 2)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSecurityEventRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	r := NewSecurityEventRepositoryGorm(db)
	ctx := context.Background()

	events := []string{domain.EventRegistered, domain.EventCheckIn, domain.EventCheckOut}
	for _, et := range events {
		assert.NoError(t, r.Create(ctx, &domain.SecurityEvent{
			UserID:    "test_user_id",
			EventType: et,
			Severity:  domain.SeverityInfo,
		}))
	}
	assert.NoError(t, r.Create(ctx, &domain.SecurityEvent{
		UserID:    "other_user_id",
		EventType: domain.EventLogout,
		Severity:  domain.SeverityInfo,
	}))

	list, err := r.ListRecentByUser(ctx, "test_user_id", 0)
	assert.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = r.ListRecentByUser(ctx, "test_user_id", 2)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
}
