package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/security"
	"attend_now/be/biz/util/encode"

	"github.com/stretchr/testify/assert"
)

type fakeUserRepo struct {
	byAccount    *domain.User
	byAccountErr error
	byEmail      *domain.User
	byUserID     *domain.User
	byUserIDErr  error

	createRet   *domain.User
	createErr   error
	createInput *domain.User
	updateInput *domain.User
	updateErr   error
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.createInput = u
	return r.createRet, r.createErr
}

func (r *fakeUserRepo) FindByUserID(_ context.Context, _ string) (*domain.User, error) {
	return r.byUserID, r.byUserIDErr
}

func (r *fakeUserRepo) FindByAccount(_ context.Context, _ string) (*domain.User, error) {
	return r.byAccount, r.byAccountErr
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return r.byEmail, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.updateInput = u
	return r.updateErr
}

type fakeCredRepo struct {
	byUserID    *domain.Credential
	byUserIDErr error

	createInput *domain.Credential
	createErr   error
	updateInput *domain.Credential
	updateErr   error
}

func (r *fakeCredRepo) Create(_ context.Context, c *domain.Credential) error {
	r.createInput = c
	return r.createErr
}

func (r *fakeCredRepo) FindByUserID(_ context.Context, _ string) (*domain.Credential, error) {
	return r.byUserID, r.byUserIDErr
}

func (r *fakeCredRepo) Update(_ context.Context, c *domain.Credential) error {
	r.updateInput = c
	return r.updateErr
}

type fakeAttemptRepo struct {
	created  []*domain.LoginAttempt
	countRet int64
	countErr error
}

func (r *fakeAttemptRepo) Create(_ context.Context, a *domain.LoginAttempt) error {
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAttemptRepo) CountFailuresSince(_ context.Context, _ string, _ time.Time) (int64, error) {
	return r.countRet, r.countErr
}

func (r *fakeAttemptRepo) ListByAccountSince(_ context.Context, _ string, _ time.Time, _ int) ([]*domain.LoginAttempt, error) {
	return nil, nil
}

type fakeEventRepo struct {
	created []*domain.SecurityEvent
}

func (r *fakeEventRepo) Create(_ context.Context, ev *domain.SecurityEvent) error {
	r.created = append(r.created, ev)
	return nil
}

func (r *fakeEventRepo) ListRecentByUser(_ context.Context, _ string, _ int) ([]*domain.SecurityEvent, error) {
	return nil, nil
}

type fixture struct {
	users    *fakeUserRepo
	creds    *fakeCredRepo
	attempts *fakeAttemptRepo
	events   *fakeEventRepo
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    &fakeUserRepo{},
		creds:    &fakeCredRepo{},
		attempts: &fakeAttemptRepo{},
		events:   &fakeEventRepo{},
	}
	f.svc = New(f.users, f.creds, f.attempts, security.New(f.events, f.attempts))
	return f
}

var testClient = domain.ClientInfo{IPAddress: "10.0.0.1", UserAgent: "test-agent"}

func TestService_Register(t *testing.T) {
	t.Run("password too short", func(t *testing.T) {
		f := newFixture()
		_, bizErr := f.svc.Register(context.Background(), "a", "a@x.com", "n", "", "short", testClient)
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))
	})

	t.Run("account duplicated", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = &domain.User{UserID: "u1"}
		_, bizErr := f.svc.Register(context.Background(), "a", "a@x.com", "n", "", "password", testClient)
		assert.True(t, errs.ErrorEqual(errs.UserNameDuplicatedErr, bizErr))
	})

	t.Run("email duplicated", func(t *testing.T) {
		f := newFixture()
		f.users.byEmail = &domain.User{UserID: "u1"}
		_, bizErr := f.svc.Register(context.Background(), "a", "a@x.com", "n", "", "password", testClient)
		assert.True(t, errs.ErrorEqual(errs.EmailDuplicatedErr, bizErr))
	})

	t.Run("success writes credential and event", func(t *testing.T) {
		f := newFixture()
		f.users.createRet = &domain.User{UserID: "u1", Account: "a"}

		u, bizErr := f.svc.Register(context.Background(), "a", "a@x.com", "n", "", "password", testClient)
		assert.Nil(t, bizErr)
		assert.Equal(t, "u1", u.UserID)

		if assert.NotNil(t, f.creds.createInput) {
			assert.Len(t, f.creds.createInput.PasswordSalt, saltLength)
			assert.Equal(t,
				encode.EncodePassword(f.creds.createInput.PasswordSalt, "password"),
				f.creds.createInput.PasswordHash)
		}
		if assert.Len(t, f.events.created, 1) {
			assert.Equal(t, domain.EventRegistered, f.events.created[0].EventType)
		}
	})
}

func TestService_Login(t *testing.T) {
	activeUser := func() *domain.User {
		return &domain.User{UserID: "u1", Account: "a", IsActive: true}
	}
	credFor := func(password string) *domain.Credential {
		return &domain.Credential{
			UserID:       "u1",
			PasswordSalt: "salt",
			PasswordHash: encode.EncodePassword("salt", password),
		}
	}

	t.Run("find error", func(t *testing.T) {
		f := newFixture()
		f.users.byAccountErr = errors.New("db error")
		_, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
		assert.Empty(t, f.attempts.created)
	})

	t.Run("user not exist records attempt", func(t *testing.T) {
		f := newFixture()
		_, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.True(t, errs.ErrorEqual(errs.UserNotExist, bizErr))

		if assert.Len(t, f.attempts.created, 1) {
			assert.False(t, f.attempts.created[0].Success)
			assert.Equal(t, domain.FailureUserNotFound, f.attempts.created[0].FailureReason)
		}
	})

	t.Run("locked before password is checked", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = activeUser()
		f.attempts.countRet = 5
		f.creds.byUserID = credFor("right")

		// Even the right password is rejected while locked.
		_, bizErr := f.svc.Login(context.Background(), "a", "right", testClient)
		assert.True(t, errs.ErrorEqual(errs.AccountLocked, bizErr))

		if assert.Len(t, f.attempts.created, 1) {
			assert.Equal(t, domain.FailureAccountLocked, f.attempts.created[0].FailureReason)
		}
	})

	t.Run("below threshold is not locked", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = activeUser()
		f.attempts.countRet = 4
		f.creds.byUserID = credFor("p")

		u, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.Nil(t, bizErr)
		assert.Equal(t, "u1", u.UserID)
	})

	t.Run("count error", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = activeUser()
		f.attempts.countErr = errors.New("db error")
		_, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
	})

	t.Run("password incorrect records attempt", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = activeUser()
		f.creds.byUserID = credFor("right")

		_, bizErr := f.svc.Login(context.Background(), "a", "wrong", testClient)
		assert.True(t, errs.ErrorEqual(errs.PasswordIncorrect, bizErr))

		if assert.Len(t, f.attempts.created, 1) {
			assert.Equal(t, domain.FailureBadPassword, f.attempts.created[0].FailureReason)
		}
	})

	t.Run("inactive checked after password", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = &domain.User{UserID: "u1", Account: "a", IsActive: false}
		f.creds.byUserID = credFor("p")

		_, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.True(t, errs.ErrorEqual(errs.AccountInactive, bizErr))

		if assert.Len(t, f.attempts.created, 1) {
			assert.Equal(t, domain.FailureAccountInactive, f.attempts.created[0].FailureReason)
		}
	})

	t.Run("success records successful attempt", func(t *testing.T) {
		f := newFixture()
		f.users.byAccount = activeUser()
		f.creds.byUserID = credFor("p")

		u, bizErr := f.svc.Login(context.Background(), "a", "p", testClient)
		assert.Nil(t, bizErr)
		assert.Equal(t, "u1", u.UserID)

		if assert.Len(t, f.attempts.created, 1) {
			assert.True(t, f.attempts.created[0].Success)
			assert.Empty(t, f.attempts.created[0].FailureReason)
		}
	})
}

func TestService_GetCredentialVersion(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		_, bizErr := f.svc.GetCredentialVersion(context.Background(), "u1")
		assert.True(t, errs.ErrorEqual(errs.UserNotExist, bizErr))
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.creds.byUserID = &domain.Credential{UserID: "u1", CredentialVersion: 3}
		v, bizErr := f.svc.GetCredentialVersion(context.Background(), "u1")
		assert.Nil(t, bizErr)
		assert.Equal(t, uint(3), v)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	t.Run("old password incorrect", func(t *testing.T) {
		f := newFixture()
		f.creds.byUserID = &domain.Credential{
			UserID:       "u1",
			PasswordSalt: "salt",
			PasswordHash: encode.EncodePassword("salt", "right"),
		}
		bizErr := f.svc.UpdatePassword(context.Background(), "u1", "wrong", "new_password", testClient)
		assert.True(t, errs.ErrorEqual(errs.PasswordIncorrect, bizErr))
	})

	t.Run("success bumps version and records event", func(t *testing.T) {
		f := newFixture()
		f.creds.byUserID = &domain.Credential{
			UserID:            "u1",
			PasswordSalt:      "salt",
			PasswordHash:      encode.EncodePassword("salt", "old_password"),
			CredentialVersion: 2,
		}

		bizErr := f.svc.UpdatePassword(context.Background(), "u1", "old_password", "new_password", testClient)
		assert.Nil(t, bizErr)

		if assert.NotNil(t, f.creds.updateInput) {
			assert.Equal(t, uint(3), f.creds.updateInput.CredentialVersion)
			assert.NotEqual(t, "salt", f.creds.updateInput.PasswordSalt)
		}
		if assert.Len(t, f.events.created, 1) {
			assert.Equal(t, domain.EventPasswordChange, f.events.created[0].EventType)
		}
	})
}

func TestService_UpdateProfile(t *testing.T) {
	f := newFixture()
	f.users.byUserID = &domain.User{UserID: "u1", Name: "old", Phone: "111"}

	u, bizErr := f.svc.UpdateProfile(context.Background(), "u1", "new", "")
	assert.Nil(t, bizErr)
	assert.Equal(t, "new", u.Name)
	assert.Equal(t, "111", u.Phone)
	assert.NotNil(t, f.users.updateInput)
}

func TestService_Logout(t *testing.T) {
	f := newFixture()
	f.svc.Logout(context.Background(), "u1", testClient)

	if assert.Len(t, f.events.created, 1) {
		assert.Equal(t, domain.EventLogout, f.events.created[0].EventType)
	}
}
