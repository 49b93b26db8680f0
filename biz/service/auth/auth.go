package auth

import (
	"context"
	"time"

	"attend_now/be/biz/config"
	"attend_now/be/biz/dal/repo"
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/security"
	"attend_now/be/biz/util/encode"
	"attend_now/be/biz/util/random"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	defaultLockWindowMinutes = 60
	defaultLockMaxFailures   = 5

	saltLength        = 16
	minPasswordLength = 8
)

type Service struct {
	users    repo.UserRepository
	creds    repo.UserCredentialRepository
	attempts repo.LoginAttemptRepository
	audit    *security.Logger

	now func() time.Time
}

func New(users repo.UserRepository, creds repo.UserCredentialRepository,
	attempts repo.LoginAttemptRepository, audit *security.Logger) *Service {
	return &Service{
		users:    users,
		creds:    creds,
		attempts: attempts,
		audit:    audit,
		now:      time.Now,
	}
}

func NewDefault() *Service {
	db := mysql.GetDbConn()
	return New(
		repo.NewUserRepositoryGorm(db),
		repo.NewUserCredentialRepositoryGorm(db),
		repo.NewLoginAttemptRepositoryGorm(db),
		security.NewDefault(),
	)
}

func (s *Service) Register(ctx context.Context, account, email, name, phone, password string,
	client domain.ClientInfo) (*domain.User, errs.Error) {
	if len(password) < minPasswordLength {
		return nil, errs.ParamError.SetMsg("password too short")
	}

	existing, err := s.users.FindByAccount(ctx, account)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by account failed, err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.UserNameDuplicatedErr
	}

	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email failed, err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.EmailDuplicatedErr
	}

	user, err := s.users.Create(ctx, &domain.User{
		Account:  account,
		Email:    email,
		Name:     name,
		Phone:    phone,
		IsActive: true,
	})
	if err != nil {
		if errs.IsDuplicatedErr(err) {
			return nil, errs.UserNameDuplicatedErr
		}
		hlog.CtxErrorf(ctx, "create user failed, err: %v", err)
		return nil, errs.ServerError
	}

	salt := random.RandStr(saltLength)
	if err = s.creds.Create(ctx, &domain.Credential{
		UserID:       user.UserID,
		PasswordSalt: salt,
		PasswordHash: encode.EncodePassword(salt, password),
	}); err != nil {
		hlog.CtxErrorf(ctx, "create credential failed, err: %v", err)
		return nil, errs.ServerError
	}

	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:      user.UserID,
		EventType:   domain.EventRegistered,
		Description: "user registered",
		IPAddress:   client.IPAddress,
	})
	return user, nil
}

// Login authenticates an account. The lock check runs before the
// password check so a locked account learns nothing about whether the
// password it sent was right. Every exit path leaves an attempt record.
func (s *Service) Login(ctx context.Context, account, password string,
	client domain.ClientInfo) (*domain.User, errs.Error) {
	user, err := s.users.FindByAccount(ctx, account)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by account failed, err: %v", err)
		return nil, errs.ServerError
	}
	if user == nil {
		s.recordAttempt(ctx, "", account, client, false, domain.FailureUserNotFound)
		return nil, errs.UserNotExist
	}

	locked, bizErr := s.isLocked(ctx, account)
	if bizErr != nil {
		return nil, bizErr
	}
	if locked {
		s.recordAttempt(ctx, user.UserID, account, client, false, domain.FailureAccountLocked)
		return nil, errs.AccountLocked
	}

	cred, err := s.creds.FindByUserID(ctx, user.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential failed, err: %v", err)
		return nil, errs.ServerError
	}
	if cred == nil || encode.EncodePassword(cred.PasswordSalt, password) != cred.PasswordHash {
		s.recordAttempt(ctx, user.UserID, account, client, false, domain.FailureBadPassword)
		return nil, errs.PasswordIncorrect
	}

	if !user.IsActive {
		s.recordAttempt(ctx, user.UserID, account, client, false, domain.FailureAccountInactive)
		return nil, errs.AccountInactive
	}

	s.recordAttempt(ctx, user.UserID, account, client, true, "")
	return user, nil
}

// isLocked derives the lock state from the attempt log alone. There is
// no lock flag to set or clear; attempts aging out of the window unlock
// the account by themselves.
func (s *Service) isLocked(ctx context.Context, account string) (bool, errs.Error) {
	conf := config.GetAccountLockConf()
	window := time.Duration(conf.WindowMinutes) * time.Minute
	if window <= 0 {
		window = defaultLockWindowMinutes * time.Minute
	}
	maxFailures := int64(conf.MaxFailures)
	if maxFailures <= 0 {
		maxFailures = defaultLockMaxFailures
	}

	failures, err := s.attempts.CountFailuresSince(ctx, account, s.now().Add(-window))
	if err != nil {
		hlog.CtxErrorf(ctx, "count login failures failed, account: %s, err: %v", account, err)
		return false, errs.ServerError
	}
	return failures >= maxFailures, nil
}

func (s *Service) recordAttempt(ctx context.Context, userID, account string,
	client domain.ClientInfo, success bool, reason string) {
	s.audit.RecordAttempt(ctx, &domain.LoginAttempt{
		UserID:        userID,
		Account:       account,
		IPAddress:     client.IPAddress,
		UserAgent:     client.UserAgent,
		Success:       success,
		FailureReason: reason,
	})
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.User, errs.Error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user failed, err: %v", err)
		return nil, errs.ServerError
	}
	if user == nil {
		return nil, errs.UserNotExist
	}
	return user, nil
}

func (s *Service) GetCredentialVersion(ctx context.Context, userID string) (uint, errs.Error) {
	cred, err := s.creds.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential failed, err: %v", err)
		return 0, errs.ServerError
	}
	if cred == nil {
		return 0, errs.UserNotExist
	}
	return cred.CredentialVersion, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, name, phone string) (*domain.User, errs.Error) {
	user, bizErr := s.GetByUserID(ctx, userID)
	if bizErr != nil {
		return nil, bizErr
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.users.Update(ctx, user); err != nil {
		hlog.CtxErrorf(ctx, "update user failed, err: %v", err)
		return nil, errs.ServerError
	}
	return user, nil
}

// UpdatePassword bumps the credential version, which invalidates every
// token issued against the old version.
func (s *Service) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string,
	client domain.ClientInfo) errs.Error {
	if len(newPassword) < minPasswordLength {
		return errs.ParamError.SetMsg("password too short")
	}

	cred, err := s.creds.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential failed, err: %v", err)
		return errs.ServerError
	}
	if cred == nil {
		return errs.UserNotExist
	}
	if encode.EncodePassword(cred.PasswordSalt, oldPassword) != cred.PasswordHash {
		return errs.PasswordIncorrect
	}

	salt := random.RandStr(saltLength)
	if err = s.creds.Update(ctx, &domain.Credential{
		UserID:            userID,
		PasswordSalt:      salt,
		PasswordHash:      encode.EncodePassword(salt, newPassword),
		CredentialVersion: cred.CredentialVersion + 1,
	}); err != nil {
		hlog.CtxErrorf(ctx, "update credential failed, err: %v", err)
		return errs.ServerError
	}

	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:      userID,
		EventType:   domain.EventPasswordChange,
		Description: "password changed",
		IPAddress:   client.IPAddress,
	})
	return nil
}

func (s *Service) Logout(ctx context.Context, userID string, client domain.ClientInfo) {
	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:    userID,
		EventType: domain.EventLogout,
		IPAddress: client.IPAddress,
	})
}
