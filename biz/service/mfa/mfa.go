package mfa

import (
	"context"
	"time"

	"attend_now/be/biz/dal/repo"
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/security"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Service struct {
	users   repo.UserRepository
	secrets repo.MfaSecretRepository
	audit   *security.Logger

	now func() time.Time
}

func New(users repo.UserRepository, secrets repo.MfaSecretRepository, audit *security.Logger) *Service {
	return &Service{
		users:   users,
		secrets: secrets,
		audit:   audit,
		now:     time.Now,
	}
}

func NewDefault() *Service {
	db := mysql.GetDbConn()
	return New(
		repo.NewUserRepositoryGorm(db),
		repo.NewMfaSecretRepositoryGorm(db),
		security.NewDefault(),
	)
}

func (s *Service) getUser(ctx context.Context, userID string) (*domain.User, errs.Error) {
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
