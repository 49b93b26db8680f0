package mfa

import (
	"bytes"
	"context"
	"image/png"

	"attend_now/be/biz/config"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	defaultTotpIssuer = "attend-now"

	totpPeriod     = 30
	totpSkew       = 1
	totpSecretSize = 20

	qrCodeSize = 256
)

// SetupTotp generates a fresh shared secret and the provisioning
// material for an authenticator app. The factor stays pending until the
// first successful VerifyTotp; a re-run before that simply rotates the
// secret.
func (s *Service) SetupTotp(ctx context.Context, userID string) (*domain.TotpProvisioning, errs.Error) {
	user, bizErr := s.getUser(ctx, userID)
	if bizErr != nil {
		return nil, bizErr
	}

	issuer := config.GetTotpConf().Issuer
	if issuer == "" {
		issuer = defaultTotpIssuer
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: user.Account,
		SecretSize:  totpSecretSize,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "generate totp key failed, err: %v", err)
		return nil, errs.ServerError
	}

	secret, err := s.secrets.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find mfa secret failed, err: %v", err)
		return nil, errs.ServerError
	}
	if secret == nil {
		secret = &domain.MfaSecret{UserID: userID}
	}
	secret.TotpSecret = key.Secret()

	if err = s.secrets.Save(ctx, secret); err != nil {
		hlog.CtxErrorf(ctx, "save mfa secret failed, err: %v", err)
		return nil, errs.ServerError
	}

	// Rotating the secret invalidates any previously confirmed factor.
	if user.TotpEnabled {
		user.TotpEnabled = false
		if err = s.users.Update(ctx, user); err != nil {
			hlog.CtxErrorf(ctx, "update user failed, err: %v", err)
			return nil, errs.ServerError
		}
	}

	provisioning := &domain.TotpProvisioning{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
	}
	if img, imgErr := key.Image(qrCodeSize, qrCodeSize); imgErr == nil {
		var buf bytes.Buffer
		if encErr := png.Encode(&buf, img); encErr == nil {
			provisioning.QRCodePNG = buf.Bytes()
		}
	}
	return provisioning, nil
}

// VerifyTotp checks a code against the stored secret with one period of
// clock skew in either direction. The first success after setup flips
// the factor from pending to enabled.
func (s *Service) VerifyTotp(ctx context.Context, userID, code string,
	client domain.ClientInfo) errs.Error {
	user, bizErr := s.getUser(ctx, userID)
	if bizErr != nil {
		return bizErr
	}

	secret, err := s.secrets.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find mfa secret failed, err: %v", err)
		return errs.ServerError
	}
	if secret == nil || secret.TotpSecret == "" {
		return errs.TotpNotSetup
	}

	valid, err := totp.ValidateCustom(code, secret.TotpSecret, s.now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil || !valid {
		s.audit.Record(ctx, &domain.SecurityEvent{
			UserID:      userID,
			EventType:   domain.EventTotpFailure,
			Description: "totp code rejected",
			IPAddress:   client.IPAddress,
			Severity:    domain.SeverityWarning,
		})
		return errs.TotpCodeInvalid
	}

	if !user.TotpEnabled {
		user.TotpEnabled = true
		if err = s.users.Update(ctx, user); err != nil {
			hlog.CtxErrorf(ctx, "update user failed, err: %v", err)
			return errs.ServerError
		}
		s.audit.Record(ctx, &domain.SecurityEvent{
			UserID:      userID,
			EventType:   domain.EventTotpEnabled,
			Description: "totp factor confirmed",
			IPAddress:   client.IPAddress,
		})
	}
	return nil
}
