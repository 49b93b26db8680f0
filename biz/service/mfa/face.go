package mfa

import (
	"context"

	"attend_now/be/biz/config"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/util/imghash"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const defaultMatchThresholdPercent = 20.0

func (s *Service) EnrollFace(ctx context.Context, userID string, image []byte,
	client domain.ClientInfo) errs.Error {
	user, bizErr := s.getUser(ctx, userID)
	if bizErr != nil {
		return bizErr
	}

	fingerprint, err := imghash.FromBytes(image, minImageBytes())
	if err != nil {
		return errs.FaceImageInvalid.SetErr(err)
	}

	secret, err := s.secrets.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find mfa secret failed, err: %v", err)
		return errs.ServerError
	}
	if secret == nil {
		secret = &domain.MfaSecret{UserID: userID}
	}
	secret.FaceFingerprint = fingerprint

	if err = s.secrets.Save(ctx, secret); err != nil {
		hlog.CtxErrorf(ctx, "save mfa secret failed, err: %v", err)
		return errs.ServerError
	}

	if !user.FaceEnrolled {
		user.FaceEnrolled = true
		if err = s.users.Update(ctx, user); err != nil {
			hlog.CtxErrorf(ctx, "update user failed, err: %v", err)
			return errs.ServerError
		}
	}

	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:      userID,
		EventType:   domain.EventFaceRegistered,
		Description: "face fingerprint enrolled",
		IPAddress:   client.IPAddress,
	})
	return nil
}

// VerifyFace compares a capture against the enrolled fingerprint. An
// image that cannot be hashed is a rejection, never a pass.
func (s *Service) VerifyFace(ctx context.Context, userID string, image []byte,
	client domain.ClientInfo) (*domain.FaceMatch, errs.Error) {
	user, bizErr := s.getUser(ctx, userID)
	if bizErr != nil {
		return nil, bizErr
	}
	if !user.FaceEnrolled {
		return nil, errs.FaceNotEnrolled
	}

	secret, err := s.secrets.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find mfa secret failed, err: %v", err)
		return nil, errs.ServerError
	}
	if secret == nil {
		return nil, errs.FaceNotEnrolled
	}

	var match domain.FaceMatch
	candidate, err := imghash.FromBytes(image, minImageBytes())
	if err != nil {
		match = domain.FaceMatch{Distance: imghash.HashBits}
	} else {
		match = matchResult(secret.FaceFingerprint, candidate, matchThresholdPercent())
	}
	if !match.IsMatch {
		s.audit.Record(ctx, &domain.SecurityEvent{
			UserID:      userID,
			EventType:   domain.EventFaceFailure,
			Description: "face verification rejected",
			IPAddress:   client.IPAddress,
			Severity:    domain.SeverityWarning,
		})
	}
	return &match, nil
}

// matchResult accepts when the Hamming distance stays strictly under
// threshold percent of the fingerprint width. At the default 20% on a
// 64-bit hash that is a cutoff of 12.8 bits, so 12 differing bits still
// match and 13 do not.
func matchResult(enrolled, candidate uint64, thresholdPercent float64) domain.FaceMatch {
	distance := imghash.Distance(enrolled, candidate)
	return domain.FaceMatch{
		IsMatch:           float64(distance) < imghash.HashBits*thresholdPercent/100,
		Distance:          distance,
		SimilarityPercent: float64(imghash.HashBits-distance) / imghash.HashBits * 100,
	}
}

func matchThresholdPercent() float64 {
	if v := config.GetFaceConf().MatchThresholdPercent; v > 0 {
		return v
	}
	return defaultMatchThresholdPercent
}

func minImageBytes() int {
	if v := config.GetFaceConf().MinImageBytes; v > 0 {
		return v
	}
	return imghash.MinImageBytes
}
