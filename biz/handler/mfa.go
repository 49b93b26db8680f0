package handler

import (
	"context"
	"net/http"

	"attend_now/be/biz/middleware/jwt"
	"attend_now/be/biz/model/dto"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/mfa"
	"attend_now/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// EnrollFace 人脸注册接口
//
//	@Tags			mfa
//	@Summary		人脸注册接口
//	@Description	人脸注册接口
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.EnrollFaceReq	true	"enroll face request body"
//	@Param			Authorization	header		string				true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.EnrollFaceResp}
//	@Router			/api/v1/mfa/face/enroll [POST]
func EnrollFace(ctx context.Context, c *app.RequestContext) {
	var req dto.EnrollFaceReq
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	if err := mfa.NewDefault().EnrollFace(ctx, payload.UserID, req.FaceImage, clientInfo(c)); err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, dto.EnrollFaceResp{})
}

// VerifyFace 人脸校验接口
//
//	@Tags			mfa
//	@Summary		人脸校验接口
//	@Description	人脸校验接口
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.VerifyFaceReq	true	"verify face request body"
//	@Param			Authorization	header		string				true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.VerifyFaceResp}
//	@Router			/api/v1/mfa/face/verify [POST]
func VerifyFace(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyFaceReq
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	match, err := mfa.NewDefault().VerifyFace(ctx, payload.UserID, req.FaceImage, clientInfo(c))
	if err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, dto.VerifyFaceResp{
		IsMatch:           match.IsMatch,
		Distance:          match.Distance,
		SimilarityPercent: match.SimilarityPercent,
	})
}

// SetupTotp TOTP绑定接口
//
//	@Tags			mfa
//	@Summary		TOTP绑定接口
//	@Description	TOTP绑定接口
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.SetupTotpResp}
//	@Router			/api/v1/mfa/totp/setup [POST]
func SetupTotp(ctx context.Context, c *app.RequestContext) {
	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	provisioning, err := mfa.NewDefault().SetupTotp(ctx, payload.UserID)
	if err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, dto.SetupTotpResp{
		Secret:          provisioning.Secret,
		ProvisioningURI: provisioning.ProvisioningURI,
		QRCodePNG:       provisioning.QRCodePNG,
	})
}

// VerifyTotp TOTP校验接口
//
//	@Tags			mfa
//	@Summary		TOTP校验接口
//	@Description	TOTP校验接口，首次校验成功后TOTP生效
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.VerifyTotpReq	true	"verify totp request body"
//	@Param			Authorization	header		string				true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.VerifyTotpResp}
//	@Router			/api/v1/mfa/totp/verify [POST]
func VerifyTotp(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyTotpReq
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	if err := mfa.NewDefault().VerifyTotp(ctx, payload.UserID, req.Code, clientInfo(c)); err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, dto.VerifyTotpResp{TotpEnabled: true})
}
