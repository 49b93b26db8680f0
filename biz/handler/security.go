package handler

import (
	"context"
	"net/http"
	"time"

	"attend_now/be/biz/middleware/jwt"
	"attend_now/be/biz/model/dto"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/security"
	"attend_now/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const attemptHistoryWindow = 24 * time.Hour

// ListSecurityEvents 安全事件查询接口
//
//	@Tags			security
//	@Summary		安全事件查询接口
//	@Description	安全事件查询接口，按时间倒序
//	@Produce		json
//	@Param			limit			query		int		false	"event limit"
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.ListSecurityEventsResp}
//	@Router			/api/v1/security/events [GET]
func ListSecurityEvents(ctx context.Context, c *app.RequestContext) {
	var req dto.ListSecurityEventsReq
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

	events, bizErr := security.NewDefault().RecentEvents(ctx, payload.UserID, req.Limit)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.ListSecurityEventsResp{Events: make([]dto.SecurityEventResp, 0, len(events))}
	for _, ev := range events {
		out.Events = append(out.Events, dto.SecurityEventResp{
			EventType:   ev.EventType,
			Description: ev.Description,
			IPAddress:   ev.IPAddress,
			Severity:    ev.Severity,
			CreatedAt:   ev.CreatedAt.Unix(),
		})
	}
	resp.SuccessResp(c, out)
}

// ListLoginAttempts 登录记录查询接口
//
//	@Tags			security
//	@Summary		登录记录查询接口
//	@Description	登录记录查询接口，按时间倒序
//	@Produce		json
//	@Param			limit			query		int		false	"attempt limit"
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.ListLoginAttemptsResp}
//	@Router			/api/v1/security/login_attempts [GET]
func ListLoginAttempts(ctx context.Context, c *app.RequestContext) {
	var req dto.ListLoginAttemptsReq
	if err := c.BindAndValidate(&req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	payload := jwt.GetPayload(ctx)
	if payload.Account == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	attempts, bizErr := security.NewDefault().RecentAttempts(ctx, payload.Account,
		time.Now().Add(-attemptHistoryWindow), req.Limit)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.ListLoginAttemptsResp{Attempts: make([]dto.LoginAttemptResp, 0, len(attempts))}
	for _, a := range attempts {
		out.Attempts = append(out.Attempts, dto.LoginAttemptResp{
			Success:       a.Success,
			FailureReason: a.FailureReason,
			IPAddress:     a.IPAddress,
			UserAgent:     a.UserAgent,
			CreatedAt:     a.CreatedAt.Unix(),
		})
	}
	resp.SuccessResp(c, out)
}
