package handler

import (
	"context"
	"net/http"
	"time"

	"attend_now/be/biz/middleware/jwt"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/dto"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/attendance"
	"attend_now/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func attendanceToResp(a *domain.Attendance) dto.AttendanceRecordResp {
	out := dto.AttendanceRecordResp{
		AttendanceID: a.ID,
		CheckInTime:  a.CheckInTime.Unix(),
		Location:     a.Location,
		FaceVerified: a.FaceVerified,
		WorkDuration: a.WorkDuration,
	}
	if a.CheckOutTime != nil {
		t := a.CheckOutTime.Unix()
		out.CheckOutTime = &t
	}
	return out
}

func summaryToResp(s *domain.AttendanceSummary) dto.SummaryResp {
	return dto.SummaryResp{
		TotalDays:       s.TotalDays,
		WorkingDays:     s.WorkingDays,
		TotalHours:      s.TotalHours,
		AvgHoursPerDay:  s.AvgHoursPerDay,
		AttendanceRate:  s.AttendanceRate,
		PeriodStartDate: s.PeriodStartDate,
		PeriodEndDate:   s.PeriodEndDate,
	}
}

func todayStatusToResp(s *domain.TodayStatus) dto.TodayStatusResp {
	out := dto.TodayStatusResp{
		CheckedIn:    s.CheckedIn,
		CheckedOut:   s.CheckedOut,
		AttendanceID: s.AttendanceID,
		WorkDuration: s.WorkDuration,
	}
	if s.CheckInTime != nil {
		t := s.CheckInTime.Unix()
		out.CheckInTime = &t
	}
	if s.CheckOutTime != nil {
		t := s.CheckOutTime.Unix()
		out.CheckOutTime = &t
	}
	return out
}

// CheckIn 上班打卡接口
//
//	@Tags			attendance
//	@Summary		上班打卡接口
//	@Description	上班打卡接口，已注册人脸的用户需携带人脸图片
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.CheckInReq	true	"check-in request body"
//	@Param			Authorization	header		string			true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.AttendanceRecordResp}
//	@Router			/api/v1/attendance/check_in [POST]
func CheckIn(ctx context.Context, c *app.RequestContext) {
	var req dto.CheckInReq
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

	record, err := attendance.NewDefault().CheckIn(ctx, payload.UserID, attendance.CheckInParams{
		Location:  req.Location,
		FaceImage: req.FaceImage,
		Client:    clientInfo(c),
	})
	if err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, attendanceToResp(record))
}

// CheckOut 下班打卡接口
//
//	@Tags			attendance
//	@Summary		下班打卡接口
//	@Description	下班打卡接口，缺省记录ID时关闭当天未结束的打卡
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.CheckOutReq	true	"check-out request body"
//	@Param			Authorization	header		string			true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.AttendanceRecordResp}
//	@Router			/api/v1/attendance/check_out [POST]
func CheckOut(ctx context.Context, c *app.RequestContext) {
	var req dto.CheckOutReq
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

	record, err := attendance.NewDefault().CheckOut(ctx, payload.UserID, req.AttendanceID, clientInfo(c))
	if err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, attendanceToResp(record))
}

// TodayStatus 当天打卡状态接口
//
//	@Tags			attendance
//	@Summary		当天打卡状态接口
//	@Description	当天打卡状态接口
//	@Produce		json
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.TodayStatusResp}
//	@Router			/api/v1/attendance/today [GET]
func TodayStatus(ctx context.Context, c *app.RequestContext) {
	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	status, err := attendance.NewDefault().TodayStatus(ctx, payload.UserID)
	if err != nil {
		resp.FailResp(c, err)
		return
	}

	resp.SuccessResp(c, todayStatusToResp(status))
}

// ListRecords 打卡记录接口
//
//	@Tags			attendance
//	@Summary		打卡记录接口
//	@Description	打卡记录接口，按打卡时间倒序
//	@Produce		json
//	@Param			start_date		query		string	false	"start date YYYY-MM-DD"
//	@Param			end_date		query		string	false	"end date YYYY-MM-DD"
//	@Param			limit			query		int		false	"record limit"
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.ListRecordsResp}
//	@Router			/api/v1/attendance/records [GET]
func ListRecords(ctx context.Context, c *app.RequestContext) {
	var req dto.ListRecordsReq
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

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, req.StartDate, time.Local)
		if err != nil {
			resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid start_date"), http.StatusBadRequest)
			return
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation(time.DateOnly, req.EndDate, time.Local)
		if err != nil {
			resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid end_date"), http.StatusBadRequest)
			return
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	records, bizErr := attendance.NewDefault().Records(ctx, payload.UserID, start, end, req.Limit)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.ListRecordsResp{Records: make([]dto.AttendanceRecordResp, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, attendanceToResp(r))
	}
	resp.SuccessResp(c, out)
}

// Summary 考勤汇总接口
//
//	@Tags			attendance
//	@Summary		考勤汇总接口
//	@Description	考勤汇总接口，统计区间内的出勤天数和工时
//	@Produce		json
//	@Param			start_date		query		string	true	"start date YYYY-MM-DD"
//	@Param			end_date		query		string	true	"end date YYYY-MM-DD"
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.SummaryResp}
//	@Router			/api/v1/attendance/summary [GET]
func Summary(ctx context.Context, c *app.RequestContext) {
	var req dto.SummaryReq
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

	start, err := time.ParseInLocation(time.DateOnly, req.StartDate, time.Local)
	if err != nil {
		resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid start_date"), http.StatusBadRequest)
		return
	}
	end, err := time.ParseInLocation(time.DateOnly, req.EndDate, time.Local)
	if err != nil {
		resp.AbortWithErr(c, errs.ParamError.SetMsg("invalid end_date"), http.StatusBadRequest)
		return
	}

	summary, bizErr := attendance.NewDefault().Summary(ctx, payload.UserID, start, end)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, summaryToResp(summary))
}

// MonthlySummary 月度考勤汇总接口
//
//	@Tags			attendance
//	@Summary		月度考勤汇总接口
//	@Description	月度考勤汇总接口
//	@Produce		json
//	@Param			year			query		int		true	"year"
//	@Param			month			query		int		true	"month 1-12"
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.SummaryResp}
//	@Router			/api/v1/attendance/summary/monthly [GET]
func MonthlySummary(ctx context.Context, c *app.RequestContext) {
	var req dto.MonthlySummaryReq
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

	summary, bizErr := attendance.NewDefault().MonthlySummary(ctx, payload.UserID, req.Year, req.Month)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, summaryToResp(summary))
}

// GetDashboard 考勤看板接口
//
//	@Tags			attendance
//	@Summary		考勤看板接口
//	@Description	考勤看板接口，返回当天状态、本月汇总和近期记录
//	@Produce		json
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.DashboardResp}
//	@Router			/api/v1/attendance/dashboard [GET]
func GetDashboard(ctx context.Context, c *app.RequestContext) {
	payload := jwt.GetPayload(ctx)
	if payload.UserID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	dash, bizErr := attendance.NewDefault().Dashboard(ctx, payload.UserID)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.DashboardResp{
		Today:        todayStatusToResp(dash.Today),
		CurrentMonth: summaryToResp(dash.CurrentMonth),
		Recent:       make([]dto.AttendanceRecordResp, 0, len(dash.Recent)),
	}
	for _, r := range dash.Recent {
		out.Recent = append(out.Recent, attendanceToResp(r))
	}
	resp.SuccessResp(c, out)
}
