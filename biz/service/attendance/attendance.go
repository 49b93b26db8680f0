package attendance

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"attend_now/be/biz/config"
	"attend_now/be/biz/dal/repo"
	"attend_now/be/biz/db/mysql"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/mfa"
	"attend_now/be/biz/service/security"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const defaultHistoryLimit = 31

// FaceVerifier matches a capture against a user's enrolled fingerprint.
type FaceVerifier interface {
	VerifyFace(ctx context.Context, userID string, image []byte, client domain.ClientInfo) (*domain.FaceMatch, errs.Error)
}

type Service struct {
	records repo.AttendanceRepository
	users   repo.UserRepository
	faces   FaceVerifier
	audit   *security.Logger

	now func() time.Time
}

func New(records repo.AttendanceRepository, users repo.UserRepository,
	faces FaceVerifier, audit *security.Logger) *Service {
	return &Service{
		records: records,
		users:   users,
		faces:   faces,
		audit:   audit,
		now:     time.Now,
	}
}

func NewDefault() *Service {
	db := mysql.GetDbConn()
	return New(
		repo.NewAttendanceRepositoryGorm(db),
		repo.NewUserRepositoryGorm(db),
		mfa.NewDefault(),
		security.NewDefault(),
	)
}

// sessionLocks serializes check-in and check-out per user so two
// concurrent requests cannot both pass the one-record-per-day check.
// It is process-wide: handlers build a fresh Service per request, so
// the registry cannot live on the Service itself. Entries are
// refcounted and dropped once the last holder unlocks.
var sessionLocks = &keyedMutex{entries: make(map[string]*lockEntry)}

type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

func (k *keyedMutex) unlock(key string) {
	k.mu.Lock()
	e := k.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// dayBounds returns the inclusive bounds of t's calendar day in local
// time. Day membership is decided by the check-in timestamp.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type CheckInParams struct {
	Location  string
	FaceImage []byte
	Client    domain.ClientInfo
}

func (s *Service) CheckIn(ctx context.Context, userID string, params CheckInParams) (*domain.Attendance, errs.Error) {
	sessionLocks.lock(userID)
	defer sessionLocks.unlock(userID)

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user failed, err: %v", err)
		return nil, errs.ServerError
	}
	if user == nil {
		return nil, errs.UserNotExist
	}

	now := s.now()
	dayStart, dayEnd := dayBounds(now)

	existing, err := s.records.FindByUserBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		hlog.CtxErrorf(ctx, "find attendance failed, err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.AlreadyCheckedIn
	}

	faceVerified := false
	if user.FaceEnrolled {
		match, bizErr := s.faces.VerifyFace(ctx, userID, params.FaceImage, params.Client)
		if bizErr != nil {
			return nil, bizErr
		}
		if !match.IsMatch {
			return nil, errs.FaceVerifyFailed
		}
		faceVerified = true
	}

	record, err := s.records.Create(ctx, &domain.Attendance{
		UserID:       userID,
		CheckInTime:  now,
		Location:     params.Location,
		FaceVerified: faceVerified,
		FaceImage:    params.FaceImage,
		IPAddress:    params.Client.IPAddress,
		UserAgent:    params.Client.UserAgent,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "create attendance failed, err: %v", err)
		return nil, errs.ServerError
	}

	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:      userID,
		EventType:   domain.EventCheckIn,
		Description: "checked in at " + params.Location,
		IPAddress:   params.Client.IPAddress,
	})
	return record, nil
}

// CheckOut closes a record, by id when one is given or by falling back
// to today's open record.
func (s *Service) CheckOut(ctx context.Context, userID string, attendanceID uint,
	client domain.ClientInfo) (*domain.Attendance, errs.Error) {
	sessionLocks.lock(userID)
	defer sessionLocks.unlock(userID)

	now := s.now()

	var record *domain.Attendance
	var err error
	if attendanceID != 0 {
		record, err = s.records.FindByIDAndUser(ctx, attendanceID, userID)
	} else {
		dayStart, _ := dayBounds(now)
		record, err = s.records.FindOpenByUserSince(ctx, userID, dayStart)
	}
	if err != nil {
		hlog.CtxErrorf(ctx, "find attendance failed, err: %v", err)
		return nil, errs.ServerError
	}
	if record == nil {
		return nil, errs.NoOpenSession
	}
	if record.CheckedOut() {
		return nil, errs.AlreadyCheckedOut
	}

	duration := round2(now.Sub(record.CheckInTime).Hours())
	if err = s.records.SetCheckOut(ctx, record.ID, now, duration); err != nil {
		hlog.CtxErrorf(ctx, "set check-out failed, err: %v", err)
		return nil, errs.ServerError
	}
	record.CheckOutTime = &now
	record.WorkDuration = &duration

	s.audit.Record(ctx, &domain.SecurityEvent{
		UserID:      userID,
		EventType:   domain.EventCheckOut,
		Description: fmt.Sprintf("checked out after %.2f hours", duration),
		IPAddress:   client.IPAddress,
	})
	return record, nil
}

func (s *Service) TodayStatus(ctx context.Context, userID string) (*domain.TodayStatus, errs.Error) {
	dayStart, dayEnd := dayBounds(s.now())
	record, err := s.records.FindByUserBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		hlog.CtxErrorf(ctx, "find attendance failed, err: %v", err)
		return nil, errs.ServerError
	}
	if record == nil {
		return &domain.TodayStatus{}, nil
	}

	checkIn := record.CheckInTime
	return &domain.TodayStatus{
		CheckedIn:    true,
		CheckedOut:   record.CheckedOut(),
		AttendanceID: record.ID,
		CheckInTime:  &checkIn,
		CheckOutTime: record.CheckOutTime,
		WorkDuration: record.WorkDuration,
	}, nil
}

func (s *Service) Records(ctx context.Context, userID string, start, end *time.Time,
	limit int) ([]*domain.Attendance, errs.Error) {
	if limit <= 0 {
		if limit = config.GetAttendanceConf().DefaultHistoryLimit; limit <= 0 {
			limit = defaultHistoryLimit
		}
	}
	records, err := s.records.ListByUser(ctx, userID, start, end, limit)
	if err != nil {
		hlog.CtxErrorf(ctx, "list attendance failed, err: %v", err)
		return nil, errs.ServerError
	}
	return records, nil
}

// Summary aggregates the period [start, end] with both bounds
// interpreted as whole days. Working days are Monday through Friday;
// the rate measures attended days against them and can exceed 100 when
// weekends were worked.
func (s *Service) Summary(ctx context.Context, userID string, start, end time.Time) (*domain.AttendanceSummary, errs.Error) {
	periodStart, _ := dayBounds(start)
	_, periodEnd := dayBounds(end)
	if periodEnd.Before(periodStart) {
		return nil, errs.ParamError.SetMsg("end date before start date")
	}

	records, err := s.records.ListByUser(ctx, userID, &periodStart, &periodEnd, 0)
	if err != nil {
		hlog.CtxErrorf(ctx, "list attendance failed, err: %v", err)
		return nil, errs.ServerError
	}

	summary := &domain.AttendanceSummary{
		TotalDays:       len(records),
		WorkingDays:     countWorkingDays(periodStart, periodEnd),
		PeriodStartDate: periodStart.Format(time.DateOnly),
		PeriodEndDate:   end.Format(time.DateOnly),
	}
	for _, r := range records {
		if r.WorkDuration != nil {
			summary.TotalHours += *r.WorkDuration
		}
	}
	summary.TotalHours = round2(summary.TotalHours)
	if summary.TotalDays > 0 {
		summary.AvgHoursPerDay = round2(summary.TotalHours / float64(summary.TotalDays))
	}
	if summary.WorkingDays > 0 {
		summary.AttendanceRate = round2(float64(summary.TotalDays) / float64(summary.WorkingDays) * 100)
	}
	return summary, nil
}

func countWorkingDays(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

func (s *Service) MonthlySummary(ctx context.Context, userID string, year, month int) (*domain.AttendanceSummary, errs.Error) {
	if month < 1 || month > 12 {
		return nil, errs.ParamError.SetMsg("month out of range")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return s.Summary(ctx, userID, start, end)
}

type Dashboard struct {
	Today        *domain.TodayStatus
	CurrentMonth *domain.AttendanceSummary
	Recent       []*domain.Attendance
}

func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, errs.Error) {
	today, bizErr := s.TodayStatus(ctx, userID)
	if bizErr != nil {
		return nil, bizErr
	}

	now := s.now()
	month, bizErr := s.MonthlySummary(ctx, userID, now.Year(), int(now.Month()))
	if bizErr != nil {
		return nil, bizErr
	}

	recent, bizErr := s.Records(ctx, userID, nil, nil, 7)
	if bizErr != nil {
		return nil, bizErr
	}

	return &Dashboard{
		Today:        today,
		CurrentMonth: month,
		Recent:       recent,
	}, nil
}
