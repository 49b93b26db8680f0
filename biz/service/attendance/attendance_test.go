package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/errs"
	"attend_now/be/biz/service/security"

	"github.com/stretchr/testify/assert"
)

type fakeAttendanceRepo struct {
	createRet   *domain.Attendance
	createErr   error
	createInput *domain.Attendance

	byID        *domain.Attendance
	openRecord  *domain.Attendance
	betweenRet  *domain.Attendance
	betweenErr  error
	listRet     []*domain.Attendance
	listErr     error
	listLimit   int
	checkOutErr error
	checkOutID  uint
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	r.createInput = a
	if r.createRet != nil {
		return r.createRet, r.createErr
	}
	return a, r.createErr
}

func (r *fakeAttendanceRepo) FindByIDAndUser(_ context.Context, _ uint, _ string) (*domain.Attendance, error) {
	return r.byID, nil
}

func (r *fakeAttendanceRepo) FindOpenByUserSince(_ context.Context, _ string, _ time.Time) (*domain.Attendance, error) {
	return r.openRecord, nil
}

func (r *fakeAttendanceRepo) FindByUserBetween(_ context.Context, _ string, _, _ time.Time) (*domain.Attendance, error) {
	return r.betweenRet, r.betweenErr
}

func (r *fakeAttendanceRepo) ListByUser(_ context.Context, _ string, _, _ *time.Time, limit int) ([]*domain.Attendance, error) {
	r.listLimit = limit
	return r.listRet, r.listErr
}

func (r *fakeAttendanceRepo) SetCheckOut(_ context.Context, id uint, _ time.Time, _ float64) error {
	r.checkOutID = id
	return r.checkOutErr
}

type fakeUserRepo struct {
	byUserID *domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *fakeUserRepo) FindByUserID(_ context.Context, _ string) (*domain.User, error) {
	return r.byUserID, nil
}

func (r *fakeUserRepo) FindByAccount(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *domain.User) error {
	return nil
}

type fakeFaceVerifier struct {
	match  *domain.FaceMatch
	bizErr errs.Error
	called bool
}

func (v *fakeFaceVerifier) VerifyFace(_ context.Context, _ string, _ []byte, _ domain.ClientInfo) (*domain.FaceMatch, errs.Error) {
	v.called = true
	return v.match, v.bizErr
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

type fakeAttemptRepo struct{}

func (r *fakeAttemptRepo) Create(_ context.Context, _ *domain.LoginAttempt) error { return nil }
func (r *fakeAttemptRepo) CountFailuresSince(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}
func (r *fakeAttemptRepo) ListByAccountSince(_ context.Context, _ string, _ time.Time, _ int) ([]*domain.LoginAttempt, error) {
	return nil, nil
}

type fixture struct {
	records *fakeAttendanceRepo
	users   *fakeUserRepo
	faces   *fakeFaceVerifier
	events  *fakeEventRepo
	svc     *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		records: &fakeAttendanceRepo{},
		users:   &fakeUserRepo{byUserID: &domain.User{UserID: "u1", IsActive: true}},
		faces:   &fakeFaceVerifier{},
		events:  &fakeEventRepo{},
	}
	f.svc = New(f.records, f.users, f.faces, security.New(f.events, &fakeAttemptRepo{}))
	f.svc.now = func() time.Time { return now }
	return f
}

var (
	testNow    = time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local) // a Monday
	testClient = domain.ClientInfo{IPAddress: "10.0.0.1", UserAgent: "test-agent"}
)

func TestService_CheckIn(t *testing.T) {
	t.Run("user not exist", func(t *testing.T) {
		f := newFixture(testNow)
		f.users.byUserID = nil
		_, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{})
		assert.True(t, errs.ErrorEqual(errs.UserNotExist, bizErr))
	})

	t.Run("duplicate day", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.betweenRet = &domain.Attendance{ID: 1, UserID: "u1"}
		_, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{})
		assert.True(t, errs.ErrorEqual(errs.AlreadyCheckedIn, bizErr))
	})

	t.Run("closed record still blocks the day", func(t *testing.T) {
		f := newFixture(testNow)
		out := testNow.Add(-time.Hour)
		f.records.betweenRet = &domain.Attendance{ID: 1, UserID: "u1", CheckOutTime: &out}
		_, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{})
		assert.True(t, errs.ErrorEqual(errs.AlreadyCheckedIn, bizErr))
	})

	t.Run("face skipped when not enrolled", func(t *testing.T) {
		f := newFixture(testNow)
		record, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{Location: "office", Client: testClient})
		assert.Nil(t, bizErr)
		assert.False(t, f.faces.called)
		assert.False(t, record.FaceVerified)
		assert.True(t, record.CheckInTime.Equal(testNow))

		if assert.Len(t, f.events.created, 1) {
			assert.Equal(t, domain.EventCheckIn, f.events.created[0].EventType)
		}
	})

	t.Run("face required when enrolled", func(t *testing.T) {
		f := newFixture(testNow)
		f.users.byUserID.FaceEnrolled = true
		f.faces.match = &domain.FaceMatch{IsMatch: true, Distance: 3}

		record, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{Client: testClient})
		assert.Nil(t, bizErr)
		assert.True(t, f.faces.called)
		assert.True(t, record.FaceVerified)
	})

	t.Run("face mismatch denies check-in", func(t *testing.T) {
		f := newFixture(testNow)
		f.users.byUserID.FaceEnrolled = true
		f.faces.match = &domain.FaceMatch{IsMatch: false, Distance: 30}

		_, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{Client: testClient})
		assert.True(t, errs.ErrorEqual(errs.FaceVerifyFailed, bizErr))
		assert.Nil(t, f.records.createInput)
	})

	t.Run("face error propagates", func(t *testing.T) {
		f := newFixture(testNow)
		f.users.byUserID.FaceEnrolled = true
		f.faces.bizErr = errs.FaceImageInvalid

		_, bizErr := f.svc.CheckIn(context.Background(), "u1", CheckInParams{Client: testClient})
		assert.True(t, errs.ErrorEqual(errs.FaceImageInvalid, bizErr))
	})
}

// sharedAttendanceRepo keeps created records across calls, so two
// services wired to the same instance see each other's writes.
type sharedAttendanceRepo struct {
	fakeAttendanceRepo

	mu      sync.Mutex
	created []*domain.Attendance
}

func (r *sharedAttendanceRepo) FindByUserBetween(_ context.Context, _ string, _, _ time.Time) (*domain.Attendance, error) {
	r.mu.Lock()
	var rec *domain.Attendance
	if len(r.created) > 0 {
		rec = r.created[0]
	}
	r.mu.Unlock()
	// widen the gap between the duplicate check and the insert
	time.Sleep(10 * time.Millisecond)
	return rec, nil
}

func (r *sharedAttendanceRepo) Create(_ context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, a)
	return a, nil
}

func TestService_CheckIn_Concurrent(t *testing.T) {
	// handlers build a fresh service per request, so each goroutine gets
	// its own instance; only the shared repo and the process-wide lock
	// registry connect them
	records := &sharedAttendanceRepo{}
	users := &fakeUserRepo{byUserID: &domain.User{UserID: "u1", IsActive: true}}
	newSvc := func() *Service {
		s := New(records, users, &fakeFaceVerifier{}, security.New(&fakeEventRepo{}, &fakeAttemptRepo{}))
		s.now = func() time.Time { return testNow }
		return s
	}

	start := make(chan struct{})
	results := make(chan errs.Error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		svc := newSvc()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, bizErr := svc.CheckIn(context.Background(), "u1", CheckInParams{Client: testClient})
			results <- bizErr
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var rejected int
	for bizErr := range results {
		if bizErr != nil {
			rejected++
			assert.True(t, errs.ErrorEqual(errs.AlreadyCheckedIn, bizErr))
		}
	}
	assert.Equal(t, 1, rejected)
	assert.Len(t, records.created, 1)

	// the registry prunes entries once the last holder unlocks
	sessionLocks.mu.Lock()
	assert.Empty(t, sessionLocks.entries)
	sessionLocks.mu.Unlock()
}

func TestService_CheckOut(t *testing.T) {
	t.Run("no open record", func(t *testing.T) {
		f := newFixture(testNow)
		_, bizErr := f.svc.CheckOut(context.Background(), "u1", 0, testClient)
		assert.True(t, errs.ErrorEqual(errs.NoOpenSession, bizErr))
	})

	t.Run("already checked out", func(t *testing.T) {
		f := newFixture(testNow)
		out := testNow.Add(-time.Hour)
		f.records.byID = &domain.Attendance{ID: 7, UserID: "u1", CheckOutTime: &out}

		_, bizErr := f.svc.CheckOut(context.Background(), "u1", 7, testClient)
		assert.True(t, errs.ErrorEqual(errs.AlreadyCheckedOut, bizErr))
	})

	t.Run("by id computes rounded duration", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.byID = &domain.Attendance{
			ID:          7,
			UserID:      "u1",
			CheckInTime: testNow.Add(-(8*time.Hour + 20*time.Minute)),
		}

		record, bizErr := f.svc.CheckOut(context.Background(), "u1", 7, testClient)
		assert.Nil(t, bizErr)
		assert.Equal(t, uint(7), f.records.checkOutID)
		if assert.NotNil(t, record.WorkDuration) {
			assert.Equal(t, 8.33, *record.WorkDuration)
		}
		if assert.Len(t, f.events.created, 1) {
			assert.Equal(t, domain.EventCheckOut, f.events.created[0].EventType)
			assert.Equal(t, "checked out after 8.33 hours", f.events.created[0].Description)
		}
	})

	t.Run("falls back to today's open record", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.openRecord = &domain.Attendance{
			ID:          9,
			UserID:      "u1",
			CheckInTime: testNow.Add(-2 * time.Hour),
		}

		record, bizErr := f.svc.CheckOut(context.Background(), "u1", 0, testClient)
		assert.Nil(t, bizErr)
		assert.Equal(t, uint(9), record.ID)
		if assert.NotNil(t, record.WorkDuration) {
			assert.Equal(t, 2.0, *record.WorkDuration)
		}
	})
}

func TestService_TodayStatus(t *testing.T) {
	t.Run("not checked in", func(t *testing.T) {
		f := newFixture(testNow)
		status, bizErr := f.svc.TodayStatus(context.Background(), "u1")
		assert.Nil(t, bizErr)
		assert.False(t, status.CheckedIn)
		assert.False(t, status.CheckedOut)
	})

	t.Run("open record", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.betweenRet = &domain.Attendance{ID: 3, UserID: "u1", CheckInTime: testNow.Add(-time.Hour)}

		status, bizErr := f.svc.TodayStatus(context.Background(), "u1")
		assert.Nil(t, bizErr)
		assert.True(t, status.CheckedIn)
		assert.False(t, status.CheckedOut)
		assert.Equal(t, uint(3), status.AttendanceID)
	})

	t.Run("closed record", func(t *testing.T) {
		f := newFixture(testNow)
		out := testNow.Add(-time.Hour)
		d := 7.5
		f.records.betweenRet = &domain.Attendance{
			ID: 3, UserID: "u1",
			CheckInTime:  testNow.Add(-9 * time.Hour),
			CheckOutTime: &out,
			WorkDuration: &d,
		}

		status, bizErr := f.svc.TodayStatus(context.Background(), "u1")
		assert.Nil(t, bizErr)
		assert.True(t, status.CheckedIn)
		assert.True(t, status.CheckedOut)
		assert.Equal(t, 7.5, *status.WorkDuration)
	})
}

func TestService_Summary(t *testing.T) {
	day := func(d int, hours float64) *domain.Attendance {
		h := hours
		return &domain.Attendance{
			UserID:       "u1",
			CheckInTime:  time.Date(2025, 3, d, 9, 0, 0, 0, time.Local),
			WorkDuration: &h,
		}
	}

	t.Run("week with four attended days", func(t *testing.T) {
		f := newFixture(testNow)
		// 2025-03-10 is a Monday; the week holds 5 working days.
		f.records.listRet = []*domain.Attendance{
			day(13, 7.5), day(12, 8), day(11, 8.5), day(10, 8),
		}

		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		end := time.Date(2025, 3, 16, 0, 0, 0, 0, time.Local)
		summary, bizErr := f.svc.Summary(context.Background(), "u1", start, end)
		assert.Nil(t, bizErr)

		assert.Equal(t, 4, summary.TotalDays)
		assert.Equal(t, 5, summary.WorkingDays)
		assert.Equal(t, 32.0, summary.TotalHours)
		assert.Equal(t, 8.0, summary.AvgHoursPerDay)
		assert.Equal(t, 80.0, summary.AttendanceRate)
		assert.Equal(t, "2025-03-10", summary.PeriodStartDate)
		assert.Equal(t, "2025-03-16", summary.PeriodEndDate)
	})

	t.Run("weekend-only period has zero rate", func(t *testing.T) {
		f := newFixture(testNow)
		start := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local) // Saturday
		end := time.Date(2025, 3, 16, 0, 0, 0, 0, time.Local)   // Sunday

		summary, bizErr := f.svc.Summary(context.Background(), "u1", start, end)
		assert.Nil(t, bizErr)
		assert.Equal(t, 0, summary.WorkingDays)
		assert.Equal(t, 0.0, summary.AttendanceRate)
		assert.Equal(t, 0.0, summary.AvgHoursPerDay)
	})

	t.Run("open records contribute no hours", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.listRet = []*domain.Attendance{
			{UserID: "u1", CheckInTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)},
		}

		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		summary, bizErr := f.svc.Summary(context.Background(), "u1", start, start)
		assert.Nil(t, bizErr)
		assert.Equal(t, 1, summary.TotalDays)
		assert.Equal(t, 0.0, summary.TotalHours)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(testNow)
		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		_, bizErr := f.svc.Summary(context.Background(), "u1", start, start.AddDate(0, 0, -2))
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))
	})

	t.Run("list error", func(t *testing.T) {
		f := newFixture(testNow)
		f.records.listErr = errors.New("db error")
		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
		_, bizErr := f.svc.Summary(context.Background(), "u1", start, start)
		assert.True(t, errs.ErrorEqual(errs.ServerError, bizErr))
	})
}

func TestService_MonthlySummary(t *testing.T) {
	t.Run("month out of range", func(t *testing.T) {
		f := newFixture(testNow)
		_, bizErr := f.svc.MonthlySummary(context.Background(), "u1", 2025, 13)
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))

		_, bizErr = f.svc.MonthlySummary(context.Background(), "u1", 2025, 0)
		assert.True(t, errs.ErrorEqual(errs.ParamError, bizErr))
	})

	t.Run("march 2025 has 21 working days", func(t *testing.T) {
		f := newFixture(testNow)
		summary, bizErr := f.svc.MonthlySummary(context.Background(), "u1", 2025, 3)
		assert.Nil(t, bizErr)
		assert.Equal(t, 21, summary.WorkingDays)
		assert.Equal(t, "2025-03-01", summary.PeriodStartDate)
		assert.Equal(t, "2025-03-31", summary.PeriodEndDate)
	})
}

func TestService_Records(t *testing.T) {
	f := newFixture(testNow)
	f.records.listRet = []*domain.Attendance{{ID: 1}, {ID: 2}}

	list, bizErr := f.svc.Records(context.Background(), "u1", nil, nil, 0)
	assert.Nil(t, bizErr)
	assert.Len(t, list, 2)
	assert.Equal(t, defaultHistoryLimit, f.records.listLimit)
}

func TestService_Dashboard(t *testing.T) {
	f := newFixture(testNow)
	f.records.listRet = []*domain.Attendance{{ID: 1}}

	dash, bizErr := f.svc.Dashboard(context.Background(), "u1")
	assert.Nil(t, bizErr)
	assert.NotNil(t, dash.Today)
	assert.NotNil(t, dash.CurrentMonth)
	assert.Equal(t, 21, dash.CurrentMonth.WorkingDays)
	assert.Len(t, dash.Recent, 1)
}

func TestDayBounds(t *testing.T) {
	start, end := dayBounds(time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), start)
	assert.True(t, end.Before(time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)))
	assert.True(t, end.After(time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.33, round2(8.333333))
	assert.Equal(t, 8.34, round2(8.336))
	assert.Equal(t, 0.0, round2(0))
}
