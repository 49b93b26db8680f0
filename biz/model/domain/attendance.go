package domain

import "time"

type Attendance struct {
	ID           uint
	UserID       string
	CheckInTime  time.Time
	CheckOutTime *time.Time
	WorkDuration *float64
	Location     string
	FaceVerified bool
	FaceImage    []byte
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// CheckedOut reports whether the record is terminal for its day.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}

type TodayStatus struct {
	CheckedIn    bool
	CheckedOut   bool
	AttendanceID uint
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	WorkDuration *float64
}

type AttendanceSummary struct {
	TotalDays       int
	WorkingDays     int
	TotalHours      float64
	AvgHoursPerDay  float64
	AttendanceRate  float64
	PeriodStartDate string
	PeriodEndDate   string
}
