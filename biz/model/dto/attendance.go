package dto

type CheckInReq struct {
	Location  string `json:"location" validate:"max=128"`
	FaceImage []byte `json:"face_image"`
}

type CheckOutReq struct {
	AttendanceID uint `json:"attendance_id"`
}

type AttendanceRecordResp struct {
	AttendanceID uint     `json:"attendance_id"`
	CheckInTime  int64    `json:"check_in_time"`
	CheckOutTime *int64   `json:"check_out_time,omitempty"`
	WorkDuration *float64 `json:"work_duration,omitempty"`
	Location     string   `json:"location,omitempty"`
	FaceVerified bool     `json:"face_verified"`
}

type TodayStatusReq struct{}

type TodayStatusResp struct {
	CheckedIn    bool     `json:"checked_in"`
	CheckedOut   bool     `json:"checked_out"`
	AttendanceID uint     `json:"attendance_id,omitempty"`
	CheckInTime  *int64   `json:"check_in_time,omitempty"`
	CheckOutTime *int64   `json:"check_out_time,omitempty"`
	WorkDuration *float64 `json:"work_duration,omitempty"`
}

type ListRecordsReq struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=366"`
}

type ListRecordsResp struct {
	Records []AttendanceRecordResp `json:"records"`
}

type SummaryReq struct {
	StartDate string `query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"required,datetime=2006-01-02"`
}

type SummaryResp struct {
	TotalDays       int     `json:"total_days"`
	WorkingDays     int     `json:"working_days"`
	TotalHours      float64 `json:"total_hours"`
	AvgHoursPerDay  float64 `json:"avg_hours_per_day"`
	AttendanceRate  float64 `json:"attendance_rate"`
	PeriodStartDate string  `json:"period_start_date"`
	PeriodEndDate   string  `json:"period_end_date"`
}

type MonthlySummaryReq struct {
	Year  int `query:"year" validate:"required,min=2000,max=2200"`
	Month int `query:"month" validate:"required,min=1,max=12"`
}

type DashboardReq struct{}

type DashboardResp struct {
	Today        TodayStatusResp        `json:"today"`
	CurrentMonth SummaryResp            `json:"current_month"`
	Recent       []AttendanceRecordResp `json:"recent"`
}
