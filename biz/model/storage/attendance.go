package storage

import "time"

type AttendanceRecord struct {
	GormModel
	UserId       string     `gorm:"size:64;not null;index:idx_attendance_user_day,priority:1"`
	CheckInTime  time.Time  `gorm:"not null;index:idx_attendance_user_day,priority:2"`
	CheckOutTime *time.Time // nil 表示当天未签退
	WorkDuration *float64   // 工时（小时），签退时写入
	Location     string     `gorm:"size:100"`
	FaceVerified bool       `gorm:"not null;default:false"`
	FaceImage    []byte     `gorm:"type:mediumblob"` // 打卡抓拍，仅做审计留存
	IpAddress    string     `gorm:"size:45"`
	UserAgent    string     `gorm:"size:255"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
