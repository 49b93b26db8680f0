package storage

// LoginAttemptRecord is append-only: one row per login attempt,
// successful or not. CreatedAt doubles as the attempt timestamp.
type LoginAttemptRecord struct {
	GormModel
	UserId        string `gorm:"size:64;index"` // 未知账号时为空
	Account       string `gorm:"size:64;not null;index"`
	IpAddress     string `gorm:"size:45;not null"`
	UserAgent     string `gorm:"size:255"`
	Success       bool   `gorm:"not null;default:false"`
	FailureReason string `gorm:"size:100"`
}

func (LoginAttemptRecord) TableName() string {
	return "login_attempts"
}

// SecurityEventRecord is the append-only audit trail.
type SecurityEventRecord struct {
	GormModel
	UserId      string `gorm:"size:64;index"` // 系统级事件为空
	EventType   string `gorm:"size:50;not null"`
	Description string `gorm:"size:255;not null"`
	IpAddress   string `gorm:"size:45"`
	Severity    string `gorm:"size:20;not null;default:info"`
}

func (SecurityEventRecord) TableName() string {
	return "security_events"
}
