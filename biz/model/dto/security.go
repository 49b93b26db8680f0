package dto

type ListSecurityEventsReq struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
}

type SecurityEventResp struct {
	EventType   string `json:"event_type"`
	Description string `json:"description,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
	Severity    string `json:"severity"`
	CreatedAt   int64  `json:"created_at"`
}

type ListSecurityEventsResp struct {
	Events []SecurityEventResp `json:"events"`
}

type ListLoginAttemptsReq struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
}

type LoginAttemptResp struct {
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason,omitempty"`
	IPAddress     string `json:"ip_address,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

type ListLoginAttemptsResp struct {
	Attempts []LoginAttemptResp `json:"attempts"`
}
