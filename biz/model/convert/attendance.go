package convert

import (
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"
)

func AttendanceDomainToRecord(a *domain.Attendance) *storage.AttendanceRecord {
	if a == nil {
		return nil
	}
	return &storage.AttendanceRecord{
		GormModel: storage.GormModel{
			ID:        a.ID,
			CreatedAt: a.CreatedAt,
		},
		UserId:       a.UserID,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		WorkDuration: a.WorkDuration,
		Location:     a.Location,
		FaceVerified: a.FaceVerified,
		FaceImage:    a.FaceImage,
		IpAddress:    a.IPAddress,
		UserAgent:    a.UserAgent,
	}
}

func AttendanceRecordToDomain(m *storage.AttendanceRecord) *domain.Attendance {
	if m == nil {
		return nil
	}
	return &domain.Attendance{
		ID:           m.ID,
		UserID:       m.UserId,
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		WorkDuration: m.WorkDuration,
		Location:     m.Location,
		FaceVerified: m.FaceVerified,
		FaceImage:    m.FaceImage,
		IPAddress:    m.IpAddress,
		UserAgent:    m.UserAgent,
		CreatedAt:    m.CreatedAt,
	}
}

func AttendanceRecordsToDomain(ms []*storage.AttendanceRecord) []*domain.Attendance {
	out := make([]*domain.Attendance, 0, len(ms))
	for _, m := range ms {
		out = append(out, AttendanceRecordToDomain(m))
	}
	return out
}
