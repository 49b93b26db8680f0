package repo

import (
	"context"
	"time"

	"attend_now/be/biz/model/convert"
	"attend_now/be/biz/model/domain"
	"attend_now/be/biz/model/storage"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error)
	FindByIDAndUser(ctx context.Context, id uint, userID string) (*domain.Attendance, error)
	// FindOpenByUserSince returns the user's record with no check-out
	// time whose check-in is at or after since, if any.
	FindOpenByUserSince(ctx context.Context, userID string, since time.Time) (*domain.Attendance, error)
	// FindByUserBetween returns the user's earliest record whose
	// check-in falls inside [start, end].
	FindByUserBetween(ctx context.Context, userID string, start, end time.Time) (*domain.Attendance, error)
	// ListByUser returns records ordered by check-in time descending.
	// Nil bounds are open-ended.
	ListByUser(ctx context.Context, userID string, start, end *time.Time, limit int) ([]*domain.Attendance, error)
	// SetCheckOut writes the terminal check-out fields of a record.
	SetCheckOut(ctx context.Context, id uint, checkOut time.Time, workDuration float64) error
}

type attendanceRepositoryGorm struct {
	db *gorm.DB
}

func NewAttendanceRepositoryGorm(db *gorm.DB) AttendanceRepository {
	return &attendanceRepositoryGorm{db: db}
}

func (r *attendanceRepositoryGorm) Create(ctx context.Context, a *domain.Attendance) (*domain.Attendance, error) {
	m := convert.AttendanceDomainToRecord(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return convert.AttendanceRecordToDomain(m), nil
}

func (r *attendanceRepositoryGorm) FindByIDAndUser(ctx context.Context, id uint, userID string) (*domain.Attendance, error) {
	var m storage.AttendanceRecord
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.AttendanceRecordToDomain(&m), nil
}

func (r *attendanceRepositoryGorm) FindOpenByUserSince(ctx context.Context, userID string, since time.Time) (*domain.Attendance, error) {
	var m storage.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_in_time >= ? AND check_out_time IS NULL", userID, since).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.AttendanceRecordToDomain(&m), nil
}

func (r *attendanceRepositoryGorm) FindByUserBetween(ctx context.Context, userID string, start, end time.Time) (*domain.Attendance, error) {
	var m storage.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_in_time >= ? AND check_in_time <= ?", userID, start, end).
		Order("check_in_time ASC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return convert.AttendanceRecordToDomain(&m), nil
}

func (r *attendanceRepositoryGorm) ListByUser(ctx context.Context, userID string, start, end *time.Time, limit int) ([]*domain.Attendance, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("check_in_time >= ?", *start)
	}
	if end != nil {
		q = q.Where("check_in_time <= ?", *end)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ms []*storage.AttendanceRecord
	if err := q.Order("check_in_time DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return convert.AttendanceRecordsToDomain(ms), nil
}

func (r *attendanceRepositoryGorm) SetCheckOut(ctx context.Context, id uint, checkOut time.Time, workDuration float64) error {
	return r.db.WithContext(ctx).
		Model(&storage.AttendanceRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"check_out_time": checkOut,
			"work_duration":  workDuration,
		}).Error
}
