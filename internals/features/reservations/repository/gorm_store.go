// file: internals/features/reservations/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"labreserve_backend/internals/constants"
	labModel "labreserve_backend/internals/features/labs/model"
	"labreserve_backend/internals/features/reservations/model"
	"labreserve_backend/internals/features/reservations/service"
	"labreserve_backend/internals/helpers/dbtime"
)

/* =======================================================
   GormStore implements the engine's LabCatalog,
   TimetableReader and ReservationStore over Postgres.
   ======================================================= */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

const dateLayout = "2006-01-02"

/* ---------- LabCatalog ---------- */

func (s *GormStore) ListLabs(ctx context.Context) ([]service.Lab, error) {
	var rows []labModel.LabModel
	if err := s.DB.WithContext(ctx).
		Where("lab_is_active = ?", true).
		Order("lab_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]service.Lab, 0, len(rows))
	for _, m := range rows {
		out = append(out, toServiceLab(m))
	}
	return out, nil
}

func (s *GormStore) GetLab(ctx context.Context, labNumber string) (service.Lab, error) {
	var m labModel.LabModel
	if err := s.DB.WithContext(ctx).
		Where("lab_number = ? AND lab_is_active = ?", labNumber, true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.Lab{}, service.ErrNotFound
		}
		return service.Lab{}, err
	}
	return toServiceLab(m), nil
}

/* ---------- TimetableReader ---------- */

func (s *GormStore) ListScheduleBlocks(ctx context.Context, labNumber, date string) ([]service.ScheduleBlock, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	var rows []labModel.ScheduleBlockModel
	if err := s.DB.WithContext(ctx).
		Where("schedule_block_lab_number = ? AND schedule_block_date = ?", labNumber, day).
		Order("schedule_block_start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]service.ScheduleBlock, 0, len(rows))
	for _, m := range rows {
		out = append(out, service.ScheduleBlock{
			LabNumber:   m.ScheduleBlockLabNumber,
			Date:        time.Time(m.ScheduleBlockDate).Format(dateLayout),
			Session:     constants.Session(m.ScheduleBlockSession),
			Class:       m.ScheduleBlockClass,
			Section:     m.ScheduleBlockSection,
			Batch:       m.ScheduleBlockBatch,
			Subject:     m.ScheduleBlockSubject,
			FacultyName: m.ScheduleBlockFacultyName,
			StartTime:   todHHMM(m.ScheduleBlockStartTime),
			EndTime:     todHHMM(m.ScheduleBlockEndTime),
		})
	}
	return out, nil
}

/* ---------- ReservationStore ---------- */

func (s *GormStore) Insert(ctx context.Context, r *service.Reservation) error {
	day, err := parseDate(r.Date)
	if err != nil {
		return err
	}
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		return err
	}
	end, err := dbtime.Parse(r.EndTime)
	if err != nil {
		return err
	}

	m := model.ReservationModel{
		ReservationLabNumber:       r.LabNumber,
		ReservationDate:            day,
		ReservationStartTime:       start,
		ReservationEndTime:         end,
		ReservationNumParticipants: r.NumParticipants,
		ReservationPurpose:         string(r.Purpose),
		ReservationDescription:     r.Description,
		ReservationUserEmail:       r.UserEmail,
		ReservationUserName:        r.UserName,
		ReservationUrgency:         string(r.Urgency),
		ReservationStatus:          string(r.Status),
		ReservationPriorityScore:   r.PriorityScore,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.Status == constants.StatusApproved {
			// transactional check-and-insert: no two approved rows may
			// overlap on the same lab/date
			var n int64
			if err := tx.Model(&model.ReservationModel{}).
				Where("reservation_lab_number = ? AND reservation_date = ? AND reservation_status = ?",
					r.LabNumber, day, string(constants.StatusApproved)).
				Where("reservation_start_time < ? AND reservation_end_time > ?", end, start).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return service.ErrConflict
			}
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) || isUniqueViolation(err) {
			return service.ErrConflict
		}
		return err
	}

	r.ID = m.ReservationID
	r.CreatedAt = m.ReservationCreatedAt
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (service.Reservation, error) {
	var m model.ReservationModel
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.Reservation{}, service.ErrNotFound
		}
		return service.Reservation{}, err
	}
	return toServiceReservation(m), nil
}

func (s *GormStore) ListByLabDate(ctx context.Context, labNumber, date string, statuses []constants.ReservationStatus) ([]service.Reservation, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx).
		Where("reservation_lab_number = ? AND reservation_date = ?", labNumber, day)
	if len(statuses) > 0 {
		vals := make([]string, 0, len(statuses))
		for _, st := range statuses {
			vals = append(vals, string(st))
		}
		db = db.Where("reservation_status IN ?", vals)
	}
	var rows []model.ReservationModel
	if err := db.Order("reservation_start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toServiceReservations(rows), nil
}

func (s *GormStore) ListByUser(ctx context.Context, email string) ([]service.Reservation, error) {
	var rows []model.ReservationModel
	if err := s.DB.WithContext(ctx).
		Where("reservation_user_email = ?", email).
		Order("reservation_created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toServiceReservations(rows), nil
}

func (s *GormStore) ListByStatus(ctx context.Context, status constants.ReservationStatus) ([]service.Reservation, error) {
	db := s.DB.WithContext(ctx).Model(&model.ReservationModel{})
	if status != "" {
		db = db.Where("reservation_status = ?", string(status))
	}
	var rows []model.ReservationModel
	if err := db.Order("reservation_date ASC, reservation_start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toServiceReservations(rows), nil
}

func (s *GormStore) UpdateStatus(ctx context.Context, id int64, status constants.ReservationStatus) error {
	tx := s.DB.WithContext(ctx).Model(&model.ReservationModel{}).
		Where("reservation_id = ?", id).
		Update("reservation_status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

/* ---------- mapping helpers ---------- */

func toServiceLab(m labModel.LabModel) service.Lab {
	var equipment []string
	if len(m.LabEquipment) > 0 {
		_ = sonic.Unmarshal(m.LabEquipment, &equipment)
	}
	return service.Lab{
		LabNumber: m.LabNumber,
		Building:  m.LabBuilding,
		Floor:     m.LabFloor,
		Capacity:  m.LabCapacity,
		Equipment: equipment,
	}
}

func toServiceReservation(m model.ReservationModel) service.Reservation {
	return service.Reservation{
		ID:              m.ReservationID,
		LabNumber:       m.ReservationLabNumber,
		Date:            time.Time(m.ReservationDate).Format(dateLayout),
		StartTime:       todHHMM(m.ReservationStartTime),
		EndTime:         todHHMM(m.ReservationEndTime),
		NumParticipants: m.ReservationNumParticipants,
		Purpose:         constants.Purpose(m.ReservationPurpose),
		Description:     m.ReservationDescription,
		UserEmail:       m.ReservationUserEmail,
		UserName:        m.ReservationUserName,
		Urgency:         constants.Urgency(m.ReservationUrgency),
		Status:          constants.ReservationStatus(m.ReservationStatus),
		PriorityScore:   m.ReservationPriorityScore,
		CreatedAt:       m.ReservationCreatedAt,
	}
}

func toServiceReservations(rows []model.ReservationModel) []service.Reservation {
	out := make([]service.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, toServiceReservation(m))
	}
	return out
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func todHHMM(t dbtime.Tod) string {
	if t.Time.IsZero() {
		return ""
	}
	return t.HHMM()
}

// Postgres unique/exclusion violation (23505 / 23P01)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
