// file: internals/features/reservations/model/reservation_model.go
package model

import (
	"time"

	"gorm.io/datatypes"

	"labreserve_backend/internals/helpers/dbtime"
)

/* =======================================================
   ReservationModel — maps to table reservations. The id is
   the monotonic public identifier; priority_score is set
   once at creation and never recomputed.
   ======================================================= */

type ReservationModel struct {
	// PK (monotonic)
	ReservationID int64 `json:"reservation_id" gorm:"primaryKey;autoIncrement;column:reservation_id"`

	ReservationLabNumber string         `json:"reservation_lab_number" gorm:"size:20;not null;index:idx_reservations_lab_date;column:reservation_lab_number"`
	ReservationDate      datatypes.Date `json:"reservation_date" gorm:"not null;index:idx_reservations_lab_date;column:reservation_date"`

	// Half-open interval [start, end)
	ReservationStartTime dbtime.Tod `json:"reservation_start_time" gorm:"type:time;not null;column:reservation_start_time"`
	ReservationEndTime   dbtime.Tod `json:"reservation_end_time" gorm:"type:time;not null;column:reservation_end_time"`

	ReservationNumParticipants int    `json:"reservation_num_participants" gorm:"not null;column:reservation_num_participants"`
	ReservationPurpose         string `json:"reservation_purpose" gorm:"size:20;not null;column:reservation_purpose"`
	ReservationDescription     string `json:"reservation_description" gorm:"type:text;column:reservation_description"`

	ReservationUserEmail string `json:"reservation_user_email" gorm:"size:120;not null;index;column:reservation_user_email"`
	ReservationUserName  string `json:"reservation_user_name" gorm:"size:100;not null;column:reservation_user_name"`

	ReservationUrgency string `json:"reservation_urgency" gorm:"size:10;not null;default:normal;column:reservation_urgency"`

	// pending / approved / rejected / cancelled
	ReservationStatus string `json:"reservation_status" gorm:"size:10;not null;index;column:reservation_status"`

	ReservationPriorityScore float64 `json:"reservation_priority_score" gorm:"not null;default:0;column:reservation_priority_score"`

	ReservationCreatedAt time.Time `json:"reservation_created_at" gorm:"autoCreateTime;column:reservation_created_at"`
	ReservationUpdatedAt time.Time `json:"reservation_updated_at" gorm:"autoUpdateTime;column:reservation_updated_at"`
}

func (ReservationModel) TableName() string { return "reservations" }
