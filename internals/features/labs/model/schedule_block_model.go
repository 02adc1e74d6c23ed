// file: internals/features/labs/model/schedule_block_model.go
package model

import (
	"time"

	"gorm.io/datatypes"

	"labreserve_backend/internals/helpers/dbtime"
)

/* =======================================================
   ScheduleBlockModel — maps to table schedule_blocks, the
   fixed class timetable. Always wins conflicts; read-only
   for the arbitration engine.
   ======================================================= */

type ScheduleBlockModel struct {
	// PK
	ScheduleBlockID uint `json:"schedule_block_id" gorm:"primaryKey;column:schedule_block_id"`

	ScheduleBlockLabNumber string         `json:"schedule_block_lab_number" gorm:"size:20;not null;index:idx_schedule_blocks_lab_date;column:schedule_block_lab_number"`
	ScheduleBlockDate      datatypes.Date `json:"schedule_block_date" gorm:"not null;index:idx_schedule_blocks_lab_date;column:schedule_block_date"`

	// morning / afternoon / evening
	ScheduleBlockSession string `json:"schedule_block_session" gorm:"size:16;not null;column:schedule_block_session"`

	ScheduleBlockClass       string `json:"schedule_block_class" gorm:"size:50;not null;column:schedule_block_class"`
	ScheduleBlockSection     string `json:"schedule_block_section" gorm:"size:10;not null;column:schedule_block_section"`
	ScheduleBlockBatch       string `json:"schedule_block_batch" gorm:"size:10;not null;column:schedule_block_batch"`
	ScheduleBlockSubject     string `json:"schedule_block_subject" gorm:"size:100;not null;column:schedule_block_subject"`
	ScheduleBlockFacultyName string `json:"schedule_block_faculty_name" gorm:"size:100;not null;column:schedule_block_faculty_name"`

	// Concrete class times inside the session window; the canonical
	// session range applies when these are unset.
	ScheduleBlockStartTime dbtime.Tod `json:"schedule_block_start_time" gorm:"type:time;column:schedule_block_start_time"`
	ScheduleBlockEndTime   dbtime.Tod `json:"schedule_block_end_time" gorm:"type:time;column:schedule_block_end_time"`

	ScheduleBlockCreatedAt time.Time `json:"schedule_block_created_at" gorm:"autoCreateTime;column:schedule_block_created_at"`
}

func (ScheduleBlockModel) TableName() string { return "schedule_blocks" }
