// file: internals/features/labs/model/lab_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

/* =======================================================
   LabModel — maps to table labs. Immutable reference data
   from the engine's point of view; writes belong to the
   administrative catalog tool.
   ======================================================= */

type LabModel struct {
	// PK
	LabID uint `json:"lab_id" gorm:"primaryKey;column:lab_id"`

	// Natural key
	LabNumber string `json:"lab_number" gorm:"size:20;not null;uniqueIndex;column:lab_number"`

	LabBuilding string `json:"lab_building" gorm:"size:100;not null;column:lab_building"`
	LabFloor    int    `json:"lab_floor" gorm:"not null;column:lab_floor"`
	LabCapacity int    `json:"lab_capacity" gorm:"not null;column:lab_capacity"`

	// e.g. ["Computers","Projector","Whiteboard"]
	LabEquipment datatypes.JSON `json:"lab_equipment" gorm:"column:lab_equipment"`

	LabIsActive bool `json:"lab_is_active" gorm:"not null;default:true;column:lab_is_active"`

	LabCreatedAt time.Time `json:"lab_created_at" gorm:"autoCreateTime;column:lab_created_at"`
	LabUpdatedAt time.Time `json:"lab_updated_at" gorm:"autoUpdateTime;column:lab_updated_at"`
}

func (LabModel) TableName() string { return "labs" }
