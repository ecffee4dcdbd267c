package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Application is the parent record a claim is submitted against. It is
// created by the application journey upstream of this service; claims only
// read it.
type Application struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Reference string            `gorm:"uniqueIndex;not null" json:"reference"`
	CreatedBy string            `gorm:"not null" json:"createdBy"`
	Data      datatypes.JSONMap `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Application) TableName() string { return "applications" }

// Flag is an operational marker attached to an application. A live flag with
// AppliesToMH set suppresses the multiple-herds journey for every claim under
// the application.
type Flag struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	ApplicationReference string       `gorm:"index;not null" json:"applicationReference"`
	Note                 string       `gorm:"type:text" json:"note,omitempty"`
	AppliesToMH          bool         `gorm:"column:applies_to_mh;not null;default:false" json:"appliesToMh"`
	CreatedBy            string       `gorm:"not null" json:"createdBy"`
	CreatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	DeletedBy            *string      `json:"deletedBy,omitempty"`
	DeletedAt            *time.Time   `json:"deletedAt,omitempty"`
}

func (Flag) TableName() string { return "flags" }

// Deleted reports whether the flag has been soft-deleted.
func (f Flag) Deleted() bool { return f.DeletedBy != nil }
