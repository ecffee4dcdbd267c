package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Herd is one immutable version of a herd's descriptive attributes. Updates
// append a new version and flip IsCurrent on the previous one; rows are
// never deleted.
type Herd struct {
	ID      snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Version int          `gorm:"primaryKey;autoIncrement:false" json:"version"`

	ApplicationReference string                       `gorm:"index;not null" json:"applicationReference"`
	Species              string                       `gorm:"not null" json:"species"`
	Name                 string                       `gorm:"not null" json:"name"`
	CPH                  string                       `gorm:"column:cph;not null" json:"cph"`
	Reasons              datatypes.JSONSlice[string]  `gorm:"not null" json:"reasons"`
	IsCurrent            bool                         `gorm:"not null;default:true" json:"isCurrent"`
	CreatedBy            string                       `gorm:"not null" json:"createdBy"`
	CreatedAt            time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Herd) TableName() string { return "herds" }
