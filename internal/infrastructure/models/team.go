package models

import "time"

type Team struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	ExternalID int    `gorm:"column:api_sports_id;uniqueIndex;not null"`
	Name       string `gorm:"type:varchar(255);not null"`
	Logo       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Team) TableName() string {
	return "teams"
}
