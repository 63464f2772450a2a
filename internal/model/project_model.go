package model

import "time"

const (
	ProjectStatusOpen       = "OPEN"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusClosed     = "CLOSED"
)

type Project struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ClientID           uint      `gorm:"index;not null" json:"client_id"`
	Title              string    `gorm:"type:varchar(255)" json:"title"`
	Summary            string    `gorm:"type:varchar(500)" json:"summary"`
	Duration           string    `gorm:"type:varchar(50)" json:"duration"`
	Price              int64     `json:"price"`
	Status             string    `gorm:"type:varchar(20);index" json:"status"`
	Description        string    `gorm:"type:text" json:"description"`
	PreferredCondition string    `gorm:"type:text" json:"preferred_condition"`
	WorkingCondition   string    `gorm:"type:text" json:"working_condition"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *Project) TableName() string {
	return "projects"
}
