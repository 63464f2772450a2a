package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Freelancer shares its primary key with the owning member.
type Freelancer struct {
	ID      uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Job     string `gorm:"type:varchar(100)" json:"job"`
	Comment string `gorm:"type:varchar(255)" json:"comment"`
	// Career maps a skill name to months of experience, e.g. {"Spring": 36}.
	Career    datatypes.JSON `gorm:"not null" json:"career"`
	Skills    []Skill        `gorm:"many2many:freelancer_skills" json:"skills"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (f *Freelancer) TableName() string {
	return "freelancers"
}

// BeforeSave stores an empty career as {} so the column is never NULL.
func (f *Freelancer) BeforeSave(*gorm.DB) error {
	if len(f.Career) == 0 {
		f.Career = datatypes.JSON("{}")
	}
	return nil
}

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex" json:"name"`
}

func (s *Skill) TableName() string {
	return "skills"
}

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FreelancerID uint      `gorm:"index;not null" json:"freelancer_id"`
	ProjectID    uint      `gorm:"index" json:"project_id"`
	ReviewerID   uint      `json:"reviewer_id"`
	Rating       float64   `json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *Review) TableName() string {
	return "reviews"
}
