package model

import "time"

const (
	ProjectSearchTable    = "project_search"
	FreelancerSearchTable = "freelancer_search"
)

// Columns scored by the matching engine.
var (
	ProjectSearchTextColumns    = []string{"title", "preferred_condition", "working_condition"}
	FreelancerSearchTextColumns = []string{"job", "career", "tech_stack"}
)

// ProjectSearch is the denormalized snapshot of one project used for
// matching. Rows are only ever replaced wholesale.
type ProjectSearch struct {
	ProjectID          uint      `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	Title              string    `gorm:"type:varchar(255)" json:"title"`
	Summary            string    `gorm:"type:varchar(500)" json:"summary"`
	Duration           string    `gorm:"type:varchar(50)" json:"duration"`
	Price              int64     `json:"price"`
	Status             string    `gorm:"type:varchar(20);index" json:"status"`
	Description        string    `gorm:"type:text" json:"description"`
	PreferredCondition string    `gorm:"type:text" json:"preferred_condition"`
	WorkingCondition   string    `gorm:"type:text" json:"working_condition"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *ProjectSearch) TableName() string {
	return ProjectSearchTable
}

// FreelancerSearch is the denormalized snapshot of one freelancer. Career
// holds the flattened career keys, TechStack the skill names sorted by name.
type FreelancerSearch struct {
	FreelancerID uint      `gorm:"primaryKey;autoIncrement:false" json:"freelancer_id"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"`
	Job          string    `gorm:"type:varchar(100)" json:"job"`
	Comment      string    `gorm:"type:varchar(255)" json:"comment"`
	Career       string    `gorm:"type:text" json:"career"`
	TechStack    string    `gorm:"type:text" json:"tech_stack"`
	RatingAvg    *float64  `json:"rating_avg"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (f *FreelancerSearch) TableName() string {
	return FreelancerSearchTable
}
