package models

import "gorm.io/gorm"

const (
	ModuleDraft     = "draft"
	ModulePublished = "published"
)

// Module is one ordered unit of course content. Order is assigned as
// current-max+1 on creation and never renumbered on delete.
type Module struct {
	gorm.Model
	CourseID           uint   `gorm:"index;not null" json:"course_id"`
	Title              string `gorm:"not null" json:"title"`
	Description        string `json:"description"`
	Content            string `json:"content"`
	FileURL            string `json:"file_url"` // audio/video/PDF reference
	Order              int    `gorm:"column:order_index;default:1" json:"order"`
	Status             string `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published
	DurationMinutes    int    `json:"duration_minutes"`
	LearningObjectives string `json:"learning_objectives"`

	Assessments []Assessment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Module) IsPublished() bool {
	return m.Status == ModulePublished
}
