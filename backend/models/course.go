package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CourseDraft     = "draft"
	CoursePublished = "published"
	CourseArchived  = "archived"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type Course struct {
	gorm.Model
	Title         string `gorm:"not null" json:"title"`
	Description   string `json:"description"`
	InstructorID  uint   `gorm:"index;not null" json:"instructor_id"`
	Status        string `gorm:"type:varchar(20);default:'draft';not null" json:"status"` // draft, published, archived
	ImageURL      string `json:"image_url"`
	Category      string `json:"category"`
	DurationWeeks int    `json:"duration_weeks"`
	Level         string `gorm:"type:varchar(50);default:'beginner'" json:"level"` // beginner, intermediate, advanced

	Modules     []Module     `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Assessments []Assessment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Enrollments []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Course) IsPublished() bool {
	return c.Status == CoursePublished
}

// Enrollment links one user to one course. The composite unique index keeps
// a user from enrolling twice in the same course.
type Enrollment struct {
	gorm.Model
	UserID             uint       `gorm:"not null;uniqueIndex:uq_user_course" json:"user_id"`
	CourseID           uint       `gorm:"not null;uniqueIndex:uq_user_course" json:"course_id"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	ProgressPercentage float64    `gorm:"default:0" json:"progress_percentage"`
	Status             string     `gorm:"type:varchar(20);default:'active'" json:"status"` // active, completed, dropped

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}
