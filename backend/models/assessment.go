package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssessmentQuiz       = "quiz"
	AssessmentAssignment = "assignment"
	AssessmentSubmission = "submission"
)

// Assessment belongs to a module; CourseID is denormalized from the parent
// module so grading and review queries skip a join.
type Assessment struct {
	gorm.Model
	ModuleID              uint       `gorm:"index;not null" json:"module_id"`
	CourseID              uint       `gorm:"index;not null" json:"course_id"`
	Title                 string     `gorm:"not null" json:"title"`
	Description           string     `json:"description"`
	AssessmentType        string     `gorm:"type:varchar(50);not null" json:"assessment_type"` // quiz, assignment, submission
	Questions             string     `json:"questions"`                                        // JSON payload for quiz questions
	Instructions          string     `json:"instructions"`
	DueDate               *time.Time `json:"due_date,omitempty"`
	MaxScore              float64    `gorm:"default:100" json:"max_score"`
	IsGraded              bool       `gorm:"default:true" json:"is_graded"`
	AllowMultipleAttempts bool       `gorm:"default:false" json:"allow_multiple_attempts"`
	Status                string     `gorm:"type:varchar(20);default:'draft'" json:"status"` // draft, published

	Results []Result `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Assessment) IsPublished() bool {
	return a.Status == AssessmentPublished
}

const (
	AssessmentDraft     = "draft"
	AssessmentPublished = "published"
)
