package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResultPending   = "pending"
	ResultSubmitted = "submitted"
	ResultGraded    = "graded"
)

// Result is one submission attempt against an assessment. The attempt limit
// for single-attempt assessments is enforced at the access layer, not here.
type Result struct {
	gorm.Model
	UserID            uint       `gorm:"not null;index:idx_user_assessment" json:"user_id"`
	AssessmentID      uint       `gorm:"not null;index:idx_user_assessment" json:"assessment_id"`
	Score             float64    `json:"score"`
	MaxScore          float64    `gorm:"default:100" json:"max_score"`
	Percentage        float64    `json:"percentage"`
	SubmissionText    string     `json:"submission_text"`
	SubmissionFileURL string     `json:"submission_file_url"`
	Status            string     `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending, submitted, graded
	Feedback          string     `json:"feedback"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	GradedAt          *time.Time `json:"graded_at,omitempty"`
	AttemptNumber     int        `gorm:"default:1" json:"attempt_number"`

	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Assessment Assessment `gorm:"foreignKey:AssessmentID" json:"-"`
}

// IsPassed checks the result against a passing threshold.
func (r *Result) IsPassed(passingScore float64) bool {
	return r.Status == ResultGraded && r.Percentage >= passingScore
}
