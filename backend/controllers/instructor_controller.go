package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/middleware"
	"elearn/backend/models"
	"elearn/backend/utils"
)

type InstructorController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInstructorController(db *gorm.DB, cfg *config.Config) *InstructorController {
	return &InstructorController{DB: db, Cfg: cfg}
}

// ownedCourse loads the course and verifies the caller owns it. On refusal
// the response has already been written and the returned course is nil.
func (ic *InstructorController) ownedCourse(c *fiber.Ctx, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := ic.DB.First(&course, courseID).Error; err != nil {
		return nil, utils.NotFound(c, "Course not found")
	}
	if course.InstructorID != middleware.CurrentUser(c).ID {
		return nil, utils.Forbidden(c, "You do not have access to this course")
	}
	return &course, nil
}

// Dashboard godoc
// @Summary Instructor dashboard
// @Tags instructor
// @Produce json
// @Security ApiKeyAuth
// @Router /instructor/dashboard [get]
func (ic *InstructorController) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var courses []models.Course
	ic.DB.Where("instructor_id = ?", user.ID).Find(&courses)

	published := 0
	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		if course.IsPublished() {
			published++
		}
	}

	var totalStudents, pendingReviews int64
	if len(courseIDs) > 0 {
		ic.DB.Model(&models.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&totalStudents)
		ic.DB.Model(&models.Result{}).
			Joins("JOIN assessments ON assessments.id = results.assessment_id").
			Where("assessments.course_id IN ? AND results.status IN ?",
				courseIDs, []string{models.ResultSubmitted, models.ResultPending}).
			Count(&pendingReviews)
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"stats": fiber.Map{
			"total_courses":     len(courses),
			"published_courses": published,
			"total_students":    totalStudents,
			"pending_reviews":   pendingReviews,
		},
	})
}

type courseInput struct {
	Title         string `json:"title" form:"title"`
	Description   string `json:"description" form:"description"`
	Category      string `json:"category" form:"category"`
	Level         string `json:"level" form:"level"`
	Status        string `json:"status" form:"status"`
	ImageURL      string `json:"image_url" form:"image_url"`
	DurationWeeks int    `json:"duration_weeks" form:"duration_weeks"`
}

// CreateCourse godoc
// @Summary Create a course owned by the caller
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /instructor/course/create [post]
func (ic *InstructorController) CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input courseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.Level == "" {
		input.Level = "beginner"
	}
	if input.Status == "" {
		input.Status = models.CourseDraft
	}

	course := models.Course{
		Title:         input.Title,
		Description:   input.Description,
		InstructorID:  user.ID,
		Category:      input.Category,
		Level:         input.Level,
		Status:        input.Status,
		ImageURL:      input.ImageURL,
		DurationWeeks: input.DurationWeeks,
	}
	if err := ic.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Course created", course)
}

// ManageCourse returns the course with its ordered modules and enrollments.
func (ic *InstructorController) ManageCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, refusal := ic.ownedCourse(c, uint(courseID))
	if course == nil {
		return refusal
	}

	var modules []models.Module
	ic.DB.Where("course_id = ?", course.ID).Order("order_index asc").Find(&modules)

	var enrollments []models.Enrollment
	ic.DB.Where("course_id = ?", course.ID).Preload("User").Find(&enrollments)

	students := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		students = append(students, fiber.Map{
			"enrollment": e,
			"username":   e.User.Username,
			"full_name":  e.User.FullName,
		})
	}

	return c.JSON(fiber.Map{
		"course":      course,
		"modules":     modules,
		"enrollments": students,
	})
}

// UpdateCourse is a field-level update: empty fields keep their prior value.
func (ic *InstructorController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, refusal := ic.ownedCourse(c, uint(courseID))
	if course == nil {
		return refusal
	}

	var input courseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if input.ImageURL != "" {
		course.ImageURL = input.ImageURL
	}
	if input.DurationWeeks != 0 {
		course.DurationWeeks = input.DurationWeeks
	}

	if err := ic.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.MessageData(c, fiber.StatusOK, "Changes saved", course)
}

type moduleInput struct {
	Title              string `json:"title" form:"title"`
	Description        string `json:"description" form:"description"`
	Content            string `json:"content" form:"content"`
	FileURL            string `json:"file_url" form:"file_url"`
	DurationMinutes    int    `json:"duration_minutes" form:"duration_minutes"`
	LearningObjectives string `json:"learning_objectives" form:"learning_objectives"`
	Status             string `json:"status" form:"status"`
}

// CreateModule godoc
// @Summary Add a module to an owned course
// @Description Order is assigned as the current maximum plus one.
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /instructor/module/create/{courseId} [post]
func (ic *InstructorController) CreateModule(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, refusal := ic.ownedCourse(c, uint(courseID))
	if course == nil {
		return refusal
	}

	var input moduleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.Status == "" {
		input.Status = models.ModuleDraft
	}

	var maxOrder int
	ic.DB.Model(&models.Module{}).Where("course_id = ?", course.ID).
		Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	module := models.Module{
		CourseID:           course.ID,
		Title:              input.Title,
		Description:        input.Description,
		Content:            input.Content,
		FileURL:            input.FileURL,
		DurationMinutes:    input.DurationMinutes,
		LearningObjectives: input.LearningObjectives,
		Status:             input.Status,
		Order:              maxOrder + 1,
	}
	if err := ic.DB.Create(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not create module")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Module created", module)
}

type assessmentInput struct {
	Title                 string     `json:"title" form:"title"`
	Description           string     `json:"description" form:"description"`
	AssessmentType        string     `json:"assessment_type" form:"assessment_type"`
	Questions             string     `json:"questions" form:"questions"`
	Instructions          string     `json:"instructions" form:"instructions"`
	DueDate               *time.Time `json:"due_date" form:"due_date"`
	MaxScore              *float64   `json:"max_score" form:"max_score"`
	IsGraded              *bool      `json:"is_graded" form:"is_graded"`
	AllowMultipleAttempts bool       `json:"allow_multiple_attempts" form:"allow_multiple_attempts"`
	Status                string     `json:"status" form:"status"`
}

// CreateAssessment godoc
// @Summary Add an assessment to a module of an owned course
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /instructor/assessment/create/{moduleId} [post]
func (ic *InstructorController) CreateAssessment(c *fiber.Ctx) error {
	moduleID, err := strconv.Atoi(c.Params("moduleId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := ic.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}
	owned, refusal := ic.ownedCourse(c, module.CourseID)
	if owned == nil {
		return refusal
	}

	var input assessmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.AssessmentType == "" {
		input.AssessmentType = models.AssessmentAssignment
	}
	switch input.AssessmentType {
	case models.AssessmentQuiz, models.AssessmentAssignment, models.AssessmentSubmission:
	default:
		return utils.BadRequest(c, "Unknown assessment type")
	}
	if input.Status == "" {
		input.Status = models.AssessmentDraft
	}

	maxScore := 100.0
	if input.MaxScore != nil {
		maxScore = *input.MaxScore
	}
	isGraded := true
	if input.IsGraded != nil {
		isGraded = *input.IsGraded
	}

	assessment := models.Assessment{
		ModuleID:              module.ID,
		CourseID:              module.CourseID,
		Title:                 input.Title,
		Description:           input.Description,
		AssessmentType:        input.AssessmentType,
		Questions:             input.Questions,
		Instructions:          input.Instructions,
		DueDate:               input.DueDate,
		MaxScore:              maxScore,
		IsGraded:              isGraded,
		AllowMultipleAttempts: input.AllowMultipleAttempts,
		Status:                input.Status,
	}
	if err := ic.DB.Create(&assessment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create assessment")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Assessment created", assessment)
}

// ReviewSubmissions lists submitted and pending results across the caller's
// courses.
func (ic *InstructorController) ReviewSubmissions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var results []models.Result
	ic.DB.
		Joins("JOIN assessments ON assessments.id = results.assessment_id").
		Joins("JOIN courses ON courses.id = assessments.course_id").
		Where("courses.instructor_id = ? AND results.status IN ?",
			user.ID, []string{models.ResultSubmitted, models.ResultPending}).
		Preload("User").Preload("Assessment").
		Find(&results)

	submissions := make([]fiber.Map, 0, len(results))
	for _, r := range results {
		submissions = append(submissions, fiber.Map{
			"result":     r,
			"student":    r.User.Username,
			"assessment": r.Assessment.Title,
		})
	}

	return c.JSON(fiber.Map{"submissions": submissions})
}

type gradeInput struct {
	Score    *float64 `json:"score" form:"score"`
	Feedback string   `json:"feedback" form:"feedback"`
}

// GradeSubmission godoc
// @Summary Grade a submission
// @Description Sets score, feedback and percentage; re-grading overwrites the prior grade.
// @Tags instructor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /instructor/review/submit/{resultId} [post]
func (ic *InstructorController) GradeSubmission(c *fiber.Ctx) error {
	resultID, err := strconv.Atoi(c.Params("resultId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid result ID")
	}

	var result models.Result
	if err := ic.DB.First(&result, resultID).Error; err != nil {
		return utils.NotFound(c, "Submission not found")
	}

	var assessment models.Assessment
	if err := ic.DB.First(&assessment, result.AssessmentID).Error; err != nil {
		return utils.NotFound(c, "Assessment not found")
	}
	owned, refusal := ic.ownedCourse(c, assessment.CourseID)
	if owned == nil {
		return refusal
	}

	var input gradeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.Score == nil {
		return utils.BadRequest(c, "Score is required")
	}
	if *input.Score < 0 {
		return utils.Unprocessable(c, "Score cannot be negative")
	}
	if result.MaxScore <= 0 {
		return utils.Unprocessable(c, "Assessment max score must be positive before grading")
	}

	now := time.Now()
	result.Score = *input.Score
	result.Percentage = (*input.Score / result.MaxScore) * 100
	result.Feedback = input.Feedback
	result.Status = models.ResultGraded
	result.GradedAt = &now

	if err := ic.DB.Save(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save grade")
	}

	return utils.MessageData(c, fiber.StatusOK, "Grade saved", result)
}
