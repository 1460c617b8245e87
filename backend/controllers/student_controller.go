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

type StudentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStudentController(db *gorm.DB, cfg *config.Config) *StudentController {
	return &StudentController{DB: db, Cfg: cfg}
}

// enrollment returns the caller's enrollment in the course, or nil.
func (sc *StudentController) enrollment(userID, courseID uint) *models.Enrollment {
	var e models.Enrollment
	if err := sc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error; err != nil {
		return nil
	}
	return &e
}

// Dashboard godoc
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Router /student/dashboard [get]
func (sc *StudentController) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var enrollments []models.Enrollment
	sc.DB.Where("user_id = ? AND status = ?", user.ID, models.EnrollmentActive).
		Preload("Course").Find(&enrollments)

	courses := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		courses = append(courses, fiber.Map{
			"course":   e.Course,
			"progress": e.ProgressPercentage,
		})
	}

	var gradedResults int64
	sc.DB.Model(&models.Result{}).
		Where("user_id = ? AND status = ?", user.ID, models.ResultGraded).
		Count(&gradedResults)

	return c.JSON(fiber.Map{
		"courses": courses,
		"stats": fiber.Map{
			"total_courses":         len(enrollments),
			"completed_assessments": gradedResults,
			"active_enrollments":    len(enrollments),
		},
	})
}

// AvailableCourses lists published courses open for enrollment.
func (sc *StudentController) AvailableCourses(c *fiber.Ctx) error {
	var courses []models.Course
	sc.DB.Where("status = ?", models.CoursePublished).Find(&courses)
	return c.JSON(fiber.Map{"courses": courses})
}

// Enroll godoc
// @Summary Enroll in a course
// @Description A user can hold at most one enrollment per course.
// @Tags student
// @Produce json
// @Security ApiKeyAuth
// @Router /student/course/{id}/enroll [post]
func (sc *StudentController) Enroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := sc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	if !course.IsPublished() {
		return utils.NotFound(c, "Course not found")
	}

	if sc.enrollment(user.ID, course.ID) != nil {
		return utils.Conflict(c, "You are already enrolled in this course")
	}

	enrollment := models.Enrollment{
		UserID:     user.ID,
		CourseID:   course.ID,
		EnrolledAt: time.Now(),
		Status:     models.EnrollmentActive,
	}
	if err := sc.DB.Create(&enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not enroll in course")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Enrolled in course", enrollment)
}

// Course shows an enrolled course with its published modules in order.
func (sc *StudentController) Course(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := sc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	enrollment := sc.enrollment(user.ID, course.ID)
	if enrollment == nil {
		return utils.Forbidden(c, "You are not enrolled in this course")
	}

	var modules []models.Module
	sc.DB.Where("course_id = ? AND status = ?", course.ID, models.ModulePublished).
		Order("order_index asc").Find(&modules)

	return c.JSON(fiber.Map{
		"course":     course,
		"modules":    modules,
		"enrollment": enrollment,
	})
}

// Module shows one module and its published assessments; requires enrollment
// in the parent course.
func (sc *StudentController) Module(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := sc.DB.First(&module, moduleID).Error; err != nil {
		return utils.NotFound(c, "Module not found")
	}

	if sc.enrollment(user.ID, module.CourseID) == nil {
		return utils.Forbidden(c, "You are not enrolled in this course")
	}

	var assessments []models.Assessment
	sc.DB.Where("module_id = ? AND status = ?", module.ID, models.AssessmentPublished).
		Find(&assessments)

	return c.JSON(fiber.Map{
		"module":      module,
		"assessments": assessments,
	})
}

// Assessment shows an assessment and the caller's prior result, if any.
func (sc *StudentController) Assessment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	assessmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid assessment ID")
	}

	var assessment models.Assessment
	if err := sc.DB.First(&assessment, assessmentID).Error; err != nil {
		return utils.NotFound(c, "Assessment not found")
	}

	if sc.enrollment(user.ID, assessment.CourseID) == nil {
		return utils.Forbidden(c, "You are not enrolled in this course")
	}

	var existing models.Result
	var prior interface{}
	if err := sc.DB.Where("user_id = ? AND assessment_id = ?", user.ID, assessment.ID).
		Order("attempt_number desc").First(&existing).Error; err == nil {
		prior = existing
	}

	return c.JSON(fiber.Map{
		"assessment": assessment,
		"result":     prior,
	})
}

type submissionInput struct {
	SubmissionText    string `json:"submission_text" form:"submission_text"`
	SubmissionFileURL string `json:"submission_file_url" form:"submission_file_url"`
}

// SubmitAssessment godoc
// @Summary Submit a response to an assessment
// @Description Refused when a result already exists and the assessment allows a single attempt.
// @Tags student
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Router /student/assessment/{id} [post]
func (sc *StudentController) SubmitAssessment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	assessmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid assessment ID")
	}

	var assessment models.Assessment
	if err := sc.DB.First(&assessment, assessmentID).Error; err != nil {
		return utils.NotFound(c, "Assessment not found")
	}

	if sc.enrollment(user.ID, assessment.CourseID) == nil {
		return utils.Forbidden(c, "You are not enrolled in this course")
	}

	var attempts int64
	sc.DB.Model(&models.Result{}).
		Where("user_id = ? AND assessment_id = ?", user.ID, assessment.ID).
		Count(&attempts)

	if attempts > 0 && !assessment.AllowMultipleAttempts {
		return utils.Conflict(c, "You have already submitted this assessment")
	}

	var input submissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	result := models.Result{
		UserID:            user.ID,
		AssessmentID:      assessment.ID,
		MaxScore:          assessment.MaxScore,
		SubmissionText:    input.SubmissionText,
		SubmissionFileURL: input.SubmissionFileURL,
		Status:            models.ResultSubmitted,
		SubmittedAt:       time.Now(),
		AttemptNumber:     int(attempts) + 1,
	}
	if err := sc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save submission")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Submission received", result)
}

type progressInput struct {
	ProgressPercentage *float64 `json:"progress_percentage" form:"progress_percentage"`
	Status             string   `json:"status" form:"status"`
}

// UpdateProgress sets the stored progress percentage on the enrollment. The
// value is externally set; nothing recomputes it from completed modules.
func (sc *StudentController) UpdateProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	enrollment := sc.enrollment(user.ID, uint(courseID))
	if enrollment == nil {
		return utils.Forbidden(c, "You are not enrolled in this course")
	}

	var input progressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.ProgressPercentage == nil {
		return utils.BadRequest(c, "progress_percentage is required")
	}
	if *input.ProgressPercentage < 0 || *input.ProgressPercentage > 100 {
		return utils.Unprocessable(c, "Progress must be between 0 and 100")
	}

	enrollment.ProgressPercentage = *input.ProgressPercentage
	switch input.Status {
	case "":
	case models.EnrollmentActive, models.EnrollmentDropped:
		enrollment.Status = input.Status
	case models.EnrollmentCompleted:
		enrollment.Status = input.Status
		now := time.Now()
		enrollment.CompletedAt = &now
	default:
		return utils.Unprocessable(c, "Unknown enrollment status")
	}

	if err := sc.DB.Save(enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	return utils.MessageData(c, fiber.StatusOK, "Progress updated", enrollment)
}

// Progress rolls up module/assessment/completion counts per enrollment.
func (sc *StudentController) Progress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var enrollments []models.Enrollment
	sc.DB.Where("user_id = ?", user.ID).Preload("Course").Find(&enrollments)

	progress := make([]fiber.Map, 0, len(enrollments))
	for _, e := range enrollments {
		var moduleCount, assessmentCount, completed int64
		sc.DB.Model(&models.Module{}).Where("course_id = ?", e.CourseID).Count(&moduleCount)
		sc.DB.Model(&models.Assessment{}).Where("course_id = ?", e.CourseID).Count(&assessmentCount)
		sc.DB.Model(&models.Result{}).
			Joins("JOIN assessments ON assessments.id = results.assessment_id").
			Where("results.user_id = ? AND assessments.course_id = ?", user.ID, e.CourseID).
			Count(&completed)

		progress = append(progress, fiber.Map{
			"course":                e.Course,
			"enrollment":            e,
			"modules":               moduleCount,
			"assessments":           assessmentCount,
			"completed_assessments": completed,
		})
	}

	return c.JSON(fiber.Map{"progress": progress})
}
