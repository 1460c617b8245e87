package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/middleware"
	"elearn/backend/models"
	"elearn/backend/utils"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// Dashboard godoc
// @Summary Platform-wide stats
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Router /admin/dashboard [get]
func (ac *AdminController) Dashboard(c *fiber.Ctx) error {
	var totalUsers, students, instructors, totalCourses, publishedCourses int64
	ac.DB.Model(&models.User{}).Count(&totalUsers)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&students)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&instructors)
	ac.DB.Model(&models.Course{}).Count(&totalCourses)
	ac.DB.Model(&models.Course{}).Where("status = ?", models.CoursePublished).Count(&publishedCourses)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"total_users":       totalUsers,
			"total_students":    students,
			"total_instructors": instructors,
			"total_courses":     totalCourses,
			"published_courses": publishedCourses,
		},
	})
}

func pageParams(c *fiber.Ctx) (page, pageSize int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.Query("per_page", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// ManageUsers lists users, paginated.
func (ac *AdminController) ManageUsers(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)

	var total int64
	ac.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	ac.DB.Order("id asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users)

	return utils.Paginate(c, users, total, page, pageSize)
}

type editUserInput struct {
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	IsActive *bool  `json:"is_active" form:"is_active"`
}

// EditUser is a field-level update; empty fields keep their prior value.
func (ac *AdminController) EditUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var input editUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		var other models.User
		if err := ac.DB.Where("email = ? AND id <> ?", input.Email, user.ID).First(&other).Error; err == nil {
			return utils.Conflict(c, "Email is already registered")
		}
		user.Email = input.Email
	}
	if input.Role != "" {
		role := models.Role(input.Role)
		if !role.Valid() {
			return utils.BadRequest(c, "Unknown role")
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.MessageData(c, fiber.StatusOK, "User updated", user)
}

// DeleteUser removes a user and their enrollments and results. Deletion is
// hard; the admin cannot delete their own account.
func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}
	if uint(userID) == admin.ID {
		return utils.BadRequest(c, "You cannot delete your own account")
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return utils.Message(c, fiber.StatusOK, "User "+user.Username+" deleted")
}

// ManageCourses lists courses, paginated, with an optional title filter.
func (ac *AdminController) ManageCourses(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)

	query := ac.DB.Model(&models.Course{})
	if title := c.Query("title"); title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	query.Order("id asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&courses)

	return utils.Paginate(c, courses, total, page, pageSize)
}

type adminCourseInput struct {
	courseInput
	InstructorID *uint `json:"instructor_id" form:"instructor_id"`
}

// CreateCourse creates a course on behalf of an instructor.
func (ac *AdminController) CreateCourse(c *fiber.Ctx) error {
	var input adminCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}
	if input.InstructorID == nil {
		return utils.BadRequest(c, "instructor_id is required")
	}

	var instructor models.User
	if err := ac.DB.First(&instructor, *input.InstructorID).Error; err != nil {
		return utils.NotFound(c, "Instructor not found")
	}
	if !instructor.IsInstructor() {
		return utils.Unprocessable(c, "Selected user is not an instructor")
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
		InstructorID:  instructor.ID,
		Category:      input.Category,
		Level:         input.Level,
		Status:        input.Status,
		ImageURL:      input.ImageURL,
		DurationWeeks: input.DurationWeeks,
	}
	if err := ac.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.MessageData(c, fiber.StatusCreated, "Course created", course)
}

// EditCourse is a field-level update; may reassign the owning instructor.
func (ac *AdminController) EditCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var input adminCourseInput
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
	if input.InstructorID != nil {
		var instructor models.User
		if err := ac.DB.First(&instructor, *input.InstructorID).Error; err != nil {
			return utils.NotFound(c, "Instructor not found")
		}
		if !instructor.IsInstructor() {
			return utils.Unprocessable(c, "Selected user is not an instructor")
		}
		course.InstructorID = instructor.ID
	}

	if err := ac.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.MessageData(c, fiber.StatusOK, "Course updated", course)
}

// DeleteCourse removes a course and everything under it: modules,
// assessments, results of those assessments, and enrollments.
func (ac *AdminController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		var assessmentIDs []uint
		if err := tx.Model(&models.Assessment{}).Where("course_id = ?", course.ID).
			Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}
		if len(assessmentIDs) > 0 {
			if err := tx.Unscoped().Where("assessment_id IN ?", assessmentIDs).
				Delete(&models.Result{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Assessment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.Message(c, fiber.StatusOK, "Course "+course.Title+" deleted")
}
