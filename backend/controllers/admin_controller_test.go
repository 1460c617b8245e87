package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn/backend/models"
)

func TestAdminDashboardStats(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	createUser(t, db, "alice", models.RoleStudent)
	instructor := createUser(t, db, "teach", models.RoleInstructor)
	createCourse(t, db, instructor.ID, models.CoursePublished)
	createCourse(t, db, instructor.ID, models.CourseDraft)

	resp, body := doRequest(t, app, "GET", "/admin/dashboard", tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 3, stats["total_users"])
	assert.EqualValues(t, 1, stats["total_students"])
	assert.EqualValues(t, 1, stats["total_instructors"])
	assert.EqualValues(t, 2, stats["total_courses"])
	assert.EqualValues(t, 1, stats["published_courses"])
}

func TestManageUsersPagination(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	for i := 0; i < 5; i++ {
		createUser(t, db, fmt.Sprintf("user%d", i), models.RoleStudent)
	}

	resp, body := doRequest(t, app, "GET", "/admin/manage/users?page=1&per_page=3", tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 6, body["total"])
	assert.Len(t, body["data"], 3)

	resp, body = doRequest(t, app, "GET", "/admin/manage/users?page=2&per_page=3", tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 3)
}

func TestEditUser(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	user := createUser(t, db, "alice", models.RoleStudent)

	path := fmt.Sprintf("/admin/user/%d/edit", user.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), map[string]interface{}{
		"role":      models.RoleInstructor,
		"is_active": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	db.First(&updated, user.ID)
	assert.Equal(t, models.RoleInstructor, updated.Role)
	assert.False(t, updated.IsActive)
	// Untouched fields keep prior values.
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.FullName, updated.FullName)
}

func TestEditUserRejectsTakenEmail(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	createUser(t, db, "alice", models.RoleStudent)
	bob := createUser(t, db, "bob", models.RoleStudent)

	path := fmt.Sprintf("/admin/user/%d/edit", bob.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), map[string]string{
		"email": "alice@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestDeleteUserCascades(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	instructor := createUser(t, db, "teach", models.RoleInstructor)
	student := createUser(t, db, "alice", models.RoleStudent)
	course := createCourse(t, db, instructor.ID, models.CoursePublished)
	module := createModule(t, db, course.ID, 1, models.ModulePublished)
	assessment := createAssessment(t, db, module, false)
	enroll(t, db, student.ID, course.ID)
	require.NoError(t, db.Create(&models.Result{
		UserID: student.ID, AssessmentID: assessment.ID, MaxScore: 100, Status: models.ResultSubmitted,
	}).Error)

	path := fmt.Sprintf("/admin/user/%d/delete", student.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users, enrollments, results int64
	db.Model(&models.User{}).Where("id = ?", student.ID).Count(&users)
	db.Model(&models.Enrollment{}).Where("user_id = ?", student.ID).Count(&enrollments)
	db.Model(&models.Result{}).Where("user_id = ?", student.ID).Count(&results)
	assert.EqualValues(t, 0, users)
	assert.EqualValues(t, 0, enrollments)
	assert.EqualValues(t, 0, results)
}

func TestDeleteOwnAccountRefused(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)

	path := fmt.Sprintf("/admin/user/%d/delete", admin.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAdminCreateCourseRequiresInstructor(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	student := createUser(t, db, "alice", models.RoleStudent)
	instructor := createUser(t, db, "teach", models.RoleInstructor)
	token := tokenFor(t, cfg, admin)

	resp, _ := doRequest(t, app, "POST", "/admin/course/create", token, map[string]interface{}{
		"title":         "C1",
		"instructor_id": student.ID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/admin/course/create", token, map[string]interface{}{
		"title":         "C1",
		"instructor_id": instructor.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, db.Where("title = ?", "C1").First(&course).Error)
	assert.Equal(t, instructor.ID, course.InstructorID)
}

func TestAdminEditCourseReassignsInstructor(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	first := createUser(t, db, "teach1", models.RoleInstructor)
	second := createUser(t, db, "teach2", models.RoleInstructor)
	course := createCourse(t, db, first.ID, models.CourseDraft)

	path := fmt.Sprintf("/admin/course/%d/edit", course.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), map[string]interface{}{
		"instructor_id": second.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Course
	db.First(&updated, course.ID)
	assert.Equal(t, second.ID, updated.InstructorID)
	assert.Equal(t, course.Title, updated.Title)
}

func TestDeleteCourseCascades(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	instructor := createUser(t, db, "teach", models.RoleInstructor)
	student := createUser(t, db, "alice", models.RoleStudent)
	course := createCourse(t, db, instructor.ID, models.CoursePublished)
	module := createModule(t, db, course.ID, 1, models.ModulePublished)
	assessment := createAssessment(t, db, module, false)
	enroll(t, db, student.ID, course.ID)
	require.NoError(t, db.Create(&models.Result{
		UserID: student.ID, AssessmentID: assessment.ID, MaxScore: 100, Status: models.ResultSubmitted,
	}).Error)

	path := fmt.Sprintf("/admin/course/%d/delete", course.ID)
	resp, _ := doRequest(t, app, "POST", path, tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses, modules, assessments, enrollments, results int64
	db.Model(&models.Course{}).Where("id = ?", course.ID).Count(&courses)
	db.Model(&models.Module{}).Where("course_id = ?", course.ID).Count(&modules)
	db.Model(&models.Assessment{}).Where("course_id = ?", course.ID).Count(&assessments)
	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&enrollments)
	db.Model(&models.Result{}).Where("assessment_id = ?", assessment.ID).Count(&results)
	assert.EqualValues(t, 0, courses)
	assert.EqualValues(t, 0, modules)
	assert.EqualValues(t, 0, assessments)
	assert.EqualValues(t, 0, enrollments)
	assert.EqualValues(t, 0, results)

	// The student and instructor themselves survive.
	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 3, users)
}

func TestManageCoursesTitleFilter(t *testing.T) {
	app, db, cfg := setupApp(t)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	instructor := createUser(t, db, "teach", models.RoleInstructor)
	createCourse(t, db, instructor.ID, models.CoursePublished) // "Intro to Tajweed"
	other := createCourse(t, db, instructor.ID, models.CoursePublished)
	db.Model(other).Update("title", "Advanced Fiqh")

	resp, body := doRequest(t, app, "GET", "/admin/manage/courses?title=Tajweed", tokenFor(t, cfg, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["data"], 1)
}
