package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/controllers"
	"elearn/backend/middleware"
	"elearn/backend/models"
)

// SetupRoutes wires every endpoint. Each role prefix runs the same chain:
// authenticate, then authorize the role, then the handler. Ownership checks
// live in the instructor handlers.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mainController := controllers.NewMainController(db, cfg)
	app.Get("/", mainController.Index)
	app.Get("/about", mainController.About)

	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/logout", authController.Logout)

	authenticate := middleware.Authenticate(db, cfg)

	studentController := controllers.NewStudentController(db, cfg)
	student := app.Group("/student", authenticate, middleware.RequireRole(models.OpStudent))
	student.Get("/dashboard", studentController.Dashboard)
	student.Get("/courses", studentController.AvailableCourses)
	student.Post("/course/:id/enroll", studentController.Enroll)
	student.Post("/course/:id/progress", studentController.UpdateProgress)
	student.Get("/course/:id", studentController.Course)
	student.Get("/module/:id", studentController.Module)
	student.Get("/assessment/:id", studentController.Assessment)
	student.Post("/assessment/:id", studentController.SubmitAssessment)
	student.Get("/progress", studentController.Progress)

	instructorController := controllers.NewInstructorController(db, cfg)
	instructor := app.Group("/instructor", authenticate, middleware.RequireRole(models.OpInstructor))
	instructor.Get("/dashboard", instructorController.Dashboard)
	instructor.Post("/course/create", instructorController.CreateCourse)
	instructor.Get("/course/:id/manage", instructorController.ManageCourse)
	instructor.Post("/course/:id/manage", instructorController.UpdateCourse)
	instructor.Post("/module/create/:courseId", instructorController.CreateModule)
	instructor.Post("/assessment/create/:moduleId", instructorController.CreateAssessment)
	instructor.Get("/assessment/review", instructorController.ReviewSubmissions)
	instructor.Post("/review/submit/:resultId", instructorController.GradeSubmission)

	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/admin", authenticate, middleware.RequireRole(models.OpAdmin))
	admin.Get("/dashboard", adminController.Dashboard)
	admin.Get("/manage/users", adminController.ManageUsers)
	admin.Post("/user/:id/edit", adminController.EditUser)
	admin.Post("/user/:id/delete", adminController.DeleteUser)
	admin.Get("/manage/courses", adminController.ManageCourses)
	admin.Post("/course/create", adminController.CreateCourse)
	admin.Post("/course/:id/edit", adminController.EditCourse)
	admin.Post("/course/:id/delete", adminController.DeleteCourse)
}
