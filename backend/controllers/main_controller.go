package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/models"
	"elearn/backend/utils"
)

type MainController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMainController(db *gorm.DB, cfg *config.Config) *MainController {
	return &MainController{DB: db, Cfg: cfg}
}

// Index is public. An authenticated caller additionally gets the landing
// path for their role.
func (mc *MainController) Index(c *fiber.Ctx) error {
	response := fiber.Map{
		"name":        "E-Learning Platform",
		"description": "Enroll in courses, work through modules, and submit assessments.",
	}

	if userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg); err == nil {
		var user models.User
		if err := mc.DB.First(&user, userID).Error; err == nil && user.IsActive {
			response["landing"] = user.Role.DashboardPath()
		}
	}

	return c.JSON(response)
}

func (mc *MainController) About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":  "E-Learning Platform",
		"about": "A role-based learning management platform for students, instructors and admins.",
	})
}
