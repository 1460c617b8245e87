package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"elearn/backend/config"
	"elearn/backend/models"
	"elearn/backend/utils"
)

var validate = validator.New()

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type registerInput struct {
	Username        string `json:"username" form:"username" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	FullName        string `json:"full_name" form:"full_name" validate:"required"`
	Role            string `json:"role" form:"role"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user with a hashed password. Username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Username, email and full name are required")
	}

	if len(input.Password) < 6 {
		return utils.BadRequest(c, "Password must be at least 6 characters")
	}
	if input.Password != input.PasswordConfirm {
		return utils.BadRequest(c, "Passwords do not match")
	}

	role := models.Role(input.Role)
	if input.Role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return utils.BadRequest(c, "Unknown role")
	}

	// Uniqueness checks before any row is written.
	var existing models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Username is already taken")
	}
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.Conflict(c, "Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), ac.Cfg.BcryptCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		FullName:     input.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created, please log in to start learning",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type loginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token plus the role landing page.
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Username and password are required")
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid username or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid username or password")
	}
	if !user.IsActive {
		return utils.Unauthorized(c, "Your account has been deactivated")
	}

	token, err := utils.GenerateToken(&user, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"landing": user.Role.DashboardPath(),
		"user": fiber.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}

// Logout is stateless on the token surface; the client drops its token.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return utils.Message(c, fiber.StatusOK, "You have been logged out")
}
