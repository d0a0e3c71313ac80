package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/models"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// HashPassword хеширует пароль через sha256. Login looks accounts up by
// (email, hash) equality, so the digest has to be deterministic; a salted
// scheme would break the duplicate-credentials check below.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CreateAccount godoc
// @Summary Register a new account
// @Description Creates a user and returns a fresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "email, username, password"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /create_account [post]
func (ac *AuthController) CreateAccount(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "email, username and password are required",
		})
	}

	// Аккаунт с таким email уже существует?
	var count int64
	if err := ac.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not query database",
		})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User with email already exists",
		})
	}

	user := models.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: HashPassword(input.Password),
		LastLoggedIn: time.Now(),
		LoginStreak:  1,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Account could not be created",
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
		"token":   token,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates by email and password, updates the login streak
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "email, password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}

	var users []models.User
	err := ac.DB.Where("email = ? AND password_hash = ?",
		input.Email, HashPassword(input.Password)).Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	if len(users) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Incorrect username/password",
		})
	}
	// Больше одного аккаунта с одинаковыми данными — нарушение инварианта
	if len(users) > 1 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Multiple users exist with those credentials... Uh Oh",
		})
	}

	user := users[0]

	// Логин в течение суток продлевает серию, иначе она начинается заново
	if time.Since(user.LastLoggedIn) < 24*time.Hour {
		user.LoginStreak++
	} else {
		user.LoginStreak = 1
	}
	user.LastLoggedIn = time.Now()
	if err := ac.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong when updating the user's login streak",
		})
	}

	ac.DB.Create(&models.LoginHistory{UserID: user.ID, LoginTime: time.Now()})

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
