package controllers_test

import (
	"testing"
	"time"

	"fitnessfiend/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateAccount(t *testing.T) {
	token := registerUser(t, "fresh@example.com", "fresh")
	assert.NotEmpty(t, token)

	var user models.User
	err := db.Where("email = ?", "fresh@example.com").First(&user).Error
	assert.NoError(t, err)
	assert.Equal(t, 1, user.LoginStreak)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	registerUser(t, "dup@example.com", "dupone")

	req := jsonRequest("POST", "/create_account", map[string]string{
		"email":    "dup@example.com",
		"username": "duptwo",
		"password": "password123",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Дубликат не должен попасть в таблицу
	var count int64
	db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateAccountMissingFields(t *testing.T) {
	req := jsonRequest("POST", "/create_account", map[string]string{
		"email": "nopass@example.com",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	registerUser(t, "login@example.com", "loginuser")

	req := jsonRequest("POST", "/login", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decodeBody(t, resp)["token"])
}

func TestLoginBadCredentials(t *testing.T) {
	registerUser(t, "badpass@example.com", "badpass")

	req := jsonRequest("POST", "/login", map[string]string{
		"email":    "badpass@example.com",
		"password": "wrong",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginWithinDayExtendsStreak(t *testing.T) {
	registerUser(t, "streak@example.com", "streaker")

	// Последний вход был два часа назад
	err := db.Model(&models.User{}).
		Where("email = ?", "streak@example.com").
		Update("last_logged_in", time.Now().Add(-2*time.Hour)).Error
	assert.NoError(t, err)

	req := jsonRequest("POST", "/login", map[string]string{
		"email":    "streak@example.com",
		"password": "password123",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	db.Where("email = ?", "streak@example.com").First(&user)
	assert.Equal(t, 2, user.LoginStreak)
}

func TestLoginAfterGapResetsStreak(t *testing.T) {
	registerUser(t, "gap@example.com", "gapuser")

	err := db.Model(&models.User{}).
		Where("email = ?", "gap@example.com").
		Updates(map[string]interface{}{
			"last_logged_in": time.Now().Add(-25 * time.Hour),
			"login_streak":   7,
		}).Error
	assert.NoError(t, err)

	req := jsonRequest("POST", "/login", map[string]string{
		"email":    "gap@example.com",
		"password": "password123",
	}, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	db.Where("email = ?", "gap@example.com").First(&user)
	assert.Equal(t, 1, user.LoginStreak)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	req := jsonRequest("GET", "/get_user_info", nil, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	req := jsonRequest("GET", "/get_user_info", nil, "not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
