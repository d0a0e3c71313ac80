package controllers_test

import (
	"testing"

	"fitnessfiend/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func submitQuiz(t *testing.T, token string) {
	t.Helper()
	req := jsonRequest("PUT", "/submit_user_quiz", map[string]interface{}{
		"quiz_results": map[string]interface{}{
			"species":            "Kettlehell",
			"monster_name":       "Quizzy",
			"species_id":         "KM01",
			"experience":         "beginner",
			"daysPerWeek":        3,
			"availableEquipment": "dumbbells",
		},
	}, token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("submit_user_quiz failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("submit_user_quiz returned status %d", resp.StatusCode)
	}
}

func TestSubmitUserQuiz(t *testing.T) {
	token := registerUser(t, "quiz@example.com", "quizuser")
	submitQuiz(t, token)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "quiz@example.com").First(&user).Error)
	assert.True(t, user.HasFinishedQuiz)
	assert.Equal(t, "beginner", user.Experience)
	assert.Equal(t, 3, user.DaysPerWeek)
	assert.Equal(t, "dumbbells", user.AvailableEquipment)

	monster := monsterByOwnerEmail(t, "quiz@example.com")
	assert.Equal(t, "Quizzy", monster.Name)
	assert.Equal(t, "Kettlehell", monster.Species)
	assert.Equal(t, "KM01", monster.SpeciesID)
	assert.Equal(t, 1, monster.Level)
}

func TestSubmitUserQuizWithoutSpecies(t *testing.T) {
	token := registerUser(t, "quizempty@example.com", "quizempty")

	req := jsonRequest("POST", "/submit_user_quiz", map[string]interface{}{
		"quiz_results": map[string]interface{}{
			"monster_name": "Nameless",
		},
	}, token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Пользователь не должен быть помечен как прошедший квиз
	var user models.User
	assert.NoError(t, db.Where("email = ?", "quizempty@example.com").First(&user).Error)
	assert.False(t, user.HasFinishedQuiz)
}

func TestGetUserInfoAfterQuiz(t *testing.T) {
	token := registerUser(t, "quizinfo@example.com", "quizinfo")
	submitQuiz(t, token)

	req := jsonRequest("GET", "/get_user_info", nil, token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["has_finished_quiz"])
	assert.Equal(t, "Quizzy", body["name"])
}

func TestResetUserQuiz(t *testing.T) {
	token := registerUser(t, "quizreset@example.com", "quizreset")
	submitQuiz(t, token)

	req := jsonRequest("GET", "/reset_user_quiz", nil, token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	assert.NoError(t, db.Where("email = ?", "quizreset@example.com").First(&user).Error)
	assert.False(t, user.HasFinishedQuiz)
}
