package controllers

import (
	"fitnessfiend/backend/config"
	"fitnessfiend/backend/models"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizController(db *gorm.DB, cfg *config.Config) *QuizController {
	return &QuizController{DB: db, Cfg: cfg}
}

// ResetUserQuiz godoc
// @Summary Reset the user's quiz status (for testing)
// @Tags quiz
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reset_user_quiz [get]
func (qc *QuizController) ResetUserQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	err = qc.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("has_finished_quiz", false).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "failure",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
	})
}

// SubmitUserQuiz godoc
// @Summary Store the onboarding quiz results
// @Description Splits the answers between the user row and a fresh monster.
// @Description Runs in one transaction so a failed monster insert never
// @Description leaves the user marked as quiz-complete.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "quiz_results"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /submit_user_quiz [post]
func (qc *QuizController) SubmitUserQuiz(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		QuizResults struct {
			Species            string `json:"species"`
			MonsterName        string `json:"monster_name"`
			SpeciesID          string `json:"species_id"`
			Experience         string `json:"experience"`
			DaysPerWeek        int    `json:"daysPerWeek"`
			AvailableEquipment string `json:"availableEquipment"`
		} `json:"quiz_results"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.QuizResults.Species == "" {
		return utils.BadRequest(c, "quiz_results.species is required")
	}

	results := input.QuizResults
	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"experience":          results.Experience,
				"days_per_week":       results.DaysPerWeek,
				"available_equipment": results.AvailableEquipment,
				"has_finished_quiz":   true,
			}).Error
		if err != nil {
			return err
		}

		monster := models.Monster{
			UserID:    userID,
			Name:      results.MonsterName,
			Species:   results.Species,
			SpeciesID: results.SpeciesID,
			Level:     1,
		}
		return tx.Create(&monster).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error inserting data",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
	})
}
