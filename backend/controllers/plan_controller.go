package controllers

import (
	"errors"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/plan"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PlanController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPlanController(db *gorm.DB, cfg *config.Config) *PlanController {
	return &PlanController{DB: db, Cfg: cfg}
}

// GeneratePlan godoc
// @Summary Generate a workout plan
// @Description Builds a plan from the user's fitness goal and stores it as
// @Description a new workout log
// @Tags plan
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /generate_plan [post]
func (pc *PlanController) GeneratePlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	log, err := plan.NewGenerator(pc.DB).Generate(userID)
	if err != nil {
		return utils.InternalServerError(c, "Plan could not be generated")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
		"log_id":  log.ID,
		"details": log.Details,
	})
}

// LatestPlan godoc
// @Summary Get the user's latest workout plan
// @Description Returns the most recent plan rendered as exercise lines
// @Tags plan
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /latest_plan [get]
func (pc *PlanController) LatestPlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	log, err := plan.LatestLog(pc.DB, userID)
	if err != nil {
		if errors.Is(err, plan.ErrNoPlan) {
			return utils.NotFound(c, "User has no workout plan")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"plan":       plan.Render(pc.DB, log),
		"details":    log.Details,
		"completed":  log.UserHasCompleted,
		"created_at": log.CreatedAt,
	})
}
