package controllers

import (
	"errors"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/models"
	"fitnessfiend/backend/progression"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MonsterController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMonsterController(db *gorm.DB, cfg *config.Config) *MonsterController {
	return &MonsterController{DB: db, Cfg: cfg}
}

// monsterInfo собирает данные монстра вместе со статусом квиза владельца.
// Без монстра поля остаются nil, а статус квиза всё равно возвращается.
func (mc *MonsterController) monsterInfo(userID uint) (fiber.Map, error) {
	var user models.User
	if err := mc.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var monster models.Monster
	err := mc.DB.Where("user_id = ?", userID).First(&monster).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.Map{
				"name":              nil,
				"species":           nil,
				"exp":               nil,
				"level":             nil,
				"has_finished_quiz": user.HasFinishedQuiz,
			}, nil
		}
		return nil, err
	}

	return fiber.Map{
		"name":              monster.Name,
		"species":           monster.Species,
		"form":              progression.FormName(monster.SpeciesID),
		"exp":               monster.Exp,
		"level":             monster.Level,
		"has_finished_quiz": user.HasFinishedQuiz,
	}, nil
}

// GetUserInfo godoc
// @Summary Get the user's monster info
// @Description Returns the monster stats and whether the onboarding quiz is done
// @Tags monster
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /get_user_info [get]
func (mc *MonsterController) GetUserInfo(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	info, err := mc.monsterInfo(userID)
	if err != nil {
		return utils.NotFound(c, "User not found")
	}
	return c.JSON(info)
}

// LevelMonsterUp godoc
// @Summary Level the user's monster up by one
// @Tags monster
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /level_monster_up [get]
func (mc *MonsterController) LevelMonsterUp(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var monster models.Monster
	if err := mc.DB.Where("user_id = ?", userID).First(&monster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User does not have a monster",
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	level := progression.Level{
		Value: monster.Level,
		XPCap: progression.CapFor(monster.Level),
		XP:    monster.Exp,
	}
	level.LevelUp()

	updates := map[string]interface{}{
		"level": level.Value,
		"exp":   level.XP,
	}
	if progression.ShouldEvolve(level.Value, 1) {
		if next, err := progression.AdvanceForm(monster.SpeciesID); err == nil {
			updates["species_id"] = next
		}
	}

	if err := mc.DB.Model(&monster).Updates(updates).Error; err != nil {
		return utils.InternalServerError(c, "Monster could not be leveled up")
	}

	info, err := mc.monsterInfo(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// AddMonsterExperience godoc
// @Summary Grant experience to the user's monster
// @Description Adds workout experience and applies any level-ups and evolutions
// @Tags monster
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "amount"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /add_monster_experience [post]
func (mc *MonsterController) AddMonsterExperience(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Amount int `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var monster models.Monster
	if err := mc.DB.Where("user_id = ?", userID).First(&monster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User does not have a monster",
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	level := progression.Level{
		Value: monster.Level,
		XPCap: progression.CapFor(monster.Level),
		XP:    monster.Exp,
	}
	gained, err := level.AddExperience(input.Amount)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	updates := map[string]interface{}{
		"level": level.Value,
		"exp":   level.XP,
	}
	if progression.ShouldEvolve(level.Value, gained) {
		if next, err := progression.AdvanceForm(monster.SpeciesID); err == nil {
			updates["species_id"] = next
		}
	}

	if err := mc.DB.Model(&monster).Updates(updates).Error; err != nil {
		return utils.InternalServerError(c, "Monster experience could not be updated")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "success",
		"levels_gained": gained,
		"level":         level.Value,
		"exp":           level.XP,
	})
}

// ResetMonsterLevel godoc
// @Summary Reset the monster back to level 1 (for testing)
// @Tags monster
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reset_monster_level [get]
func (mc *MonsterController) ResetMonsterLevel(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	err = mc.DB.Model(&models.Monster{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"level": 1, "exp": 0}).Error
	if err != nil {
		return utils.InternalServerError(c, "Monster level could not be reset")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
	})
}

// CreateMonsterForUser godoc
// @Summary Create a monster for the user
// @Tags monster
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "monster_info"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /create_monster_for_user [post]
func (mc *MonsterController) CreateMonsterForUser(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		MonsterInfo struct {
			Name      string `json:"name"`
			Species   string `json:"species"`
			SpeciesID string `json:"species_id"`
			ImageName string `json:"image_name"`
		} `json:"monster_info"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	// В штатном режиме у пользователя не больше одного монстра
	var count int64
	if err := mc.DB.Model(&models.Monster{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User already has a monster",
		})
	}

	monster := models.Monster{
		UserID:    userID,
		Name:      input.MonsterInfo.Name,
		Species:   input.MonsterInfo.Species,
		SpeciesID: input.MonsterInfo.SpeciesID,
		ImageName: input.MonsterInfo.ImageName,
		Level:     1,
	}
	if err := mc.DB.Create(&monster).Error; err != nil {
		return utils.InternalServerError(c, "Monster could not be created")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "success",
	})
}
