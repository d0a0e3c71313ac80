package routes

import (
	"fitnessfiend/backend/config"
	"fitnessfiend/backend/controllers"
	"fitnessfiend/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/create_account", authController.CreateAccount)
	app.Post("/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Monster routes
	monsterController := controllers.NewMonsterController(db, cfg)
	app.Get("/get_user_info", authMiddleware, monsterController.GetUserInfo)
	app.Get("/level_monster_up", authMiddleware, monsterController.LevelMonsterUp)
	app.Get("/reset_monster_level", authMiddleware, monsterController.ResetMonsterLevel)
	app.Post("/create_monster_for_user", authMiddleware, monsterController.CreateMonsterForUser)
	app.Post("/add_monster_experience", authMiddleware, monsterController.AddMonsterExperience)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg)
	app.Get("/reset_user_quiz", authMiddleware, quizController.ResetUserQuiz)
	app.Put("/submit_user_quiz", authMiddleware, quizController.SubmitUserQuiz)
	app.Post("/submit_user_quiz", authMiddleware, quizController.SubmitUserQuiz)

	// Plan routes
	planController := controllers.NewPlanController(db, cfg)
	app.Post("/generate_plan", authMiddleware, planController.GeneratePlan)
	app.Get("/latest_plan", authMiddleware, planController.LatestPlan)

	// Generic table passthrough
	tableController := controllers.NewTableController(db, cfg)
	api := app.Group("/api", authMiddleware)
	api.Get("/:table", tableController.FetchRows)
	api.Post("/:table", tableController.UpdateRows)
	api.Put("/:table", tableController.InsertRow)
	api.Delete("/:table", tableController.DeleteRows)
	api.Get("/:table/:id", tableController.FetchRowByID)
	api.Post("/:table/:id", tableController.UpdateRowByID)
}
