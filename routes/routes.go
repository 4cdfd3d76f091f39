package routes

import (
	"apply/config"
	"apply/controllers"
	"apply/middleware"
	"apply/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://apply.university.kz"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Secret-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	db := utils.GetDB()
	userController := controllers.NewUserController(db)
	programController := controllers.NewProgramController(db)
	trustmeController := controllers.NewTrustMeController(db, cfg)

	r.POST("/auth/register", userController.Register)
	r.POST("/auth/login", userController.Login)
	r.POST("/auth/logout", userController.Logout)

	// Входящий webhook от TrustMe (авторизация по секретному заголовку)
	r.POST("/trustme/webhook", trustmeController.Webhook)

	// Публичные справочники
	r.GET("/programs", programController.ListPrograms)
	r.GET("/required-documents", programController.ListRequiredDocuments)

	// Заявки и журнал статусов
	SetupApplicationRoutes(r, cfg)

	// Административные маршруты
	SetupAdminRoutes(r)

	return r
}
