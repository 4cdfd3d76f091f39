package routes

import (
	"apply/config"
	"apply/controllers"
	"apply/middleware"
	"apply/models"
	"apply/utils"

	"github.com/gin-gonic/gin"
)

// SetupApplicationRoutes настраивает маршруты заявок и журнала статусов
func SetupApplicationRoutes(r *gin.Engine, cfg *config.Config) {
	db := utils.GetDB()

	applicationController := controllers.NewApplicationController(db)
	logController := controllers.NewLogController(db)
	trustmeController := controllers.NewTrustMeController(db, cfg)

	// Группа маршрутов заявок (требует авторизации)
	appGroup := r.Group("/applications", middleware.JWTAuthMiddleware())
	{
		appGroup.POST("", applicationController.CreateApplication)
		appGroup.GET("", applicationController.ListApplications)
		appGroup.POST("/check-duplicate", applicationController.CheckDuplicate)
		appGroup.GET("/:id", applicationController.GetApplication)
		appGroup.PATCH("/:id", applicationController.UpdateApplication)
		appGroup.DELETE("/:id", middleware.RequireRole(models.RoleManager), applicationController.DeleteApplication)

		// Документы заявки
		appGroup.POST("/:id/documents", applicationController.AddDocument)
		appGroup.GET("/:id/documents", applicationController.ListDocuments)

		// Журнал статусов заявки
		appGroup.GET("/:id/logs", logController.ListLogs)
		appGroup.GET("/:id/logs/latest", logController.LatestLog)

		// Электронное подписание
		appGroup.POST("/:id/trustme/send", middleware.RequireRole(models.RoleConsultant), trustmeController.SendContract)
		appGroup.GET("/:id/trustme/status", middleware.RequireRole(models.RoleConsultant), trustmeController.CheckStatus)
		appGroup.POST("/:id/trustme/revoke", middleware.RequireRole(models.RoleManager), trustmeController.RevokeContract)
	}

	// Операции над записями журнала
	logGroup := r.Group("/logs", middleware.JWTAuthMiddleware())
	{
		logGroup.POST("", middleware.RequireRole(models.RoleConsultant), logController.CreateLog)
		logGroup.PATCH("/:id", middleware.RequireRole(models.RoleManager), logController.UpdateLog)
		logGroup.DELETE("/:id", middleware.RequireRole(models.RoleManager), logController.DeleteLog)
	}
}
