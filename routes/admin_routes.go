package routes

import (
	"apply/controllers"
	"apply/middleware"
	"apply/models"
	"apply/utils"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes настраивает административные маршруты (только ADMIN)
func SetupAdminRoutes(r *gin.Engine) {
	db := utils.GetDB()

	userController := controllers.NewUserController(db)
	programController := controllers.NewProgramController(db)

	adminGroup := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		adminGroup.GET("/users", userController.ListUsers)
		adminGroup.PATCH("/users/:id/role", userController.ChangeRole)

		adminGroup.POST("/programs", programController.CreateProgram)
		adminGroup.PATCH("/programs/:id", programController.UpdateProgram)
		adminGroup.DELETE("/programs/:id", programController.DeleteProgram)

		adminGroup.POST("/required-documents", programController.CreateRequiredDocument)
		adminGroup.DELETE("/required-documents/:id", programController.DeleteRequiredDocument)
	}
}
