package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"apply/models"
	"apply/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserController контроллер для регистрации и авторизации сотрудников
type UserController struct {
	db *gorm.DB
}

// NewUserController создает новый экземпляр UserController
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// Register регистрирует нового пользователя (роль USER)
// POST /auth/register
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=8"`
		Name     *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var existing models.User
	if err := uc.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Пользователь с таким email уже существует"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обработке пароля"})
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Role:     models.RoleUser,
	}
	if err := uc.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании пользователя"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login выдает JWT по email и паролю
// POST /auth/login
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := uc.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при выдаче токена"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"result": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout помещает токен в черный список до истечения срока его действия
// POST /auth/logout
func (uc *UserController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Токен не передан"})
		return
	}

	rdb := utils.GetRedis()
	if rdb == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Хранилище сессий недоступно"})
		return
	}

	// TTL записи = остаток срока действия токена
	ttl := 72 * time.Hour
	if claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET")); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
				ttl = until
			}
		}
	}

	if err := rdb.Set(utils.RedisCtx(), "blacklist:"+token, "1", ttl).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при завершении сессии"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Сессия завершена",
	})
}

// ListUsers возвращает пользователей (админ)
// GET /admin/users
func (uc *UserController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := uc.db.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении пользователей"})
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, u := range users {
		result = append(result, gin.H{
			"id":    u.ID,
			"email": u.Email,
			"name":  u.Name,
			"role":  u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// ChangeRole меняет роль пользователя (админ)
// PATCH /admin/users/:id/role
func (uc *UserController) ChangeRole(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id пользователя"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	if !models.RoleAtLeast(req.Role, models.RoleUser) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неизвестная роль"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске пользователя"})
		return
	}

	if err := uc.db.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении роли"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"id":   user.ID,
			"role": req.Role,
		},
	})
}
