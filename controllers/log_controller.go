package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"apply/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogController контроллер журнала статусов заявок
type LogController struct {
	db *gorm.DB
}

// NewLogController создает новый экземпляр LogController
func NewLogController(db *gorm.DB) *LogController {
	return &LogController{db: db}
}

// appendLog добавляет запись в журнал статусов заявки. Журнал append-only:
// смена статуса — это всегда новая строка, прежние записи не трогаем.
// Допустимость перехода не проверяется: сотрудник может выставить любой
// статус после любого (ручная корректировка).
func appendLog(db *gorm.DB, applicationID uint, status, description string, createdByID *uint) (*models.Log, error) {
	entry := models.Log{
		ApplicationID: applicationID,
		Status:        status,
		Description:   description,
		CreatedByID:   createdByID,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// latestLog возвращает самую свежую запись журнала заявки.
// При совпадении created_at берем запись с большим id.
func latestLog(db *gorm.DB, applicationID uint) (*models.Log, error) {
	var entry models.Log
	err := db.Where("application_id = ?", applicationID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateLog добавляет запись журнала вручную (консультант и выше)
// POST /logs
func (lc *LogController) CreateLog(c *gin.Context) {
	var req models.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	// Проверяем, что заявка существует
	var app models.Application
	if err := lc.db.First(&app, req.ApplicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	var createdBy *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			createdBy = &id
		}
	}

	entry, err := appendLog(lc.db, app.ID, req.Status, req.Description, createdBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании записи журнала"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  models.NewLogResponse(entry),
	})
}

// ListLogs возвращает все записи журнала заявки, новые первыми
// GET /applications/:id/logs
func (lc *LogController) ListLogs(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	if err := lc.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	var logs []models.Log
	if err := lc.db.Where("application_id = ?", app.ID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении журнала"})
		return
	}

	responses := make([]models.LogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, models.NewLogResponse(&logs[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  responses,
	})
}

// LatestLog возвращает текущий статус заявки — самую свежую запись журнала
// GET /applications/:id/logs/latest
func (lc *LogController) LatestLog(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	if err := lc.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	entry, err := latestLog(lc.db, app.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Не должно случаться: при создании заявки всегда пишется DRAFT
			c.JSON(http.StatusNotFound, gin.H{"error": "У заявки нет записей журнала"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении журнала"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  models.NewLogResponse(entry),
	})
}

// UpdateLog правит статус/описание существующей записи журнала.
// Админский обходной путь для исправления ошибочных записей.
// PATCH /logs/:id
func (lc *LogController) UpdateLog(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id записи"})
		return
	}

	var req models.LogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}
	if req.Status == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нет полей для обновления"})
		return
	}

	var entry models.Log
	if err := lc.db.First(&entry, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись журнала не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске записи"})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if err := lc.db.Model(&entry).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении записи"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  models.NewLogResponse(&entry),
	})
}

// DeleteLog удаляет запись журнала по id (менеджер и выше)
// DELETE /logs/:id
func (lc *LogController) DeleteLog(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id записи"})
		return
	}

	var entry models.Log
	if err := lc.db.First(&entry, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись журнала не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске записи"})
		return
	}

	if err := lc.db.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении записи"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Запись журнала удалена",
	})
}
