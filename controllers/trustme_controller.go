package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"apply/config"
	"apply/models"
	"apply/services"
	"apply/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrustMeController - контроллер интеграции с электронным подписанием TrustMe
type TrustMeController struct {
	db      *gorm.DB
	cfg     *config.Config
	trustme *services.TrustMe
}

// NewTrustMeController создает новый контроллер
func NewTrustMeController(db *gorm.DB, cfg *config.Config) *TrustMeController {
	return &TrustMeController{
		db:      db,
		cfg:     cfg,
		trustme: services.NewTrustMe(cfg),
	}
}

// Webhook обрабатывает уведомление TrustMe о смене статуса документа.
// Заявка ищется по trust_me_id либо по trust_me_url, числовой код провайдера
// переводится в статус журнала и дописывается новой записью. Повторные
// одинаковые уведомления дают повторные записи журнала — дедупликации нет.
// POST /trustme/webhook
func (tc *TrustMeController) Webhook(c *gin.Context) {
	// Проверка общего секрета до обработки тела
	secret := c.GetHeader("X-Secret-Key")
	if secret == "" || secret != tc.cfg.TrustMeWebhookSecret {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":    "Error",
			"errorText": "Неверный секретный ключ",
		})
		return
	}

	var payload struct {
		ContractID string `json:"contract_id"`
		Status     *int   `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ContractID == "" || payload.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":    "Error",
			"errorText": "Неверный формат уведомления",
		})
		return
	}

	// Ищем заявку по внешнему идентификатору договора или по ссылке
	var app models.Application
	err := tc.db.
		Where("trust_me_id = ? OR trust_me_url = ?", payload.ContractID, payload.ContractID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":    "Error",
				"errorText": "Заявка по договору не найдена",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "Error",
			"errorText": "Ошибка при поиске заявки",
		})
		return
	}

	status := utils.TranslateTrustMeStatus(*payload.Status)
	description := fmt.Sprintf("Уведомление TrustMe: код %d", *payload.Status)

	// Системная запись, без автора
	if _, err := appendLog(tc.db, app.ID, status, description, nil); err != nil {
		utils.LogError(err, "TrustMeWebhook")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "Error",
			"errorText": "Ошибка при записи статуса",
		})
		return
	}

	go services.NotifyStatusChange(tc.db, tc.cfg, app.ID, status)

	c.JSON(http.StatusOK, gin.H{"status": "Ok"})
}

// SendContract отправляет договор заявки на подписание в TrustMe
// POST /applications/:id/trustme/send
func (tc *TrustMeController) SendContract(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var req struct {
		FileLink string `json:"file_link" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var app models.Application
	if err := tc.db.Preload("Applicant").First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	// Номер договора присваивается при первой отправке
	if app.ContractNumber == nil {
		number := uuid.New().String()
		app.ContractNumber = &number
	}

	var phone string
	if app.Applicant != nil && app.Applicant.Phone != nil {
		phone = *app.Applicant.Phone
	}

	result, err := tc.trustme.UploadContract(*app.ContractNumber, req.FileLink, phone)
	if err != nil {
		utils.LogError(err, "SendContract")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Не удалось отправить договор на подписание",
			"details": err.Error(),
		})
		return
	}

	signType := models.SignTypeTrustMe
	app.TrustMeID = &result.DocumentID
	app.TrustMeURL = &result.URL
	app.ContractSignType = &signType
	if err := tc.db.Save(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении заявки"})
		return
	}

	var createdBy *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			createdBy = &id
		}
	}
	if _, err := appendLog(tc.db, app.ID, models.StatusNeedSignature, "Договор отправлен на подписание в TrustMe", createdBy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при записи статуса"})
		return
	}

	go services.NotifyStatusChange(tc.db, tc.cfg, app.ID, models.StatusNeedSignature)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"trust_me_id":  result.DocumentID,
			"trust_me_url": result.URL,
		},
	})
}

// CheckStatus опрашивает TrustMe о текущем статусе договора и дописывает
// переведенный статус в журнал. Ручная альтернатива webhook'у: консультант
// может сверить статус, не дожидаясь уведомления провайдера.
// GET /applications/:id/trustme/status
func (tc *TrustMeController) CheckStatus(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	if err := tc.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	if app.TrustMeID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Договор не отправлялся на подписание"})
		return
	}

	code, err := tc.trustme.GetStatus(*app.TrustMeID)
	if err != nil {
		utils.LogError(err, "CheckStatus")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Не удалось получить статус договора",
			"details": err.Error(),
		})
		return
	}

	status := utils.TranslateTrustMeStatus(code)
	description := fmt.Sprintf("Опрос TrustMe: код %d", code)

	var createdBy *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			createdBy = &id
		}
	}
	if _, err := appendLog(tc.db, app.ID, status, description, createdBy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при записи статуса"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"provider_code": code,
			"status":        status,
		},
	})
}

// RevokeContract отзывает договор с подписания (расторжение)
// POST /applications/:id/trustme/revoke
func (tc *TrustMeController) RevokeContract(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	if err := tc.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	if app.TrustMeID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Договор не отправлялся на подписание"})
		return
	}

	if err := tc.trustme.Revoke(*app.TrustMeID); err != nil {
		utils.LogError(err, "RevokeContract")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Не удалось отозвать договор",
			"details": err.Error(),
		})
		return
	}

	var createdBy *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			createdBy = &id
		}
	}
	if _, err := appendLog(tc.db, app.ID, models.StatusNeedSignatureTerminateContract, "Договор отозван с подписания", createdBy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при записи статуса"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Договор отозван",
	})
}
