package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"apply/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationController контроллер для работы с заявками на поступление
type ApplicationController struct {
	db *gorm.DB
}

// NewApplicationController создает новый экземпляр ApplicationController
func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{db: db}
}

func applicantFromRequest(req *models.ApplicantRequest) models.Applicant {
	return models.Applicant{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		MiddleName:           req.MiddleName,
		Birthdate:            req.Birthdate,
		IdentificationNumber: req.IdentificationNumber,
		DocumentNumber:       req.DocumentNumber,
		Citizenship:          req.Citizenship,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
	}
}

func representativeFromRequest(req *models.RepresentativeRequest) models.Representative {
	return models.Representative{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		MiddleName:           req.MiddleName,
		IdentificationNumber: req.IdentificationNumber,
		DocumentNumber:       req.DocumentNumber,
		RelationshipDegree:   req.RelationshipDegree,
		Email:                req.Email,
		Phone:                req.Phone,
	}
}

func applyDetailsRequest(details *models.Details, req *models.DetailsRequest) {
	if req.ProgramID != nil {
		details.ProgramID = req.ProgramID
	}
	if req.AcademicLevel != nil {
		details.AcademicLevel = req.AcademicLevel
	}
	if req.StudyLanguage != nil {
		details.StudyLanguage = req.StudyLanguage
	}
	if req.StudyForm != nil {
		details.StudyForm = req.StudyForm
	}
	if req.IsDormNeeds != nil {
		details.IsDormNeeds = *req.IsDormNeeds
	}
	if req.IsScholarship != nil {
		details.IsScholarship = *req.IsScholarship
	}
	if req.ContractSum != nil {
		details.ContractSum = req.ContractSum
	}
	if req.StartAcademicY != nil {
		details.StartAcademicY = req.StartAcademicY
	}
}

// CreateApplication создает заявку. Заявка и первая запись журнала (DRAFT)
// создаются в одной транзакции.
// POST /applications
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var req models.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var consultantID *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			consultantID = &id
		}
	}

	var app models.Application
	err := ac.db.Transaction(func(tx *gorm.DB) error {
		app = models.Application{
			ContractLanguage: req.ContractLanguage,
			ContractSignType: req.ContractSignType,
			ConsultantID:     consultantID,
		}

		if req.Applicant != nil {
			applicant := applicantFromRequest(req.Applicant)
			if err := tx.Create(&applicant).Error; err != nil {
				return err
			}
			app.ApplicantID = &applicant.ID
		}
		if req.Representative != nil {
			rep := representativeFromRequest(req.Representative)
			if err := tx.Create(&rep).Error; err != nil {
				return err
			}
			app.RepresentativeID = &rep.ID
		}
		if req.Details != nil {
			var details models.Details
			applyDetailsRequest(&details, req.Details)
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
			app.DetailsID = &details.ID
		}

		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		// Первая запись журнала создается вместе с заявкой
		_, err := appendLog(tx, app.ID, models.StatusDraft, "Заявка создана", consultantID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании заявки"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  app,
	})
}

// GetApplication возвращает заявку со всеми вложенными сущностями
// GET /applications/:id
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	err = ac.db.
		Preload("Applicant").
		Preload("Representative").
		Preload("Details").
		Preload("Details.Program").
		Preload("Documents").
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("logs.created_at DESC, logs.id DESC")
		}).
		First(&app, appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении заявки"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  app,
	})
}

// ListApplications возвращает заявки с пагинацией и фильтрами
// GET /applications
func (ac *ApplicationController) ListApplications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := ac.db.Model(&models.Application{})

	if consultant := c.Query("consultant_id"); consultant != "" {
		query = query.Where("consultant_id = ?", consultant)
	}
	if iin := c.Query("identification_number"); iin != "" {
		query = query.Joins("JOIN applicants ON applicants.id = applications.applicant_id").
			Where("applicants.identification_number = ?", iin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при подсчете заявок"})
		return
	}

	var apps []models.Application
	if err := query.
		Preload("Applicant").
		Preload("Details").
		Order("applications.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении заявок"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"result":      apps,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// UpdateApplication обновляет заявку и вложенные сущности
// PATCH /applications/:id
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var req models.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var app models.Application
	if err := ac.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	err = ac.db.Transaction(func(tx *gorm.DB) error {
		if req.Applicant != nil {
			if app.ApplicantID != nil {
				applicant := applicantFromRequest(req.Applicant)
				if err := tx.Model(&models.Applicant{}).
					Where("id = ?", *app.ApplicantID).
					Updates(&applicant).Error; err != nil {
					return err
				}
			} else {
				applicant := applicantFromRequest(req.Applicant)
				if err := tx.Create(&applicant).Error; err != nil {
					return err
				}
				app.ApplicantID = &applicant.ID
			}
		}

		if req.Representative != nil {
			if app.RepresentativeID != nil {
				rep := representativeFromRequest(req.Representative)
				if err := tx.Model(&models.Representative{}).
					Where("id = ?", *app.RepresentativeID).
					Updates(&rep).Error; err != nil {
					return err
				}
			} else {
				rep := representativeFromRequest(req.Representative)
				if err := tx.Create(&rep).Error; err != nil {
					return err
				}
				app.RepresentativeID = &rep.ID
			}
		}

		if req.Details != nil {
			var details models.Details
			if app.DetailsID != nil {
				if err := tx.First(&details, *app.DetailsID).Error; err != nil {
					return err
				}
				applyDetailsRequest(&details, req.Details)
				if err := tx.Save(&details).Error; err != nil {
					return err
				}
			} else {
				applyDetailsRequest(&details, req.Details)
				if err := tx.Create(&details).Error; err != nil {
					return err
				}
				app.DetailsID = &details.ID
			}
		}

		if req.ContractNumber != nil {
			app.ContractNumber = req.ContractNumber
		}
		if req.ContractLanguage != nil {
			app.ContractLanguage = req.ContractLanguage
		}
		if req.ContractSignType != nil {
			app.ContractSignType = req.ContractSignType
		}
		if req.SubmittedAt != nil {
			app.SubmittedAt = req.SubmittedAt
		}

		return tx.Save(&app).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении заявки"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  app,
	})
}

// DeleteApplication помечает заявку удаленной (мягкое удаление)
// DELETE /applications/:id
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var app models.Application
	if err := ac.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	if err := ac.db.Delete(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении заявки"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Заявка удалена",
	})
}

// CheckDuplicate проверяет, подавал ли человек с данным ИИН заявку за
// последние 6 месяцев. Дубликатом считается неудаленная заявка, у которой
// есть хотя бы одна запись журнала со статусом, отличным от DRAFT.
// Проверка советующая: от гонки двух одновременных подач не защищает.
// POST /applications/check-duplicate
func (ac *ApplicationController) CheckDuplicate(c *gin.Context) {
	var req models.DuplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	cutoff := time.Now().AddDate(0, -6, 0)

	var apps []models.Application
	err := ac.db.
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Where("applicants.identification_number = ?", req.IdentificationNumber).
		Where("applications.created_at >= ?", cutoff).
		Where("EXISTS (SELECT 1 FROM logs WHERE logs.application_id = applications.id AND logs.status <> ?)", models.StatusDraft).
		Preload("Applicant").
		Order("applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при проверке дубликатов"})
		return
	}

	summaries := make([]models.ApplicationSummary, 0, len(apps))
	for i := range apps {
		summary := models.ApplicationSummary{
			ID:        apps[i].ID,
			CreatedAt: apps[i].CreatedAt,
		}
		if apps[i].Applicant != nil {
			summary.ApplicantName = apps[i].Applicant.LastName + " " + apps[i].Applicant.FirstName
		}
		if entry, err := latestLog(ac.db, apps[i].ID); err == nil {
			summary.LatestStatus = entry.Status
		}
		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, models.DuplicateCheckResponse{
		HasDuplicate: len(apps) > 0,
		Applications: summaries,
	})
}

// AddDocument прикрепляет метаданные документа к заявке
// POST /applications/:id/documents
func (ac *ApplicationController) AddDocument(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var req models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var app models.Application
	if err := ac.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске заявки"})
		return
	}

	var uploadedBy *uint
	if userID, exists := c.Get("user_id"); exists {
		if idInt, ok := userID.(int); ok {
			id := uint(idInt)
			uploadedBy = &id
		}
	}

	doc := models.Document{
		ApplicationID: app.ID,
		Name:          req.Name,
		Code:          req.Code,
		Link:          req.Link,
		Metadata:      req.Metadata,
		UploadedByID:  uploadedBy,
	}
	if err := ac.db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении документа"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  doc,
	})
}

// ListDocuments возвращает документы заявки
// GET /applications/:id/documents
func (ac *ApplicationController) ListDocuments(c *gin.Context) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id заявки"})
		return
	}

	var docs []models.Document
	if err := ac.db.Where("application_id = ?", appID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении документов"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  docs,
	})
}
