package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"apply/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProgramController контроллер справочников: программы и обязательные документы
type ProgramController struct {
	db *gorm.DB
}

// NewProgramController создает новый экземпляр ProgramController
func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{db: db}
}

// ListPrograms возвращает активные образовательные программы
// GET /programs
func (pc *ProgramController) ListPrograms(c *gin.Context) {
	query := pc.db.Model(&models.EducationalProgram{}).Where("is_active = ?", true)

	if level := c.Query("academic_level"); level != "" {
		query = query.Where("academic_level = ?", level)
	}

	var programs []models.EducationalProgram
	if err := query.Order("code").Find(&programs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении программ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  programs,
	})
}

// CreateProgram добавляет программу в справочник (админ)
// POST /admin/programs
func (pc *ProgramController) CreateProgram(c *gin.Context) {
	var req models.ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var existing models.EducationalProgram
	if err := pc.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Программа с таким кодом уже существует"})
		return
	}

	program := models.EducationalProgram{
		Code:          req.Code,
		TitleRu:       req.TitleRu,
		TitleKz:       req.TitleKz,
		TitleEn:       req.TitleEn,
		AcademicLevel: req.AcademicLevel,
		Duration:      req.Duration,
		IsActive:      true,
	}
	if err := pc.db.Create(&program).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании программы"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  program,
	})
}

// UpdateProgram обновляет программу (админ)
// PATCH /admin/programs/:id
func (pc *ProgramController) UpdateProgram(c *gin.Context) {
	programID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id программы"})
		return
	}

	var req models.ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	var program models.EducationalProgram
	if err := pc.db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Программа не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске программы"})
		return
	}

	program.Code = req.Code
	program.TitleRu = req.TitleRu
	program.TitleKz = req.TitleKz
	program.TitleEn = req.TitleEn
	program.AcademicLevel = req.AcademicLevel
	program.Duration = req.Duration

	if err := pc.db.Save(&program).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении программы"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  program,
	})
}

// DeleteProgram помечает программу удаленной (админ)
// DELETE /admin/programs/:id
func (pc *ProgramController) DeleteProgram(c *gin.Context) {
	programID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id программы"})
		return
	}

	var program models.EducationalProgram
	if err := pc.db.First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Программа не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске программы"})
		return
	}

	if err := pc.db.Delete(&program).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении программы"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Программа удалена",
	})
}

// ListRequiredDocuments возвращает справочник обязательных документов
// GET /required-documents
func (pc *ProgramController) ListRequiredDocuments(c *gin.Context) {
	query := pc.db.Model(&models.RequiredDocument{})

	if level := c.Query("academic_level"); level != "" {
		query = query.Where("academic_level = ? OR academic_level IS NULL", level)
	}

	var docs []models.RequiredDocument
	if err := query.Order("code").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении справочника"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  docs,
	})
}

// CreateRequiredDocument добавляет документ в справочник (админ)
// POST /admin/required-documents
func (pc *ProgramController) CreateRequiredDocument(c *gin.Context) {
	var req struct {
		Code          string  `json:"code" binding:"required"`
		NameRu        string  `json:"name_ru" binding:"required"`
		NameKz        *string `json:"name_kz"`
		NameEn        *string `json:"name_en"`
		AcademicLevel *string `json:"academic_level"`
		IsRequired    *bool   `json:"is_required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные запроса",
			"details": err.Error(),
		})
		return
	}

	doc := models.RequiredDocument{
		Code:          req.Code,
		NameRu:        req.NameRu,
		NameKz:        req.NameKz,
		NameEn:        req.NameEn,
		AcademicLevel: req.AcademicLevel,
		IsRequired:    true,
	}
	if req.IsRequired != nil {
		doc.IsRequired = *req.IsRequired
	}

	if err := pc.db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании записи справочника"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"result":  doc,
	})
}

// DeleteRequiredDocument удаляет документ из справочника (админ)
// DELETE /admin/required-documents/:id
func (pc *ProgramController) DeleteRequiredDocument(c *gin.Context) {
	docID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный id записи"})
		return
	}

	var doc models.RequiredDocument
	if err := pc.db.First(&doc, docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись справочника не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске записи"})
		return
	}

	if err := pc.db.Delete(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении записи"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Запись справочника удалена",
	})
}
