package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"apply/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newApplicationRouter(db *gorm.DB) *gin.Engine {
	ac := NewApplicationController(db)
	r := gin.New()
	r.Use(authAs(1, models.RoleConsultant))
	r.POST("/applications", ac.CreateApplication)
	r.GET("/applications/:id", ac.GetApplication)
	r.DELETE("/applications/:id", ac.DeleteApplication)
	r.POST("/applications/check-duplicate", ac.CheckDuplicate)
	return r
}

func checkDuplicate(t *testing.T, r *gin.Engine, iin string) models.DuplicateCheckResponse {
	t.Helper()
	body, _ := json.Marshal(models.DuplicateCheckRequest{IdentificationNumber: iin})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/applications/check-duplicate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var resp models.DuplicateCheckResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Создание заявки атомарно добавляет первую запись журнала со статусом DRAFT
func TestCreateApplicationAppendsDraftLog(t *testing.T) {
	db := setupTestDB(t)
	r := newApplicationRouter(db)

	body, _ := json.Marshal(models.ApplicationCreateRequest{
		Applicant: &models.ApplicantRequest{
			FirstName:            "Айдар",
			LastName:             "Смагулов",
			IdentificationNumber: "990101300100",
		},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/applications", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 201, w.Code)

	var app models.Application
	assert.NoError(t, db.Order("id DESC").First(&app).Error)

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDraft, entry.Status)

	var count int64
	assert.NoError(t, db.Model(&models.Log{}).Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// Недавняя заявка с записью не-DRAFT — дубликат
func TestCheckDuplicateFindsRecentNonDraft(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "123456789012")
	_, err := appendLog(db, app.ID, models.StatusProcessing, "", nil)
	assert.NoError(t, err)
	r := newApplicationRouter(db)

	resp := checkDuplicate(t, r, "123456789012")
	assert.True(t, resp.HasDuplicate)
	assert.Len(t, resp.Applications, 1)
	assert.Equal(t, app.ID, resp.Applications[0].ID)
	assert.Equal(t, models.StatusProcessing, resp.Applications[0].LatestStatus)
	assert.Equal(t, "Смагулов Айдар", resp.Applications[0].ApplicantName)
}

// Заявка старше 6 месяцев не считается дубликатом
func TestCheckDuplicateIgnoresOldApplications(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "123456789013")
	_, err := appendLog(db, app.ID, models.StatusProcessing, "", nil)
	assert.NoError(t, err)

	// Отодвигаем дату создания заявки на 7 месяцев назад
	old := time.Now().AddDate(0, -7, 0)
	assert.NoError(t, db.Model(&models.Application{}).
		Where("id = ?", app.ID).
		Update("created_at", old).Error)

	r := newApplicationRouter(db)
	resp := checkDuplicate(t, r, "123456789013")
	assert.False(t, resp.HasDuplicate)
	assert.Empty(t, resp.Applications)
}

// Заявка только с DRAFT-записью не считается дубликатом
func TestCheckDuplicateIgnoresDraftOnly(t *testing.T) {
	db := setupTestDB(t)
	createTestApplication(t, db, "123456789014")
	r := newApplicationRouter(db)

	resp := checkDuplicate(t, r, "123456789014")
	assert.False(t, resp.HasDuplicate)
	assert.Empty(t, resp.Applications)
}

// Мягко удаленная заявка не считается дубликатом
func TestCheckDuplicateIgnoresDeleted(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "123456789015")
	_, err := appendLog(db, app.ID, models.StatusProcessing, "", nil)
	assert.NoError(t, err)
	assert.NoError(t, db.Delete(&models.Application{}, app.ID).Error)

	r := newApplicationRouter(db)
	resp := checkDuplicate(t, r, "123456789015")
	assert.False(t, resp.HasDuplicate)
}

// Неизвестный ИИН — дубликатов нет
func TestCheckDuplicateUnknownIIN(t *testing.T) {
	db := setupTestDB(t)
	r := newApplicationRouter(db)

	resp := checkDuplicate(t, r, "000000000000")
	assert.False(t, resp.HasDuplicate)
	assert.Empty(t, resp.Applications)
}

// Удаление заявки мягкое: строка остается в базе с меткой deleted_at
func TestDeleteApplicationIsSoft(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "123456789016")
	r := newApplicationRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/applications/"+strconv.Itoa(int(app.ID)), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	// Через обычный запрос заявка не видна
	var found models.Application
	err := db.First(&found, app.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Но физически строка на месте
	var count int64
	assert.NoError(t, db.Unscoped().Model(&models.Application{}).
		Where("id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
