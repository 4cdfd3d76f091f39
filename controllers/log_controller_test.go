package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apply/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newLogRouter(db *gorm.DB) *gin.Engine {
	lc := NewLogController(db)
	r := gin.New()
	r.Use(authAs(1, models.RoleManager))
	r.POST("/logs", lc.CreateLog)
	r.PATCH("/logs/:id", lc.UpdateLog)
	r.DELETE("/logs/:id", lc.DeleteLog)
	r.GET("/applications/:id/logs", lc.ListLogs)
	r.GET("/applications/:id/logs/latest", lc.LatestLog)
	return r
}

// Текущий статус заявки — самая свежая запись журнала
func TestLatestLogReturnsNewestEntry(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300123")
	r := newLogRouter(db)

	// Сразу после создания текущий статус DRAFT
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/applications/%d/logs/latest", app.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusDraft)

	// Добавляем PROCESSING — он становится текущим
	body, _ := json.Marshal(models.LogRequest{
		ApplicationID: app.ID,
		Status:        models.StatusProcessing,
		Description:   "Взята в работу",
	})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/logs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 201, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", fmt.Sprintf("/applications/%d/logs/latest", app.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusProcessing)
}

// При совпадении created_at берется запись с большим id
func TestLatestLogTieBreakByID(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300124")

	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	first := models.Log{ApplicationID: app.ID, Status: models.StatusProcessing, CreatedAt: ts}
	second := models.Log{ApplicationID: app.ID, Status: models.StatusCheckDocs, CreatedAt: ts}
	assert.NoError(t, db.Create(&first).Error)
	assert.NoError(t, db.Create(&second).Error)

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, second.ID, entry.ID)
	assert.Equal(t, models.StatusCheckDocs, entry.Status)
}

// Журнал append-only: после N добавлений ровно N+1 записей (с учетом DRAFT),
// прежние записи не меняются и не пропадают
func TestAppendDoesNotMutateHistory(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300125")
	r := newLogRouter(db)

	statuses := []string{
		models.StatusProcessing,
		models.StatusCheckDocs,
		models.StatusNeedSignature,
	}
	for _, status := range statuses {
		body, _ := json.Marshal(models.LogRequest{ApplicationID: app.ID, Status: status})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/logs", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
	}

	var count int64
	assert.NoError(t, db.Model(&models.Log{}).Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(len(statuses)+1), count)

	// Первая запись осталась DRAFT
	var firstEntry models.Log
	assert.NoError(t, db.Where("application_id = ?", app.ID).Order("created_at ASC, id ASC").First(&firstEntry).Error)
	assert.Equal(t, models.StatusDraft, firstEntry.Status)
}

// У заявки без единой записи журнала текущего статуса нет — 404.
// На практике не встречается: создание заявки всегда пишет DRAFT.
func TestLatestLogNoEntries(t *testing.T) {
	db := setupTestDB(t)

	// Заявка заведена напрямую, без стартовой записи журнала
	app := models.Application{}
	assert.NoError(t, db.Create(&app).Error)

	r := newLogRouter(db)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/applications/%d/logs/latest", app.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "нет записей журнала")
}

// Создание записи для несуществующей заявки возвращает 404
func TestCreateLogApplicationNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newLogRouter(db)

	body, _ := json.Marshal(models.LogRequest{ApplicationID: 9999, Status: models.StatusProcessing})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/logs", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "Заявка не найдена")
}

// Админский обходной путь: правка статуса существующей записи
func TestUpdateLogPatchesEntryInPlace(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300126")
	r := newLogRouter(db)

	entry, err := appendLog(db, app.ID, models.StatusProcessing, "", nil)
	assert.NoError(t, err)

	newStatus := models.StatusReProcessing
	body, _ := json.Marshal(models.LogUpdateRequest{Status: &newStatus})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/logs/%d", entry.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var updated models.Log
	assert.NoError(t, db.First(&updated, entry.ID).Error)
	assert.Equal(t, models.StatusReProcessing, updated.Status)

	// Количество записей не изменилось
	var count int64
	assert.NoError(t, db.Model(&models.Log{}).Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// Удаление записи журнала по id
func TestDeleteLog(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300127")
	r := newLogRouter(db)

	entry, err := appendLog(db, app.ID, models.StatusProcessing, "", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/logs/%d", entry.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Log{}).Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Повторное удаление — 404
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/logs/%d", entry.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}
