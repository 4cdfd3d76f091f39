package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"apply/config"
	"apply/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const testWebhookSecret = "test-webhook-secret"

func newWebhookRouter(db *gorm.DB) *gin.Engine {
	cfg := &config.Config{TrustMeWebhookSecret: testWebhookSecret}
	tc := NewTrustMeController(db, cfg)
	r := gin.New()
	r.POST("/trustme/webhook", tc.Webhook)
	return r
}

func sendWebhook(r *gin.Engine, secret, contractID string, status int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"contract_id": contractID,
		"status":      status,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/trustme/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Secret-Key", secret)
	}
	r.ServeHTTP(w, req)
	return w
}

func withTrustMeID(t *testing.T, db *gorm.DB, app *models.Application, id, url string) {
	t.Helper()
	app.TrustMeID = &id
	app.TrustMeURL = &url
	assert.NoError(t, db.Save(app).Error)
}

// Уведомление без секрета или с неверным секретом отклоняется до обработки
func TestWebhookRejectsBadSecret(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db)

	w := sendWebhook(r, "", "tm-1", 3)
	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Error")

	w = sendWebhook(r, "wrong-secret", "tm-1", 3)
	assert.Equal(t, 401, w.Code)
}

// Неизвестный идентификатор договора — 404
func TestWebhookContractNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db)

	w := sendWebhook(r, testWebhookSecret, "no-such-contract", 3)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "Error")
}

// Код 3 переводится в CHECK_DOCS и дописывается в журнал
func TestWebhookAppendsMappedStatus(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300200")
	withTrustMeID(t, db, app, "tm-100", "https://trustme.kz/d/tm-100")
	r := newWebhookRouter(db)

	w := sendWebhook(r, testWebhookSecret, "tm-100", 3)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Ok")

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCheckDocs, entry.Status)
	assert.Contains(t, entry.Description, "код 3")
	assert.Nil(t, entry.CreatedByID) // системная запись
}

// Неизвестный код провайдера дает NEED_SIGNATURE
func TestWebhookUnknownCodeFallsBack(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300201")
	withTrustMeID(t, db, app, "tm-101", "https://trustme.kz/d/tm-101")
	r := newWebhookRouter(db)

	w := sendWebhook(r, testWebhookSecret, "tm-101", 42)
	assert.Equal(t, 200, w.Code)

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusNeedSignature, entry.Status)
}

// Заявка находится и по ссылке на договор, не только по идентификатору
func TestWebhookLookupByContractURL(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300202")
	withTrustMeID(t, db, app, "tm-102", "https://trustme.kz/d/tm-102")
	r := newWebhookRouter(db)

	w := sendWebhook(r, testWebhookSecret, "https://trustme.kz/d/tm-102", 5)
	assert.Equal(t, 200, w.Code)

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusNeedSignatureTerminateContract, entry.Status)
}

// Повторное одинаковое уведомление дает повторную запись журнала:
// дедупликации нет, каждая доставка — отдельная строка
func TestWebhookDuplicateDeliveriesAppend(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300203")
	withTrustMeID(t, db, app, "tm-103", "https://trustme.kz/d/tm-103")
	r := newWebhookRouter(db)

	for i := 0; i < 3; i++ {
		w := sendWebhook(r, testWebhookSecret, "tm-103", 4)
		assert.Equal(t, 200, w.Code)
	}

	var count int64
	assert.NoError(t, db.Model(&models.Log{}).
		Where("application_id = ? AND status = ?", app.ID, models.StatusReProcessing).
		Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func newStatusRouter(db *gorm.DB, baseURL string) *gin.Engine {
	cfg := &config.Config{TrustMeBaseURL: baseURL}
	tc := NewTrustMeController(db, cfg)
	r := gin.New()
	r.Use(authAs(7, models.RoleConsultant))
	r.GET("/applications/:id/trustme/status", tc.CheckStatus)
	return r
}

// Ручной опрос провайдера: код из ответа переводится и дописывается в журнал
func TestCheckStatusPollsProviderAndAppends(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300204")
	withTrustMeID(t, db, app, "tm-104", "https://trustme.kz/d/tm-104")

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documents/tm-104/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": 3}`))
	}))
	defer provider.Close()

	r := newStatusRouter(db, provider.URL)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/applications/%d/trustme/status", app.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), models.StatusCheckDocs)

	entry, err := latestLog(db, app.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCheckDocs, entry.Status)
	assert.Contains(t, entry.Description, "код 3")
	// Опрос делает сотрудник, запись не системная
	assert.NotNil(t, entry.CreatedByID)
	assert.Equal(t, uint(7), *entry.CreatedByID)
}

// Опрос статуса без отправленного договора — 400
func TestCheckStatusWithoutContract(t *testing.T) {
	db := setupTestDB(t)
	app := createTestApplication(t, db, "990101300205")

	r := newStatusRouter(db, "http://127.0.0.1:0")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/applications/%d/trustme/status", app.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "не отправлялся")
}

// Некорректное тело уведомления — 400
func TestWebhookInvalidPayload(t *testing.T) {
	db := setupTestDB(t)
	r := newWebhookRouter(db)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/trustme/webhook", bytes.NewBufferString(`{"contract_id": ""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Secret-Key", testWebhookSecret)
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}
