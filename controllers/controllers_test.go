package controllers

import (
	"fmt"
	"testing"

	"apply/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int

// setupTestDB поднимает чистую in-memory SQLite базу со всеми таблицами
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.EducationalProgram{},
		&models.RequiredDocument{},
		&models.Applicant{},
		&models.Representative{},
		&models.Details{},
		&models.Application{},
		&models.Document{},
		&models.Log{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// authAs подменяет JWT-авторизацию в тестах: кладет user_id и роль в контекст
func authAs(userID int, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// createTestApplication заводит заявку с абитуриентом и стартовой записью DRAFT
func createTestApplication(t *testing.T, db *gorm.DB, iin string) *models.Application {
	t.Helper()

	applicant := models.Applicant{
		FirstName:            "Айдар",
		LastName:             "Смагулов",
		IdentificationNumber: iin,
	}
	if err := db.Create(&applicant).Error; err != nil {
		t.Fatalf("failed to create applicant: %v", err)
	}

	app := models.Application{ApplicantID: &applicant.ID}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("failed to create application: %v", err)
	}

	if _, err := appendLog(db, app.ID, models.StatusDraft, "Заявка создана", nil); err != nil {
		t.Fatalf("failed to append draft log: %v", err)
	}
	return &app
}

func init() {
	gin.SetMode(gin.TestMode)
}
