package database

import (
	"apply/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
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
		return err
	}

	// Составной индекс под выборку "последняя запись журнала заявки"
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_logs_application_created
		ON logs (application_id, created_at DESC, id DESC)
	`).Error; err != nil {
		return err
	}

	return nil
}
