package database

import (
	"log"
	"os"

	"apply/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedRequiredDocuments проверяет справочник обязательных документов и,
// если он пуст, заполняет его стандартным набором
func SeedRequiredDocuments(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.RequiredDocument{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Справочник уже заполнен
	}

	str := func(s string) *string { return &s }
	docs := []models.RequiredDocument{
		{Code: "IDENTITY", NameRu: "Удостоверение личности", NameKz: str("Жеке куәлік"), NameEn: str("Identity document")},
		{Code: "EDU_CERT", NameRu: "Документ об образовании", NameKz: str("Білім туралы құжат"), NameEn: str("Education certificate")},
		{Code: "PHOTO", NameRu: "Фотография 3x4", NameKz: str("3x4 фотосурет"), NameEn: str("Photo 3x4")},
		{Code: "MED_075", NameRu: "Медицинская справка 075-У", NameKz: str("075-У медициналық анықтама"), NameEn: str("Medical certificate 075-U")},
		{Code: "ENT_CERT", NameRu: "Сертификат ЕНТ", NameKz: str("ҰБТ сертификаты"), NameEn: str("UNT certificate"), AcademicLevel: str("BACHELOR")},
		{Code: "DIPLOMA", NameRu: "Диплом бакалавра с приложением", NameEn: str("Bachelor diploma with transcript"), AcademicLevel: str("MASTER")},
	}
	return db.Create(&docs).Error
}

// SeedAdmin создает первого администратора, если пользователей еще нет.
// Email и пароль берутся из ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD не заданы, администратор не создан")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
