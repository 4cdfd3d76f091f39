package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"apply/config"
	"apply/database"
	"apply/routes"
	"apply/services"
	"apply/utils"
)

func main() {
	// Устанавливаем часовой пояс Алматы для всех логов
	almatyLocation, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		almatyLocation = time.FixedZone("ALMT", 5*60*60)
	}
	time.Local = almatyLocation

	// Загрузка .env и конфигурации
	cfg := config.LoadConfig()

	// Файловые логи ошибок и паник
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// Подключение к PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Устанавливаем глобальный *gorm.DB для контроллеров
	utils.SetDB(db)

	// Redis для черного списка токенов
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	utils.SetRedis(rdb)

	// Миграция
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Сидирование справочников и первого администратора
	if err := database.SeedRequiredDocuments(db); err != nil {
		log.Fatalf("failed to seed required documents: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	log.Println("Seeding complete")

	// Запуск фоновых задач
	go func() {
		services.StartSheetsCron(db, cfg)
		services.StartCatalogCron(db, cfg)
	}()

	r := routes.SetupRouter(cfg)
	log.Printf("Starting server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
