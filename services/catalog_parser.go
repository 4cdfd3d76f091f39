package services

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"apply/config"
	"apply/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// parseCatalogPage разбирает страницу каталога образовательных программ.
// Ожидается таблица: код | название | уровень | срок обучения.
func parseCatalogPage(url string, logger *log.Logger) []*models.EducationalProgram {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		logger.Printf("Ошибка создания запроса: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		logger.Printf("Ошибка получения страницы: %v", err)
		return nil
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		logger.Printf("Ошибка парсинга HTML: %v", err)
		return nil
	}

	var programs []*models.EducationalProgram
	doc.Find("table.programs tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		code := strings.TrimSpace(cells.Eq(0).Text())
		title := strings.TrimSpace(cells.Eq(1).Text())
		level := strings.TrimSpace(cells.Eq(2).Text())
		if code == "" || title == "" {
			return
		}

		program := &models.EducationalProgram{
			Code:          code,
			TitleRu:       title,
			AcademicLevel: level,
			IsActive:      true,
		}

		if cells.Length() > 3 {
			if years, err := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text())); err == nil {
				program.Duration = &years
			}
		}

		programs = append(programs, program)
	})
	return programs
}

// syncCatalog обновляет справочник программ по данным каталога.
// Существующие программы обновляются по коду, новые добавляются;
// вручную заведенные программы не трогаем.
func syncCatalog(db *gorm.DB, url string, logger *log.Logger) int {
	programs := parseCatalogPage(url, logger)
	if programs == nil {
		return 0
	}

	updated := 0
	for _, program := range programs {
		var existing models.EducationalProgram
		err := db.Where("code = ?", program.Code).First(&existing).Error
		if err == nil {
			existing.TitleRu = program.TitleRu
			existing.AcademicLevel = program.AcademicLevel
			if program.Duration != nil {
				existing.Duration = program.Duration
			}
			if err := db.Save(&existing).Error; err != nil {
				logger.Printf("Ошибка обновления программы %s: %v", program.Code, err)
				continue
			}
		} else {
			if err := db.Create(program).Error; err != nil {
				logger.Printf("Ошибка создания программы %s: %v", program.Code, err)
				continue
			}
		}
		updated++
	}
	return updated
}

// StartCatalogCron запускает ежедневную синхронизацию каталога программ
func StartCatalogCron(db *gorm.DB, cfg *config.Config) {
	if cfg.CatalogURL == "" {
		log.Printf("[CATALOG CRON] CATALOG_URL не задан, синхронизация каталога отключена")
		return
	}

	c := cron.New()
	c.AddFunc("0 5 * * *", func() { // Каждое утро в 05:00
		logger := log.Default()
		logger.Printf("[CATALOG CRON] Начало синхронизации каталога программ...")
		count := syncCatalog(db, cfg.CatalogURL, logger)
		logger.Printf("[CATALOG CRON] Синхронизация завершена - обновлено %d программ", count)
	})
	c.Start()
	log.Printf("[CATALOG CRON] Планировщик запущен. Синхронизация каталога будет выполняться каждое утро в 05:00")
}
