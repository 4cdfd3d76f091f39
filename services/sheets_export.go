package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"os"
	"time"

	"apply/config"
	"apply/models"

	"github.com/robfig/cron/v3"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const sheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// SheetsExporter выгружает сводку по заявкам в Google Sheets
type SheetsExporter struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewSheetsExporter создает новый экземпляр SheetsExporter
func NewSheetsExporter(db *gorm.DB, cfg *config.Config) *SheetsExporter {
	return &SheetsExporter{db: db, cfg: cfg}
}

// buildRows собирает строки выгрузки: шапка + по строке на заявку
func (se *SheetsExporter) buildRows() ([][]interface{}, error) {
	var apps []models.Application
	err := se.db.
		Preload("Applicant").
		Preload("Details").
		Preload("Details.Program").
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"ID", "ФИО", "ИИН", "Программа", "Статус", "Дата создания"},
	}
	for i := range apps {
		app := &apps[i]

		var name, iin string
		if app.Applicant != nil {
			name = app.Applicant.LastName + " " + app.Applicant.FirstName
			iin = app.Applicant.IdentificationNumber
		}

		var program string
		if app.Details != nil && app.Details.Program != nil {
			program = app.Details.Program.TitleRu
		}

		var status models.Log
		if err := se.db.Where("application_id = ?", app.ID).
			Order("created_at DESC, id DESC").
			First(&status).Error; err == nil {
			rows = append(rows, []interface{}{
				app.ID, name, iin, program, status.Status,
				app.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		} else {
			rows = append(rows, []interface{}{
				app.ID, name, iin, program, "",
				app.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
	}
	return rows, nil
}

// Export записывает сводку на лист "Заявки" через Sheets API v4
func (se *SheetsExporter) Export() error {
	if se.cfg.SheetsSpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID не задан")
	}

	creds, err := os.ReadFile(se.cfg.GoogleCredsFile)
	if err != nil {
		return fmt.Errorf("не удалось прочитать credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(creds, sheetsScope)
	if err != nil {
		return fmt.Errorf("не удалось разобрать credentials: %w", err)
	}
	client := jwtConfig.Client(context.Background())
	client.Timeout = 60 * time.Second

	rows, err := se.buildRows()
	if err != nil {
		return fmt.Errorf("не удалось собрать данные: %w", err)
	}

	rangeRef := "Заявки!A1"
	payload := map[string]interface{}{
		"range":  rangeRef,
		"values": rows,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf(
		"https://sheets.googleapis.com/v4/spreadsheets/%s/values/%s?valueInputOption=RAW",
		se.cfg.SheetsSpreadsheetID, neturl.PathEscape(rangeRef),
	)
	req, err := http.NewRequest("PUT", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets export failed: %s", string(body))
	}
	return nil
}

// StartSheetsCron запускает ночную выгрузку заявок в Google Sheets
func StartSheetsCron(db *gorm.DB, cfg *config.Config) {
	exporter := NewSheetsExporter(db, cfg)

	c := cron.New()
	c.AddFunc("0 2 * * *", func() { // Каждую ночь в 02:00
		log.Printf("[SHEETS CRON] Начало выгрузки заявок...")
		if err := exporter.Export(); err != nil {
			log.Printf("[SHEETS CRON] Ошибка выгрузки: %v", err)
			return
		}
		log.Printf("[SHEETS CRON] Выгрузка завершена")
	})
	c.Start()
	log.Printf("[SHEETS CRON] Планировщик запущен. Выгрузка заявок будет выполняться каждую ночь в 02:00")
}
