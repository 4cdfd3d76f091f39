package services

import (
	"fmt"

	"apply/config"
	"apply/models"
	"apply/utils"

	"gorm.io/gorm"
)

// statusSubjects — темы писем абитуриенту по статусам заявки
var statusSubjects = map[string]string{
	models.StatusProcessing:                     "Ваша заявка принята в обработку",
	models.StatusReProcessing:                   "Ваша заявка возвращена в обработку",
	models.StatusCheckDocs:                      "Документы по вашей заявке проверяются",
	models.StatusNeedSignature:                  "Требуется подписание договора",
	models.StatusNeedSignatureTerminateContract: "Требуется подписание расторжения договора",
	models.StatusEnrolled:                       "Поздравляем с зачислением",
	models.StatusRefusedToEnroll:                "Отказ в зачислении",
}

// NotifyStatusChange отправляет абитуриенту письмо о смене статуса заявки.
// Ошибки отправки только логируются: уведомление не должно ломать основной поток.
func NotifyStatusChange(db *gorm.DB, cfg *config.Config, applicationID uint, status string) {
	subject, ok := statusSubjects[status]
	if !ok {
		return
	}

	var app models.Application
	if err := db.Preload("Applicant").First(&app, applicationID).Error; err != nil {
		utils.LogError(err, "NotifyStatusChange")
		return
	}
	if app.Applicant == nil || app.Applicant.Email == nil || *app.Applicant.Email == "" {
		return
	}

	body := fmt.Sprintf("Здравствуйте, %s!\n\nСтатус вашей заявки №%d изменился: %s.\n\nПриемная комиссия",
		app.Applicant.FirstName, app.ID, subject)

	if err := utils.SendEmail(*app.Applicant.Email, subject, body,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass); err != nil {
		utils.LogError(err, "NotifyStatusChange")
	}
}
