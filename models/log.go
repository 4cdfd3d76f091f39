package models

import "time"

// Статусы заявки. Текущий статус заявки — это статус самой свежей записи
// в журнале (logs), отдельного поля статуса у заявки нет.
const (
	StatusDraft                          = "DRAFT"
	StatusProcessing                     = "PROCESSING"
	StatusReProcessing                   = "RE_PROCESSING"
	StatusCheckDocs                      = "CHECK_DOCS"
	StatusNeedSignature                  = "NEED_SIGNATURE"
	StatusNeedSignatureTerminateContract = "NEED_SIGNATURE_TERMINATE_CONTRACT"
	StatusEnrolled                       = "ENROLLED"
	StatusRefusedToEnroll                = "REFUSED_TO_ENROLL"
	StatusEarlyRefusedToEnroll           = "EARLY_REFUSED_TO_ENROLL"
)

// Log представляет одну запись журнала статусов заявки.
// Записи добавляются и не удаляются при смене статуса — журнал append-only.
type Log struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ApplicationID uint      `json:"application_id" gorm:"not null;index:idx_application_logs"`
	Status        string    `json:"status" gorm:"not null;index:idx_log_status"`
	Description   string    `json:"description"`
	CreatedByID   *uint     `json:"created_by_id"` // nil для системных записей (webhook)
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// LogRequest структура для создания записи журнала
type LogRequest struct {
	ApplicationID uint   `json:"application_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
	Description   string `json:"description"`
}

// LogUpdateRequest структура для правки записи журнала (админский путь)
type LogUpdateRequest struct {
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// LogResponse структура ответа для записи журнала
type LogResponse struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	CreatedByID   *uint     `json:"created_by_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewLogResponse(l *Log) LogResponse {
	return LogResponse{
		ID:            l.ID,
		ApplicationID: l.ApplicationID,
		Status:        l.Status,
		Description:   l.Description,
		CreatedByID:   l.CreatedByID,
		CreatedAt:     l.CreatedAt,
	}
}
