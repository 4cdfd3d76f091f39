package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Способы подписания договора
const (
	SignTypeOffline = "OFFLINE"
	SignTypeTrustMe = "TRUSTME"
)

// Application представляет заявку на поступление. Абитуриент, представитель
// и детали обучения привязаны по внешним ключам; журнал статусов — в logs.
type Application struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	ContractNumber   *string        `json:"contract_number" gorm:"uniqueIndex"`
	ContractLanguage *string        `json:"contract_language"`
	ContractSignType *string        `json:"contract_sign_type"`
	TrustMeID        *string        `json:"trust_me_id" gorm:"index:idx_trustme_id"`
	TrustMeURL       *string        `json:"trust_me_url" gorm:"index:idx_trustme_url"`
	SubmittedAt      *time.Time     `json:"submitted_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ApplicantID      *uint `json:"applicant_id"`
	RepresentativeID *uint `json:"representative_id"`
	DetailsID        *uint `json:"details_id"`
	ConsultantID     *uint `json:"consultant_id"`

	// Связи
	Applicant      *Applicant      `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	Representative *Representative `json:"representative,omitempty" gorm:"foreignKey:RepresentativeID"`
	Details        *Details        `json:"details,omitempty" gorm:"foreignKey:DetailsID"`
	Consultant     *User           `json:"consultant,omitempty" gorm:"foreignKey:ConsultantID"`
	Documents      []Document      `json:"documents,omitempty" gorm:"foreignKey:ApplicationID"`
	Logs           []Log           `json:"logs,omitempty" gorm:"foreignKey:ApplicationID"`
}

// Applicant — абитуриент
type Applicant struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	FirstName            string         `json:"first_name"`
	LastName             string         `json:"last_name"`
	MiddleName           *string        `json:"middle_name"`
	Birthdate            *time.Time     `json:"birthdate"`
	IdentificationNumber string         `json:"identification_number" gorm:"index:idx_applicant_iin"`
	DocumentNumber       *string        `json:"document_number"`
	Citizenship          *string        `json:"citizenship"`
	Email                *string        `json:"email"`
	Phone                *string        `json:"phone"`
	Address              *string        `json:"address"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Representative — законный представитель несовершеннолетнего абитуриента
type Representative struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	FirstName            string         `json:"first_name"`
	LastName             string         `json:"last_name"`
	MiddleName           *string        `json:"middle_name"`
	IdentificationNumber *string        `json:"identification_number"`
	DocumentNumber       *string        `json:"document_number"`
	RelationshipDegree   *string        `json:"relationship_degree"`
	Email                *string        `json:"email"`
	Phone                *string        `json:"phone"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Details — выбранная программа и условия обучения
type Details struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ProgramID      *uint      `json:"program_id"`
	AcademicLevel  *string    `json:"academic_level"`
	StudyLanguage  *string    `json:"study_language"`
	StudyForm      *string    `json:"study_form"`
	IsDormNeeds    bool       `json:"is_dorm_needs" gorm:"default:false"`
	IsScholarship  bool       `json:"is_scholarship" gorm:"default:false"`
	ContractSum    *float64   `json:"contract_sum"`
	StartAcademicY *string    `json:"start_academic_year" gorm:"column:start_academic_year"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Program *EducationalProgram `json:"program,omitempty" gorm:"foreignKey:ProgramID"`
}

// Document — метаданные загруженного документа заявки (сам файл хранится отдельно)
type Document struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ApplicationID uint           `json:"application_id" gorm:"not null;index:idx_application_docs"`
	Name          string         `json:"name"`
	Code          *string        `json:"code"`
	Link          *string        `json:"link"`
	Metadata      datatypes.JSON `json:"metadata"`
	UploadedByID  *uint          `json:"uploaded_by_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// ApplicantRequest данные абитуриента в запросе создания/обновления заявки
type ApplicantRequest struct {
	FirstName            string     `json:"first_name" binding:"required"`
	LastName             string     `json:"last_name" binding:"required"`
	MiddleName           *string    `json:"middle_name"`
	Birthdate            *time.Time `json:"birthdate"`
	IdentificationNumber string     `json:"identification_number" binding:"required"`
	DocumentNumber       *string    `json:"document_number"`
	Citizenship          *string    `json:"citizenship"`
	Email                *string    `json:"email"`
	Phone                *string    `json:"phone"`
	Address              *string    `json:"address"`
}

// RepresentativeRequest данные представителя в запросе
type RepresentativeRequest struct {
	FirstName            string  `json:"first_name" binding:"required"`
	LastName             string  `json:"last_name" binding:"required"`
	MiddleName           *string `json:"middle_name"`
	IdentificationNumber *string `json:"identification_number"`
	DocumentNumber       *string `json:"document_number"`
	RelationshipDegree   *string `json:"relationship_degree"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
}

// DetailsRequest выбор программы и условий обучения в запросе
type DetailsRequest struct {
	ProgramID      *uint    `json:"program_id"`
	AcademicLevel  *string  `json:"academic_level"`
	StudyLanguage  *string  `json:"study_language"`
	StudyForm      *string  `json:"study_form"`
	IsDormNeeds    *bool    `json:"is_dorm_needs"`
	IsScholarship  *bool    `json:"is_scholarship"`
	ContractSum    *float64 `json:"contract_sum"`
	StartAcademicY *string  `json:"start_academic_year"`
}

// ApplicationCreateRequest структура для создания заявки
type ApplicationCreateRequest struct {
	Applicant        *ApplicantRequest      `json:"applicant"`
	Representative   *RepresentativeRequest `json:"representative"`
	Details          *DetailsRequest        `json:"details"`
	ContractLanguage *string                `json:"contract_language"`
	ContractSignType *string                `json:"contract_sign_type"`
}

// ApplicationUpdateRequest структура для обновления заявки
type ApplicationUpdateRequest struct {
	Applicant        *ApplicantRequest      `json:"applicant"`
	Representative   *RepresentativeRequest `json:"representative"`
	Details          *DetailsRequest        `json:"details"`
	ContractNumber   *string                `json:"contract_number"`
	ContractLanguage *string                `json:"contract_language"`
	ContractSignType *string                `json:"contract_sign_type"`
	SubmittedAt      *time.Time             `json:"submitted_at"`
}

// DocumentRequest структура для прикрепления метаданных документа к заявке
type DocumentRequest struct {
	Name     string         `json:"name" binding:"required"`
	Code     *string        `json:"code"`
	Link     *string        `json:"link"`
	Metadata datatypes.JSON `json:"metadata"`
}

// ApplicationSummary краткая сводка по заявке для проверки дубликатов
type ApplicationSummary struct {
	ID            uint      `json:"id"`
	ApplicantName string    `json:"applicant_name"`
	LatestStatus  string    `json:"latest_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DuplicateCheckRequest структура запроса проверки дубликатов по ИИН
type DuplicateCheckRequest struct {
	IdentificationNumber string `json:"identificationNumber" binding:"required"`
}

// DuplicateCheckResponse структура ответа проверки дубликатов
type DuplicateCheckResponse struct {
	HasDuplicate bool                 `json:"hasDuplicate"`
	Applications []ApplicationSummary `json:"applications"`
}
