package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EducationalProgram — образовательная программа из справочника университета
type EducationalProgram struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Code          string         `json:"code" gorm:"uniqueIndex;not null"`
	TitleRu       string         `json:"title_ru"`
	TitleKz       *string        `json:"title_kz"`
	TitleEn       *string        `json:"title_en"`
	AcademicLevel string         `json:"academic_level" gorm:"index:idx_program_level"`
	Duration      *int           `json:"duration"`
	Languages     datatypes.JSON `json:"languages"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// ProgramRequest структура для создания/обновления программы
type ProgramRequest struct {
	Code          string  `json:"code" binding:"required"`
	TitleRu       string  `json:"title_ru" binding:"required"`
	TitleKz       *string `json:"title_kz"`
	TitleEn       *string `json:"title_en"`
	AcademicLevel string  `json:"academic_level" binding:"required"`
	Duration      *int    `json:"duration"`
}

// RequiredDocument — справочник обязательных документов для заявки
type RequiredDocument struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Code          string         `json:"code" gorm:"uniqueIndex;not null"`
	NameRu        string         `json:"name_ru"`
	NameKz        *string        `json:"name_kz"`
	NameEn        *string        `json:"name_en"`
	AcademicLevel *string        `json:"academic_level"`
	IsRequired    bool           `json:"is_required" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
