package models

import "gorm.io/gorm"

// Роли сотрудников приемной комиссии
const (
	RoleUser       = "USER"
	RoleConsultant = "CONSULTANT"
	RoleManager    = "MANAGER"
	RoleAdmin      = "ADMIN"
)

// roleLevels задает иерархию ролей: чем больше число, тем шире права
var roleLevels = map[string]int{
	RoleUser:       0,
	RoleConsultant: 1,
	RoleManager:    2,
	RoleAdmin:      3,
}

// RoleAtLeast проверяет, что role не ниже required в иерархии ролей
func RoleAtLeast(role, required string) bool {
	lvl, ok := roleLevels[role]
	if !ok {
		return false
	}
	req, ok := roleLevels[required]
	if !ok {
		return false
	}
	return lvl >= req
}

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string
	Name     *string
	Role     string `gorm:"default:USER"`
}
