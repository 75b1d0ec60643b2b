package domain

import "strings"

// RoleAdmin — роль, открывающая административные операции.
const RoleAdmin = "admin"

// Actor — аутентифицированный пользователь. Личность проверяет внешний identity-сервис.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin сообщает, есть ли у пользователя права администратора.
func (a Actor) IsAdmin() bool {
	return strings.EqualFold(a.Role, RoleAdmin)
}

// Valid проверяет, что личность задана.
func (a Actor) Valid() bool {
	return strings.TrimSpace(a.ID) != ""
}
