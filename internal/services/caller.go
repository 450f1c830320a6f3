package services

import (
	"errors"

	"zhurnal/internal/models"
)

// Caller — личность вызывающего из JWT. Нулевое значение — аноним.
// Проверки ролей в сервисах — это и есть граница доверия: клиентские
// проверки лишь дублируют их ради UX.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAnonymous() bool { return c.ID == "" }
func (c Caller) IsAdmin() bool     { return c.Role == models.RoleAdmin }

// ErrValidation — ошибка входных данных; хендлеры переводят её в 400,
// не теряя текст сообщения.
var ErrValidation = errors.New("validation")
