package models

import "time"

const (
	SubActive   = "ACTIVE"
	SubExpired  = "EXPIRED"
	SubCanceled = "CANCELED"
)

type Subscription struct {
	ID           string        `json:"id"`
	SubscriberID string        `json:"-"`
	MagazineID   string        `json:"-"`
	Status       string        `json:"status"`
	StartAt      time.Time     `json:"startAt"`
	EndAt        time.Time     `json:"endAt"`
	Magazine     *MagazineLite `json:"magazine,omitempty"`
}

// EffectiveStatus: запись со статусом ACTIVE, у которой end_at уже в прошлом,
// считается EXPIRED независимо от того, что лежит в БД.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if s.Status == SubActive && now.After(s.EndAt) {
		return SubExpired
	}
	return s.Status
}

// SubscribeResponse — ответ POST /api/magazines/{id}/subscribe.
// Повторная подписка при живой — не ошибка, а успех с флагом.
type SubscribeResponse struct {
	ID            string `json:"id"`
	AlreadyActive bool   `json:"alreadyActive"`
}
