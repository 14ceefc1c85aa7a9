// Package friends управляет социальным графом: заявками в друзья
// и подтверждёнными дружбами. Пара пользователей уникальна независимо
// от того, кто отправил заявку.
// models.go описывает структуры таблицы user_friendships.
package friends

import "time"

// Статусы связи.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
)

// Friendship — связь между двумя пользователями.
type Friendship struct {
	FriendshipID int        `json:"friendshipId" db:"friendship_id"`
	RequesterID  int        `json:"requesterId" db:"requester_id"`
	TargetID     int        `json:"targetId" db:"target_id"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty" db:"accepted_at"`
}

// FriendEntry — запись списка друзей: контрагент и статус связи.
type FriendEntry struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Status   string `json:"status"`
	// Incoming — заявка пришла от контрагента (ждёт нашего подтверждения).
	Incoming bool `json:"incoming"`
}
