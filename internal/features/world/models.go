// Package world управляет реестром миров и живых игровых серверов.
// Инстанция — один запущенный игровой сервер, обслуживающий один мир.
// Жизненный цикл: регистрация → heartbeat с числом игроков → снятие с регистрации.
// models.go описывает структуры таблиц world_configs и world_instances.
package world

import "time"

// Config — конфигурация мира: сцена и параметры физики.
// Справочные данные, управляются администратором.
type Config struct {
	WorldID    int     `json:"worldId" db:"world_id"`
	WorldName  string  `json:"worldName" db:"world_name"`
	ScenePath  string  `json:"scenePath" db:"scene_path"`
	Gravity    float32 `json:"gravity" db:"gravity"`
	MaxPlayers int     `json:"maxPlayers" db:"max_players"`
}

// Instance — живая инстанция игрового сервера.
type Instance struct {
	InstanceID     int       `json:"instanceId" db:"instance_id"`
	WorldID        int       `json:"worldId" db:"world_id"`
	IPAddress      string    `json:"ipAddress" db:"ip_address"`
	Port           int       `json:"port" db:"port"`
	CurrentPlayers int       `json:"currentPlayers" db:"current_players"`
	StartedAt      time.Time `json:"startedAt" db:"started_at"`
	LastSeenAt     time.Time `json:"lastSeenAt" db:"last_seen_at"`
}

// Assignment — ответ балансировщика: куда подключаться клиенту.
type Assignment struct {
	IPAddress  string `json:"ipAddress"`
	Port       int    `json:"port"`
	InstanceID int    `json:"instanceId"`
	WorldName  string `json:"worldName"`
}
