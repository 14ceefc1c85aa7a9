// Package common — respond.go содержит хелперы для формирования JSON-ответов.
// Все обработчики отвечают через эти функции, чтобы формат был единым.
package common

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// messageBody — тело ответа с одним текстовым сообщением.
type messageBody struct {
	Message string `json:"message"`
}

// JSON сериализует v и пишет его с указанным статусом.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Ошибка сериализации ответа")
	}
}

// Message пишет {"message": "..."} с указанным статусом.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Message: msg})
}

// InternalError логирует настоящую причину и отдаёт клиенту
// непрозрачное сообщение. Детали БД наружу не утекают.
func InternalError(w http.ResponseWriter, err error) {
	log.WithError(err).Error("Внутренняя ошибка запроса")
	Message(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// DecodeBody разбирает JSON-тело запроса в dst.
func DecodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
