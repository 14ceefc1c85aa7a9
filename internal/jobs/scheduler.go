// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежеминутную очистку инстанций
// миров, переставших присылать heartbeat.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/features/world"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron         *cron.Cron
	worldService *world.Service
}

// NewScheduler создаёт планировщик задач.
func NewScheduler(worldService *world.Service) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		worldService: worldService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Игровой сервер может упасть, не успев сняться с регистрации.
	// Каждую минуту убираем инстанции с протухшим heartbeat.
	s.cron.AddFunc("* * * * *", func() {
		if err := s.worldService.ReapStale(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка очистки мёртвых инстанций")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дождавшись текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
